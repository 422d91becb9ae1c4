package http

import (
	"strings"
	"time"

	"ExpertBridge/internal/config"
	"ExpertBridge/internal/initial"
	jwtMiddleware "ExpertBridge/internal/middleware/jwt"
	"ExpertBridge/internal/middleware/requestid"
	"ExpertBridge/internal/modules/feed/application/service"
	"ExpertBridge/internal/modules/feed/infrastructure/cache"
	"ExpertBridge/internal/modules/feed/infrastructure/embedding"
	"ExpertBridge/internal/modules/feed/infrastructure/persistence"
	"ExpertBridge/internal/modules/feed/infrastructure/vectordb"
	feedHandler "ExpertBridge/internal/modules/feed/interface/http"
	"ExpertBridge/pkg/ssl"
	"ExpertBridge/pkg/zlog"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mentity "github.com/milvus-io/milvus-sdk-go/v2/entity"
)

var GE *gin.Engine

func init() {
	conf := config.GetConfig()

	GE = gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	GE.Use(cors.New(corsConfig))
	GE.Use(requestid.RequestId())
	GE.Use(ssl.TlsHandler(conf.MainConfig.Host, conf.MainConfig.Port))

	if initial.MilvusClient == nil {
		zlog.Fatal("milvus is required for the feed service")
	}

	collection := strings.TrimSpace(conf.MilvusConfig.CollectionName)
	if collection == "" {
		collection = "content_embeddings"
	}
	dim := conf.MilvusConfig.VectorDim
	if dim <= 0 {
		dim = conf.FeedConfig.EmbeddingDim
	}
	metricType := mentity.COSINE
	if mt := strings.TrimSpace(conf.MilvusConfig.MetricType); mt != "" {
		metricType = mentity.MetricType(mt)
	}

	store, err := vectordb.NewMilvusStore(initial.MilvusClient, collection, "vector", dim, metricType)
	if err != nil {
		zlog.Fatal(err.Error())
	}
	index, err := vectordb.NewMilvusSimilarityIndex(store)
	if err != nil {
		zlog.Fatal(err.Error())
	}

	resultCache := cache.NewRedisResultCache(initial.RedisClient)
	contentRepo := persistence.NewContentRepository(initial.GormDB)
	interestRepo := persistence.NewInterestRepository(initial.GormDB)

	rankingSvc := service.NewRankingService(
		index,
		resultCache,
		contentRepo,
		interestRepo,
		embedding.NewFallbackGenerator(),
		service.RankingServiceConfig{
			EmbeddingDim: dim,
			CacheTTL:     time.Duration(conf.FeedConfig.CacheTTLSeconds) * time.Second,
		},
	)

	feedH := feedHandler.NewFeedHandler(rankingSvc, conf.FeedConfig)

	// Feed endpoints serve anonymous visitors too; identity only refines the
	// ranking (self-exclusion) and per-item flags.
	feed := GE.Group("/feed")
	feed.Use(jwtMiddleware.OptionalAuth())
	feed.POST("/getRecommendedFeed", feedH.GetRecommendedFeed)
	feed.POST("/getRecommendedFeedByPage", feedH.GetRecommendedFeedByPage)
	feed.POST("/getSimilarPosts", feedH.GetSimilarPosts)
	feed.POST("/getSuggestedJobs", feedH.GetSuggestedJobs)
}
