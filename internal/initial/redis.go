package initial

import (
	"context"
	"fmt"
	"time"

	"ExpertBridge/internal/config"
	"ExpertBridge/pkg/zlog"

	goredis "github.com/redis/go-redis/v9"
)

// RedisClient is nil when Redis is not configured or unreachable; the result
// cache treats that as permanent misses and queries directly.
var RedisClient *goredis.Client

func init() {
	conf := config.GetConfig()
	host := conf.RedisConfig.Host
	port := conf.RedisConfig.Port

	if host == "" {
		zlog.Info("redis not configured, result cache disabled")
		return
	}

	if port == 0 {
		port = 6379
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	zlog.Info(fmt.Sprintf("redis connecting: %s", addr))

	client := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		Password:     conf.RedisConfig.Password,
		DB:           conf.RedisConfig.DB,
		PoolSize:     conf.RedisConfig.PoolSize,
		MinIdleConns: conf.RedisConfig.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		zlog.Error(fmt.Sprintf("redis connect failed: %v", err))
		_ = client.Close()
		return
	}

	RedisClient = client
	zlog.Info("redis connected")
}
