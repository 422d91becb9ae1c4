package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ExpertBridge/internal/modules/feed/application/dto/request"
	"ExpertBridge/internal/modules/feed/application/dto/respond"
	"ExpertBridge/internal/modules/feed/domain/entity"
	"ExpertBridge/internal/modules/feed/domain/repository"
	"ExpertBridge/pkg/xerr"
	"ExpertBridge/pkg/zlog"
)

// EmbeddingGenerator produces a substitute interest vector for callers with
// no stored signal. Generation is pure and never fails.
type EmbeddingGenerator interface {
	Generate(dim int) []float32
}

// RankingService turns an interest vector into an ordered, paginated feed of
// content ranked by cosine distance. All operations are read-only; the only
// side effect anywhere is result-cache population.
type RankingService interface {
	// GetRecommendedFeed returns one cursor-mode page of the post feed.
	// userUuid may be empty for anonymous callers.
	GetRecommendedFeed(ctx context.Context, userUuid string, req request.GetRecommendedFeedRequest) (*respond.FeedRespond, error)
	// GetRecommendedFeedByPage is the offset-mode variant of the post feed.
	GetRecommendedFeedByPage(ctx context.Context, userUuid string, req request.GetRecommendedFeedByPageRequest) (*respond.FeedRespond, error)
	// GetSimilarPosts returns posts nearest to the anchor post, cached by
	// (operation, anchor, limit). An anchor without an embedding yields an
	// empty list rather than an error.
	GetSimilarPosts(ctx context.Context, req request.GetSimilarPostsRequest) ([]respond.ContentSummary, error)
	// GetSuggestedJobs returns jobs nearest to the caller's interest vector,
	// cached by (operation, caller-or-anonymous, limit).
	GetSuggestedJobs(ctx context.Context, userUuid string, req request.GetSuggestedJobsRequest) ([]respond.ContentSummary, error)
}

type RankingServiceConfig struct {
	EmbeddingDim int
	CacheTTL     time.Duration
}

type rankingServiceImpl struct {
	index        repository.SimilarityIndex
	cache        repository.ResultCache
	contentRepo  repository.ContentRepository
	interestRepo repository.InterestRepository
	generator    EmbeddingGenerator
	cursorPager  *CursorPaginator
	offsetPager  *OffsetPaginator
	conf         RankingServiceConfig
}

func NewRankingService(
	index repository.SimilarityIndex,
	cache repository.ResultCache,
	contentRepo repository.ContentRepository,
	interestRepo repository.InterestRepository,
	generator EmbeddingGenerator,
	conf RankingServiceConfig,
) RankingService {
	if conf.EmbeddingDim <= 0 {
		conf.EmbeddingDim = 1024
	}
	if conf.CacheTTL <= 0 {
		conf.CacheTTL = 5 * time.Minute
	}
	return &rankingServiceImpl{
		index:        index,
		cache:        cache,
		contentRepo:  contentRepo,
		interestRepo: interestRepo,
		generator:    generator,
		cursorPager:  NewCursorPaginator(index),
		offsetPager:  NewOffsetPaginator(index),
		conf:         conf,
	}
}

// resolveInterestVector picks the query vector in priority order: the stored
// profile embedding, then a vector carried from a previous page or supplied by
// the client, then a fresh fallback. fromProfile tells the caller whether the
// vector must be round-tripped to keep later pages stable.
func (s *rankingServiceImpl) resolveInterestVector(ctx context.Context, userUuid string, carried, clientEmbedding []float32) (vec []float32, fromProfile bool) {
	if userUuid != "" {
		stored, err := s.interestRepo.GetInterestEmbedding(ctx, userUuid)
		if err != nil {
			zlog.Warn(fmt.Sprintf("interest embedding lookup failed for user %s: %v", userUuid, err))
		} else if len(stored) > 0 {
			return stored, true
		}
	}
	if len(carried) > 0 {
		return carried, false
	}
	if len(clientEmbedding) > 0 {
		return clientEmbedding, false
	}
	return s.generator.Generate(s.conf.EmbeddingDim), false
}

func (s *rankingServiceImpl) GetRecommendedFeed(ctx context.Context, userUuid string, req request.GetRecommendedFeedRequest) (*respond.FeedRespond, error) {
	var cursor *Cursor
	if req.Cursor != "" {
		c, err := DecodeCursor(req.Cursor)
		if err != nil {
			return nil, xerr.New(xerr.BadRequest, "invalid cursor")
		}
		cursor = c
	}

	var carried []float32
	if cursor != nil {
		carried = cursor.Embedding
	}
	vec, fromProfile := s.resolveInterestVector(ctx, userUuid, carried, req.ClientEmbedding)

	q := repository.SimilarityQuery{
		Vector:          vec,
		ContentType:     entity.ContentTypePost,
		ExcludeAuthorId: userUuid,
	}
	if cursor != nil {
		q.After = &repository.RankBound{Distance: cursor.LastDistance, ItemId: cursor.LastItemId}
	}

	candidates, hasNext, err := s.cursorPager.Page(ctx, q, req.PageSize)
	if err != nil {
		zlog.Error(fmt.Sprintf("recommended feed query failed: %v", err))
		return nil, xerr.ErrServerError
	}

	items, err := s.hydratePosts(ctx, userUuid, candidates)
	if err != nil {
		zlog.Error(fmt.Sprintf("recommended feed hydration failed: %v", err))
		return nil, xerr.ErrServerError
	}

	resp := &respond.FeedRespond{
		Items:    items,
		PageInfo: respond.PageInfo{HasNextPage: hasNext},
	}
	if hasNext && len(candidates) > 0 {
		// The bound for the next page is the last ranked row kept on this
		// page; the lookahead row was dropped and resurfaces as the first
		// row of the next page. Profile-backed vectors are re-resolved on
		// every call and never leave the server.
		last := candidates[len(candidates)-1]
		next := Cursor{LastDistance: last.Distance, LastItemId: last.ItemId}
		if !fromProfile {
			next.Embedding = vec
		}
		resp.PageInfo.NextCursor = EncodeCursor(next)
	}
	return resp, nil
}

func (s *rankingServiceImpl) GetRecommendedFeedByPage(ctx context.Context, userUuid string, req request.GetRecommendedFeedByPageRequest) (*respond.FeedRespond, error) {
	vec, fromProfile := s.resolveInterestVector(ctx, userUuid, nil, req.ClientEmbedding)

	q := repository.SimilarityQuery{
		Vector:          vec,
		ContentType:     entity.ContentTypePost,
		ExcludeAuthorId: userUuid,
	}
	candidates, hasNext, err := s.offsetPager.Page(ctx, q, req.Page, req.PageSize)
	if err != nil {
		zlog.Error(fmt.Sprintf("offset feed query failed: %v", err))
		return nil, xerr.ErrServerError
	}

	items, err := s.hydratePosts(ctx, userUuid, candidates)
	if err != nil {
		zlog.Error(fmt.Sprintf("offset feed hydration failed: %v", err))
		return nil, xerr.ErrServerError
	}

	resp := &respond.FeedRespond{
		Items:    items,
		PageInfo: respond.PageInfo{HasNextPage: hasNext},
	}
	if !fromProfile {
		// Echo the effective vector so the client can replay it on the next
		// page; omitting it would re-randomize the ranking between pages.
		resp.PageInfo.UsedFallbackEmbedding = vec
	}
	return resp, nil
}

func (s *rankingServiceImpl) GetSimilarPosts(ctx context.Context, req request.GetSimilarPostsRequest) ([]respond.ContentSummary, error) {
	key := fmt.Sprintf("feed:similar_posts:%s:%d", req.PostId, req.Limit)
	payload, err := s.cache.GetOrPopulate(ctx, key, s.conf.CacheTTL, func(ctx context.Context) ([]byte, error) {
		items, err := s.querySimilarPosts(ctx, req.PostId, req.Limit)
		if err != nil {
			return nil, err
		}
		return json.Marshal(items)
	})
	if err != nil {
		zlog.Error(fmt.Sprintf("similar posts lookup failed for %s: %v", req.PostId, err))
		return nil, xerr.ErrServerError
	}
	return decodeSummaries(payload)
}

func (s *rankingServiceImpl) querySimilarPosts(ctx context.Context, postUuid string, limit int) ([]respond.ContentSummary, error) {
	anchor, err := s.index.GetItemVector(ctx, postUuid)
	if err != nil {
		return nil, err
	}
	if len(anchor) == 0 {
		zlog.Warn(fmt.Sprintf("post %s has no embedding, returning empty similar list", postUuid))
		return []respond.ContentSummary{}, nil
	}
	candidates, err := s.index.QueryNearest(ctx, repository.SimilarityQuery{
		Vector:        anchor,
		ContentType:   entity.ContentTypePost,
		Limit:         limit,
		ExcludeItemId: postUuid,
	})
	if err != nil {
		return nil, err
	}
	candidates = repository.NormalizeRanking(candidates, nil)
	// Cached across callers, so no per-caller flags are attached here.
	return s.hydratePosts(ctx, "", candidates)
}

func (s *rankingServiceImpl) GetSuggestedJobs(ctx context.Context, userUuid string, req request.GetSuggestedJobsRequest) ([]respond.ContentSummary, error) {
	subject := userUuid
	if subject == "" {
		subject = "anonymous"
	}
	key := fmt.Sprintf("feed:suggested_jobs:%s:%d", subject, req.Limit)
	payload, err := s.cache.GetOrPopulate(ctx, key, s.conf.CacheTTL, func(ctx context.Context) ([]byte, error) {
		items, err := s.querySuggestedJobs(ctx, userUuid, req.Limit)
		if err != nil {
			return nil, err
		}
		return json.Marshal(items)
	})
	if err != nil {
		zlog.Error(fmt.Sprintf("suggested jobs lookup failed for %s: %v", subject, err))
		return nil, xerr.ErrServerError
	}
	return decodeSummaries(payload)
}

func (s *rankingServiceImpl) querySuggestedJobs(ctx context.Context, userUuid string, limit int) ([]respond.ContentSummary, error) {
	vec, _ := s.resolveInterestVector(ctx, userUuid, nil, nil)
	candidates, err := s.index.QueryNearest(ctx, repository.SimilarityQuery{
		Vector:          vec,
		ContentType:     entity.ContentTypeJob,
		Limit:           limit,
		ExcludeAuthorId: userUuid,
	})
	if err != nil {
		return nil, err
	}
	candidates = repository.NormalizeRanking(candidates, nil)
	// The cache key is per-caller, so per-caller flags are safe to cache.
	return s.hydrateJobs(ctx, userUuid, candidates)
}

// hydratePosts projects ranked candidates into response summaries, preserving
// rank order. Ids that no longer resolve to a live row are dropped silently;
// the page may legitimately come back shorter than requested.
func (s *rankingServiceImpl) hydratePosts(ctx context.Context, callerUuid string, candidates []repository.Candidate) ([]respond.ContentSummary, error) {
	if len(candidates) == 0 {
		return []respond.ContentSummary{}, nil
	}
	uuids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		uuids = append(uuids, c.ItemId)
	}

	posts, err := s.contentRepo.GetPostsByUuids(ctx, uuids)
	if err != nil {
		return nil, err
	}
	byUuid := make(map[string]entity.Post, len(posts))
	authorUuids := make([]string, 0, len(posts))
	for i := range posts {
		byUuid[posts[i].Uuid] = posts[i]
		authorUuids = append(authorUuids, posts[i].AuthorId)
	}

	authors, err := s.contentRepo.GetAuthorBriefs(ctx, authorUuids)
	if err != nil {
		return nil, err
	}

	var voted map[string]struct{}
	if callerUuid != "" {
		voted, err = s.contentRepo.GetVotedPostUuids(ctx, callerUuid, uuids)
		if err != nil {
			return nil, err
		}
	}

	out := make([]respond.ContentSummary, 0, len(candidates))
	for _, c := range candidates {
		post, ok := byUuid[c.ItemId]
		if !ok {
			continue
		}
		_, hasVoted := voted[post.Uuid]
		out = append(out, respond.ContentSummary{
			Uuid:           post.Uuid,
			ContentType:    entity.ContentTypePost,
			Title:          post.Title,
			Summary:        post.Summary,
			Author:         authorSummaryOf(authors, post.AuthorId),
			CreatedAt:      post.CreatedAt.Format(time.RFC3339),
			RelevanceScore: 1 - c.Distance,
			VotedByCaller:  hasVoted,
		})
	}
	return out, nil
}

func (s *rankingServiceImpl) hydrateJobs(ctx context.Context, callerUuid string, candidates []repository.Candidate) ([]respond.ContentSummary, error) {
	if len(candidates) == 0 {
		return []respond.ContentSummary{}, nil
	}
	uuids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		uuids = append(uuids, c.ItemId)
	}

	jobs, err := s.contentRepo.GetJobsByUuids(ctx, uuids)
	if err != nil {
		return nil, err
	}
	byUuid := make(map[string]entity.JobPosting, len(jobs))
	authorUuids := make([]string, 0, len(jobs))
	for i := range jobs {
		byUuid[jobs[i].Uuid] = jobs[i]
		authorUuids = append(authorUuids, jobs[i].AuthorId)
	}

	authors, err := s.contentRepo.GetAuthorBriefs(ctx, authorUuids)
	if err != nil {
		return nil, err
	}

	var applied map[string]struct{}
	if callerUuid != "" {
		applied, err = s.contentRepo.GetAppliedJobUuids(ctx, callerUuid, uuids)
		if err != nil {
			return nil, err
		}
	}

	out := make([]respond.ContentSummary, 0, len(candidates))
	for _, c := range candidates {
		job, ok := byUuid[c.ItemId]
		if !ok {
			continue
		}
		_, hasApplied := applied[job.Uuid]
		out = append(out, respond.ContentSummary{
			Uuid:            job.Uuid,
			ContentType:     entity.ContentTypeJob,
			Title:           job.Title,
			Summary:         job.Summary,
			Author:          authorSummaryOf(authors, job.AuthorId),
			CreatedAt:       job.CreatedAt.Format(time.RFC3339),
			RelevanceScore:  1 - c.Distance,
			AppliedByCaller: hasApplied,
		})
	}
	return out, nil
}

func authorSummaryOf(authors map[string]entity.AuthorBrief, uuid string) respond.AuthorSummary {
	brief, ok := authors[uuid]
	if !ok {
		return respond.AuthorSummary{Uuid: uuid}
	}
	return respond.AuthorSummary{
		Uuid:     brief.Uuid,
		Nickname: brief.Nickname,
		Avatar:   brief.Avatar,
		Headline: brief.Headline,
	}
}

func decodeSummaries(payload []byte) ([]respond.ContentSummary, error) {
	var items []respond.ContentSummary
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, xerr.ErrServerError
	}
	if items == nil {
		items = []respond.ContentSummary{}
	}
	return items, nil
}
