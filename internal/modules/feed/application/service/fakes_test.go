package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"ExpertBridge/internal/modules/feed/domain/entity"
	"ExpertBridge/internal/modules/feed/domain/repository"
)

// fakeIndex serves a fixed candidate set with the same ordering contract as
// the real adapter. Distances are fixed per item; the query vector is recorded
// so tests can assert which vector a page was ranked against.
type fakeIndex struct {
	mu         sync.Mutex
	items      []repository.Candidate
	vectors    map[string][]float32
	queries    []repository.SimilarityQuery
	queryCount int32
	err        error
}

func (f *fakeIndex) QueryNearest(ctx context.Context, q repository.SimilarityQuery) ([]repository.Candidate, error) {
	atomic.AddInt32(&f.queryCount, 1)
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	matched := make([]repository.Candidate, 0, len(f.items))
	for _, c := range f.items {
		if q.ContentType != "" && c.ContentType != q.ContentType {
			continue
		}
		if q.ExcludeAuthorId != "" && c.AuthorId == q.ExcludeAuthorId {
			continue
		}
		if q.ExcludeItemId != "" && c.ItemId == q.ExcludeItemId {
			continue
		}
		matched = append(matched, c)
	}
	matched = repository.NormalizeRanking(matched, q.After)
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	out := make([]repository.Candidate, len(matched))
	copy(out, matched)
	return out, nil
}

func (f *fakeIndex) GetItemVector(ctx context.Context, itemId string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors[itemId], nil
}

func (f *fakeIndex) queryCountValue() int32 {
	return atomic.LoadInt32(&f.queryCount)
}

func (f *fakeIndex) lastQuery() repository.SimilarityQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

// fakeCache is an in-memory get-or-populate cache. Holding the mutex across
// populate gives it single-flight semantics. With failing=true it behaves
// like a broken backend: every call is a miss, nothing is stored, but the
// populate result still flows back (fail open).
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	failing bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) GetOrPopulate(ctx context.Context, key string, ttl time.Duration, populate repository.PopulateFunc) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.failing {
		if v, ok := c.entries[key]; ok {
			return v, nil
		}
	}
	data, err := populate(ctx)
	if err != nil {
		return nil, err
	}
	if !c.failing {
		c.entries[key] = data
	}
	return data, nil
}

type fakeContentRepo struct {
	mu      sync.Mutex
	posts   map[string]entity.Post
	jobs    map[string]entity.JobPosting
	authors map[string]entity.AuthorBrief
	voted   map[string]map[string]struct{}
	applied map[string]map[string]struct{}
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{
		posts:   make(map[string]entity.Post),
		jobs:    make(map[string]entity.JobPosting),
		authors: make(map[string]entity.AuthorBrief),
		voted:   make(map[string]map[string]struct{}),
		applied: make(map[string]map[string]struct{}),
	}
}

func (r *fakeContentRepo) addPost(uuid, authorId, title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[uuid] = entity.Post{Uuid: uuid, AuthorId: authorId, Title: title, CreatedAt: time.Now()}
}

func (r *fakeContentRepo) addJob(uuid, authorId, title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[uuid] = entity.JobPosting{Uuid: uuid, AuthorId: authorId, Title: title, CreatedAt: time.Now()}
}

func (r *fakeContentRepo) removePost(uuid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, uuid)
}

func (r *fakeContentRepo) markApplied(userUuid, jobUuid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.applied[userUuid] == nil {
		r.applied[userUuid] = make(map[string]struct{})
	}
	r.applied[userUuid][jobUuid] = struct{}{}
}

func (r *fakeContentRepo) markVoted(userUuid, postUuid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.voted[userUuid] == nil {
		r.voted[userUuid] = make(map[string]struct{})
	}
	r.voted[userUuid][postUuid] = struct{}{}
}

func (r *fakeContentRepo) GetPostsByUuids(ctx context.Context, uuids []string) ([]entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Post, 0, len(uuids))
	for _, id := range uuids {
		if p, ok := r.posts[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeContentRepo) GetJobsByUuids(ctx context.Context, uuids []string) ([]entity.JobPosting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.JobPosting, 0, len(uuids))
	for _, id := range uuids {
		if j, ok := r.jobs[id]; ok {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *fakeContentRepo) GetAuthorBriefs(ctx context.Context, uuids []string) (map[string]entity.AuthorBrief, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]entity.AuthorBrief, len(uuids))
	for _, id := range uuids {
		if b, ok := r.authors[id]; ok {
			out[id] = b
		}
	}
	return out, nil
}

func (r *fakeContentRepo) GetVotedPostUuids(ctx context.Context, userUuid string, postUuids []string) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]struct{})
	for _, id := range postUuids {
		if _, ok := r.voted[userUuid][id]; ok {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

func (r *fakeContentRepo) GetAppliedJobUuids(ctx context.Context, userUuid string, jobUuids []string) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]struct{})
	for _, id := range jobUuids {
		if _, ok := r.applied[userUuid][id]; ok {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

type fakeInterestRepo struct {
	embeddings map[string][]float32
	err        error
}

func (r *fakeInterestRepo) GetInterestEmbedding(ctx context.Context, userUuid string) ([]float32, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.embeddings[userUuid], nil
}

// fixedGenerator hands out a fixed vector so tests can tell a generated
// fallback apart from a carried one.
type fixedGenerator struct {
	vec       []float32
	callCount int32
}

func (g *fixedGenerator) Generate(dim int) []float32 {
	atomic.AddInt32(&g.callCount, 1)
	out := make([]float32, len(g.vec))
	copy(out, g.vec)
	return out
}
