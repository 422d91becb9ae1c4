package service

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ExpertBridge/internal/modules/feed/domain/entity"
	"ExpertBridge/internal/modules/feed/domain/repository"
)

func candidateIds(cs []repository.Candidate) []string {
	ids := make([]string, 0, len(cs))
	for _, c := range cs {
		ids = append(ids, c.ItemId)
	}
	return ids
}

func TestCursorPaginatorTieBreakPages(t *testing.T) {
	idx := &fakeIndex{items: []repository.Candidate{
		{ItemId: "b", ContentType: entity.ContentTypePost, Distance: 0.1},
		{ItemId: "a", ContentType: entity.ContentTypePost, Distance: 0.1},
		{ItemId: "c", ContentType: entity.ContentTypePost, Distance: 0.2},
		{ItemId: "d", ContentType: entity.ContentTypePost, Distance: 0.3},
		{ItemId: "e", ContentType: entity.ContentTypePost, Distance: 0.9},
	}}
	pager := NewCursorPaginator(idx)
	ctx := context.Background()
	q := repository.SimilarityQuery{ContentType: entity.ContentTypePost}

	page1, hasNext, err := pager.Page(ctx, q, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, candidateIds(page1))
	assert.True(t, hasNext)

	last := page1[len(page1)-1]
	q.After = &repository.RankBound{Distance: last.Distance, ItemId: last.ItemId}
	page2, hasNext, err := pager.Page(ctx, q, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, candidateIds(page2))
	assert.True(t, hasNext)

	last = page2[len(page2)-1]
	q.After = &repository.RankBound{Distance: last.Distance, ItemId: last.ItemId}
	page3, hasNext, err := pager.Page(ctx, q, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"e"}, candidateIds(page3))
	assert.False(t, hasNext)
}

// Walking the full ranking page by page must visit every item exactly once,
// in rank order, even when many items share a distance.
func TestCursorPaginatorFullTraversal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	distances := []float64{0.05, 0.05, 0.05, 0.1, 0.2, 0.2, 0.35, 0.35}
	var items []repository.Candidate
	for i := 0; i < 50; i++ {
		items = append(items, repository.Candidate{
			ItemId:      string(rune('a'+i/26)) + string(rune('a'+i%26)),
			ContentType: entity.ContentTypePost,
			Distance:    distances[rng.Intn(len(distances))],
		})
	}
	idx := &fakeIndex{items: items}
	pager := NewCursorPaginator(idx)
	ctx := context.Background()

	var seen []repository.Candidate
	q := repository.SimilarityQuery{ContentType: entity.ContentTypePost}
	for {
		page, hasNext, err := pager.Page(ctx, q, 7)
		require.NoError(t, err)
		seen = append(seen, page...)
		if !hasNext {
			break
		}
		require.NotEmpty(t, page)
		last := page[len(page)-1]
		q.After = &repository.RankBound{Distance: last.Distance, ItemId: last.ItemId}
	}

	require.Len(t, seen, len(items))
	unique := make(map[string]struct{}, len(seen))
	for i, c := range seen {
		unique[c.ItemId] = struct{}{}
		if i > 0 {
			assert.True(t, repository.RankLess(seen[i-1], c),
				"items %s and %s out of order", seen[i-1].ItemId, c.ItemId)
		}
	}
	assert.Len(t, unique, len(items), "traversal repeated an item")
}

func TestCursorPaginatorExhaustedBound(t *testing.T) {
	idx := &fakeIndex{items: []repository.Candidate{
		{ItemId: "a", ContentType: entity.ContentTypePost, Distance: 0.1},
	}}
	pager := NewCursorPaginator(idx)
	q := repository.SimilarityQuery{
		ContentType: entity.ContentTypePost,
		After:       &repository.RankBound{Distance: 0.1, ItemId: "a"},
	}

	// requesting past the end twice stays empty and error-free
	for i := 0; i < 2; i++ {
		page, hasNext, err := pager.Page(context.Background(), q, 5)
		require.NoError(t, err)
		assert.Empty(t, page)
		assert.False(t, hasNext)
	}
}

func TestCursorPaginatorAllEqualDistances(t *testing.T) {
	idx := &fakeIndex{items: []repository.Candidate{
		{ItemId: "c", ContentType: entity.ContentTypePost, Distance: 0.5},
		{ItemId: "a", ContentType: entity.ContentTypePost, Distance: 0.5},
		{ItemId: "d", ContentType: entity.ContentTypePost, Distance: 0.5},
		{ItemId: "b", ContentType: entity.ContentTypePost, Distance: 0.5},
	}}
	pager := NewCursorPaginator(idx)
	ctx := context.Background()

	page1, hasNext, err := pager.Page(ctx, repository.SimilarityQuery{ContentType: entity.ContentTypePost}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, candidateIds(page1))
	assert.True(t, hasNext)

	page2, hasNext, err := pager.Page(ctx, repository.SimilarityQuery{
		ContentType: entity.ContentTypePost,
		After:       &repository.RankBound{Distance: 0.5, ItemId: "b"},
	}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, candidateIds(page2))
	assert.False(t, hasNext)
}
