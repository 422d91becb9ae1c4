package service

import (
	"context"
	"math"

	"ExpertBridge/internal/modules/feed/domain/repository"
)

// OffsetPaginator computes page/pageSize slices over the same similarity
// ordering, trading cursor stability for random page access: it fetches
// skip+pageSize+1 candidates from the top and discards the first skip.
//
// Known limitation, accepted by design: if the underlying ranking shifts
// between requests (content or embeddings changed), offset pages are not
// guaranteed to be disjoint or complete.
type OffsetPaginator struct {
	index repository.SimilarityIndex
}

func NewOffsetPaginator(index repository.SimilarityIndex) *OffsetPaginator {
	return &OffsetPaginator{index: index}
}

// Page returns the candidates of the 1-based page and whether more remain
// past it. Pages past the end of the ranking are empty, not an error.
func (p *OffsetPaginator) Page(ctx context.Context, q repository.SimilarityQuery, page, pageSize int) ([]repository.Candidate, bool, error) {
	if page < 1 || pageSize < 1 {
		return []repository.Candidate{}, false, nil
	}
	// A page number large enough to overflow the skip arithmetic lies past
	// the end of any ranking the index could hold.
	if page-1 > (math.MaxInt-pageSize-1)/pageSize {
		return []repository.Candidate{}, false, nil
	}
	skip := (page - 1) * pageSize
	q.Limit = skip + pageSize + 1
	q.After = nil
	candidates, err := p.index.QueryNearest(ctx, q)
	if err != nil {
		return nil, false, err
	}
	candidates = repository.NormalizeRanking(candidates, nil)
	if len(candidates) <= skip {
		return []repository.Candidate{}, false, nil
	}
	candidates = candidates[skip:]
	if len(candidates) > pageSize {
		return candidates[:pageSize], true, nil
	}
	return candidates, false, nil
}
