package service

import (
	"context"

	"ExpertBridge/internal/modules/feed/domain/repository"
)

// CursorPaginator pages through a similarity ordering keyed by the last seen
// (distance, itemId) pair. A page request fetches pageSize+1 candidates past
// the bound; the extra row only proves another page exists and becomes the
// first row of the next page, never part of the current one.
//
// Requesting again with an exhausted cursor yields an empty page with
// hasNext=false, not an error.
type CursorPaginator struct {
	index repository.SimilarityIndex
}

func NewCursorPaginator(index repository.SimilarityIndex) *CursorPaginator {
	return &CursorPaginator{index: index}
}

// Page returns up to pageSize candidates ranked strictly after q.After and
// whether more remain. The ranking is normalized in-process so the tie-break
// guarantee holds even when the index adapter cannot push the bound down.
func (p *CursorPaginator) Page(ctx context.Context, q repository.SimilarityQuery, pageSize int) ([]repository.Candidate, bool, error) {
	q.Limit = pageSize + 1
	candidates, err := p.index.QueryNearest(ctx, q)
	if err != nil {
		return nil, false, err
	}
	candidates = repository.NormalizeRanking(candidates, q.After)
	if len(candidates) > pageSize {
		return candidates[:pageSize], true, nil
	}
	return candidates, false, nil
}
