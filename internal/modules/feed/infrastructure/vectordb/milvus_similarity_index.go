package vectordb

import (
	"context"
	"fmt"
	"strings"

	"ExpertBridge/internal/modules/feed/domain/repository"
)

// tieEpsilon widens the pushed-down score ceiling so rows tied exactly at the
// cursor distance survive the range filter; the exact compound predicate is
// re-applied in-process afterwards.
const tieEpsilon = 1e-6

// overfetchFactor pads the requested topK before pushdown filtering; ties
// dropped by the exact predicate eat into the fetched window.
const overfetchFactor = 2

// MilvusSimilarityIndex implements repository.SimilarityIndex on top of
// MilvusStore.
//
// Layering mirrors the rest of the module:
// - milvus_store.go: raw SDK wrapper (SearchHit), no domain dependency.
// - milvus_similarity_index.go: maps domain queries onto the store.
//
// Milvus reports COSINE scores as similarity; the adapter converts them to
// cosine distance (1 - score) and normalizes the ordering in-process, so the
// (distance asc, id asc) contract holds regardless of how the index ranks
// tied rows internally.
type MilvusSimilarityIndex struct {
	store *MilvusStore
}

var _ repository.SimilarityIndex = (*MilvusSimilarityIndex)(nil)

func NewMilvusSimilarityIndex(store *MilvusStore) (*MilvusSimilarityIndex, error) {
	if store == nil {
		return nil, fmt.Errorf("milvus store is nil")
	}
	return &MilvusSimilarityIndex{store: store}, nil
}

func (m *MilvusSimilarityIndex) QueryNearest(ctx context.Context, q repository.SimilarityQuery) ([]repository.Candidate, error) {
	if q.Limit <= 0 {
		return []repository.Candidate{}, nil
	}

	var scoreCeil *float64
	if q.After != nil {
		// distance > lastDistance maps to score < 1-lastDistance for COSINE.
		ceil := 1 - q.After.Distance + tieEpsilon
		scoreCeil = &ceil
	}

	hits, err := m.store.Search(ctx, q.Vector, q.Limit*overfetchFactor, buildExpr(q), scoreCeil)
	if err != nil {
		return nil, err
	}

	candidates := make([]repository.Candidate, 0, len(hits))
	for _, h := range hits {
		candidates = append(candidates, repository.Candidate{
			ItemId:      h.ID,
			AuthorId:    h.AuthorId,
			ContentType: h.ContentType,
			Distance:    clampDistance(1 - float64(h.Score)),
		})
	}

	candidates = repository.NormalizeRanking(candidates, q.After)
	if len(candidates) > q.Limit {
		candidates = candidates[:q.Limit]
	}
	return candidates, nil
}

func (m *MilvusSimilarityIndex) GetItemVector(ctx context.Context, itemId string) ([]float32, error) {
	return m.store.GetVectorByID(ctx, itemId)
}

func buildExpr(q repository.SimilarityQuery) string {
	parts := make([]string, 0, 3)
	if q.ContentType != "" {
		parts = append(parts, fmt.Sprintf(`content_type == "%s"`, escapeExprString(q.ContentType)))
	}
	if q.ExcludeAuthorId != "" {
		parts = append(parts, fmt.Sprintf(`author_id != "%s"`, escapeExprString(q.ExcludeAuthorId)))
	}
	if q.ExcludeItemId != "" {
		parts = append(parts, fmt.Sprintf(`id != "%s"`, escapeExprString(q.ExcludeItemId)))
	}
	return strings.Join(parts, " && ")
}

func clampDistance(d float64) float64 {
	if d < 0 {
		return 0
	}
	if d > 2 {
		return 2
	}
	return d
}
