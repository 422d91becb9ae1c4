package repository

import (
	"context"
	"sort"
)

// SimilarityIndex is the domain-level abstraction over the vector database.
//
// Design constraints:
// 1) application code depends only on this interface, never on the Milvus SDK.
// 2) infrastructure implements it through an adapter (MilvusSimilarityIndex),
//    so the index stays replaceable (Milvus/pgvector/ES vectors).
//
// Ordering contract: QueryNearest returns candidates ordered by ascending
// cosine distance, with equal distances broken by ascending ItemId. When
// After is set, only candidates ranked strictly after the bound are returned.
// Items without an embedding never appear in results.

// RankBound is the exclusive lower bound of a cursor page: the next page holds
// only candidates ranked strictly after (Distance, ItemId).
type RankBound struct {
	Distance float64
	ItemId   string
}

// Candidate is one ranked row returned by the similarity index.
type Candidate struct {
	ItemId      string
	AuthorId    string
	ContentType string
	Distance    float64 // cosine distance in [0,2], lower is more similar
}

// SimilarityQuery describes one nearest-neighbour lookup.
type SimilarityQuery struct {
	Vector          []float32
	ContentType     string
	Limit           int
	ExcludeAuthorId string // skip self-authored content when set
	ExcludeItemId   string // skip the anchor item when set
	After           *RankBound
}

type SimilarityIndex interface {
	QueryNearest(ctx context.Context, q SimilarityQuery) ([]Candidate, error)
	// GetItemVector returns the stored embedding of an item, or nil (and no
	// error) when the item has none.
	GetItemVector(ctx context.Context, itemId string) ([]float32, error)
}

// RankLess orders candidates by (distance asc, itemId asc). The id tie-break
// keeps the ordering total under equal floating-point distances, which both
// pagination strategies require to stay non-duplicating.
func RankLess(a, b Candidate) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.ItemId < b.ItemId
}

// AfterBound reports whether c is ranked strictly after the bound. A nil bound
// admits every candidate.
func AfterBound(c Candidate, b *RankBound) bool {
	if b == nil {
		return true
	}
	if c.Distance != b.Distance {
		return c.Distance > b.Distance
	}
	return c.ItemId > b.ItemId
}

// NormalizeRanking sorts candidates into canonical rank order and drops those
// at or before the bound. Index adapters may push the bound down to the vector
// database; callers still normalize so correctness never depends on pushdown.
func NormalizeRanking(cs []Candidate, after *RankBound) []Candidate {
	sort.Slice(cs, func(i, j int) bool { return RankLess(cs[i], cs[j]) })
	if after == nil {
		return cs
	}
	out := cs[:0]
	for _, c := range cs {
		if AfterBound(c, after) {
			out = append(out, c)
		}
	}
	return out
}
