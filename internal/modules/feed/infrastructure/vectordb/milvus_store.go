package vectordb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mclient "github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

// SearchHit is one raw row returned by a Milvus vector search. Score is the
// metric value as Milvus reports it; for COSINE that is similarity, higher is
// closer.
type SearchHit struct {
	ID          string
	Score       float32
	AuthorId    string
	ContentType string
}

// MilvusStore wraps the Milvus SDK for the content-embedding collection. It
// does not depend on domain types; MilvusSimilarityIndex adapts it to the
// domain interface.
type MilvusStore struct {
	cli         mclient.Client
	collection  string
	vectorField string
	metricType  entity.MetricType
	vectorDim   int
}

func NewMilvusStore(cli mclient.Client, collection string, vectorField string, vectorDim int, metricType entity.MetricType) (*MilvusStore, error) {
	if cli == nil {
		return nil, errors.New("milvus client is nil")
	}
	if strings.TrimSpace(collection) == "" {
		return nil, errors.New("collection is empty")
	}
	if strings.TrimSpace(vectorField) == "" {
		return nil, errors.New("vectorField is empty")
	}
	if vectorDim <= 0 {
		return nil, fmt.Errorf("invalid vectorDim: %d", vectorDim)
	}
	return &MilvusStore{cli: cli, collection: collection, vectorField: vectorField, metricType: metricType, vectorDim: vectorDim}, nil
}

// Search runs a nearest-neighbour query. When scoreCeil is non-nil only rows
// with score <= *scoreCeil are returned (range search), which is how cursor
// bounds get pushed down for similarity metrics.
func (s *MilvusStore) Search(ctx context.Context, vector []float32, topK int, expr string, scoreCeil *float64) ([]SearchHit, error) {
	if len(vector) != s.vectorDim {
		return nil, fmt.Errorf("vector dim mismatch, got=%d want=%d", len(vector), s.vectorDim)
	}
	if topK <= 0 {
		topK = 10
	}
	sp, err := entity.NewIndexAUTOINDEXSearchParam(1)
	if err != nil {
		return nil, err
	}
	if scoreCeil != nil {
		// Milvus range search for similarity metrics: radius < score <= range_filter.
		sp.AddRadius(-1.1)
		sp.AddRangeFilter(*scoreCeil)
	}

	res, err := s.cli.Search(
		ctx,
		s.collection,
		[]string{},
		expr,
		[]string{"author_id", "content_type"},
		[]entity.Vector{entity.FloatVector(vector)},
		s.vectorField,
		s.metricType,
		topK,
		sp,
	)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return []SearchHit{}, nil
	}
	return parseSearchResult(res[0])
}

// GetVectorByID fetches the stored embedding of one item. A missing item (or
// one never embedded) returns nil without error.
func (s *MilvusStore) GetVectorByID(ctx context.Context, id string) ([]float32, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	expr := fmt.Sprintf(`id == "%s"`, escapeExprString(id))
	rs, err := s.cli.Query(ctx, s.collection, []string{}, expr, []string{s.vectorField})
	if err != nil {
		return nil, err
	}
	col := columnByName(rs, s.vectorField)
	vecCol, ok := col.(*entity.ColumnFloatVector)
	if !ok || vecCol.Len() == 0 {
		return nil, nil
	}
	data := vecCol.Data()
	if len(data) == 0 {
		return nil, nil
	}
	return data[0], nil
}

func parseSearchResult(sr mclient.SearchResult) ([]SearchHit, error) {
	if sr.Err != nil {
		return nil, sr.Err
	}
	hits := make([]SearchHit, 0, sr.ResultCount)

	idCol := sr.IDs
	authorCol := columnByName(sr.Fields, "author_id")
	typeCol := columnByName(sr.Fields, "content_type")

	for i := 0; i < sr.ResultCount; i++ {
		id, _ := idCol.GetAsString(i)
		score := float32(0)
		if i < len(sr.Scores) {
			score = sr.Scores[i]
		}

		h := SearchHit{ID: id, Score: score}
		if authorCol != nil {
			v, _ := authorCol.GetAsString(i)
			h.AuthorId = v
		}
		if typeCol != nil {
			v, _ := typeCol.GetAsString(i)
			h.ContentType = v
		}
		hits = append(hits, h)
	}
	return hits, nil
}

func columnByName(cols []entity.Column, name string) entity.Column {
	for _, c := range cols {
		if c != nil && c.Name() == name {
			return c
		}
	}
	return nil
}

func escapeExprString(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`)
}
