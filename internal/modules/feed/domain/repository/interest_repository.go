package repository

import "context"

// InterestRepository reads the stored interest embedding of a member.
type InterestRepository interface {
	// GetInterestEmbedding returns the stored interest vector, or nil (and no
	// error) when the member has none.
	GetInterestEmbedding(ctx context.Context, userUuid string) ([]float32, error)
}
