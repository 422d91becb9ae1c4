package repository

import (
	"context"

	"ExpertBridge/internal/modules/feed/domain/entity"
)

// ContentRepository reads the relational rows behind ranked ids. The feed
// never writes content; authoring lives in its own service.
type ContentRepository interface {
	GetPostsByUuids(ctx context.Context, uuids []string) ([]entity.Post, error)
	GetJobsByUuids(ctx context.Context, uuids []string) ([]entity.JobPosting, error)
	GetAuthorBriefs(ctx context.Context, uuids []string) (map[string]entity.AuthorBrief, error)
	// GetVotedPostUuids returns the subset of postUuids the user has voted on.
	GetVotedPostUuids(ctx context.Context, userUuid string, postUuids []string) (map[string]struct{}, error)
	// GetAppliedJobUuids returns the subset of jobUuids the user has applied to.
	GetAppliedJobUuids(ctx context.Context, userUuid string, jobUuids []string) (map[string]struct{}, error)
}
