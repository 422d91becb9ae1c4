package persistence

import (
	"context"

	"ExpertBridge/internal/modules/feed/domain/entity"
	"ExpertBridge/internal/modules/feed/domain/repository"

	"gorm.io/gorm"
)

type contentRepositoryImpl struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) repository.ContentRepository {
	return &contentRepositoryImpl{db: db}
}

func (r *contentRepositoryImpl) GetPostsByUuids(ctx context.Context, uuids []string) ([]entity.Post, error) {
	if len(uuids) == 0 {
		return []entity.Post{}, nil
	}
	var posts []entity.Post
	err := r.db.WithContext(ctx).
		Select("id, uuid, author_id, title, summary, status, created_at").
		Where("uuid IN ? AND status = 0", uuids).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *contentRepositoryImpl) GetJobsByUuids(ctx context.Context, uuids []string) ([]entity.JobPosting, error) {
	if len(uuids) == 0 {
		return []entity.JobPosting{}, nil
	}
	var jobs []entity.JobPosting
	err := r.db.WithContext(ctx).
		Select("id, uuid, author_id, title, company_name, location, summary, status, created_at").
		Where("uuid IN ? AND status = 0", uuids).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *contentRepositoryImpl) GetAuthorBriefs(ctx context.Context, uuids []string) (map[string]entity.AuthorBrief, error) {
	out := make(map[string]entity.AuthorBrief, len(uuids))
	if len(uuids) == 0 {
		return out, nil
	}
	var briefs []entity.AuthorBrief
	err := r.db.WithContext(ctx).Model(&entity.UserProfile{}).
		Select("uuid", "nickname", "avatar", "headline").
		Where("uuid IN ?", uuids).
		Find(&briefs).Error
	if err != nil {
		return nil, err
	}
	for i := range briefs {
		out[briefs[i].Uuid] = briefs[i]
	}
	return out, nil
}

func (r *contentRepositoryImpl) GetVotedPostUuids(ctx context.Context, userUuid string, postUuids []string) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	if userUuid == "" || len(postUuids) == 0 {
		return out, nil
	}
	var voted []string
	err := r.db.WithContext(ctx).Model(&entity.Vote{}).
		Select("post_id").
		Where("user_id = ? AND post_id IN ?", userUuid, postUuids).
		Find(&voted).Error
	if err != nil {
		return nil, err
	}
	for _, id := range voted {
		out[id] = struct{}{}
	}
	return out, nil
}

func (r *contentRepositoryImpl) GetAppliedJobUuids(ctx context.Context, userUuid string, jobUuids []string) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	if userUuid == "" || len(jobUuids) == 0 {
		return out, nil
	}
	var applied []string
	err := r.db.WithContext(ctx).Model(&entity.JobApplication{}).
		Select("job_id").
		Where("user_id = ? AND job_id IN ?", userUuid, jobUuids).
		Find(&applied).Error
	if err != nil {
		return nil, err
	}
	for _, id := range applied {
		out[id] = struct{}{}
	}
	return out, nil
}
