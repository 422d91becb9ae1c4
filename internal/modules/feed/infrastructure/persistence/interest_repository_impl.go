package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ExpertBridge/internal/modules/feed/domain/entity"
	"ExpertBridge/internal/modules/feed/domain/repository"
	"ExpertBridge/pkg/zlog"

	"gorm.io/gorm"
)

type interestRepositoryImpl struct {
	db *gorm.DB
}

func NewInterestRepository(db *gorm.DB) repository.InterestRepository {
	return &interestRepositoryImpl{db: db}
}

// GetInterestEmbedding reads the stored interest vector of a member. A missing
// profile or an empty/corrupt embedding column both mean "no signal" and
// return nil without error; the ranking layer falls back on its own.
func (r *interestRepositoryImpl) GetInterestEmbedding(ctx context.Context, userUuid string) ([]float32, error) {
	if userUuid == "" {
		return nil, nil
	}
	var profile entity.UserProfile
	err := r.db.WithContext(ctx).
		Select("uuid, interest_embedding").
		Where("uuid = ?", userUuid).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if profile.InterestEmbedding == "" {
		return nil, nil
	}
	var vec []float32
	if err := json.Unmarshal([]byte(profile.InterestEmbedding), &vec); err != nil {
		zlog.Warn(fmt.Sprintf("corrupt interest embedding for user %s: %v", userUuid, err))
		return nil, nil
	}
	if len(vec) == 0 {
		return nil, nil
	}
	return vec, nil
}
