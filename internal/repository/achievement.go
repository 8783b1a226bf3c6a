package repository

import (
	"context"
	"time"

	"github.com/sosyal-lab/backend/internal/entity"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type AchievementRepository interface {
	GetAll(ctx context.Context) ([]entity.Achievement, error)

	// Unlock records that the user earned the achievement. It returns true
	// only for the first call with a given pair, so reward points are
	// granted exactly once.
	Unlock(ctx context.Context, userID, achievementID string) (bool, error)

	GetByUser(ctx context.Context, userID string) ([]entity.UserAchievement, error)
}

type achievementRepository struct{}

func NewAchievementRepository() *achievementRepository {
	return &achievementRepository{}
}

func (r *achievementRepository) GetAll(ctx context.Context) ([]entity.Achievement, error) {
	var result []entity.Achievement
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *achievementRepository) Unlock(ctx context.Context, userID, achievementID string) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.UserAchievement{
			UserID:        userID,
			AchievementID: achievementID,
			UnlockedAt:    time.Now(),
		})
	if err := tx.Error; err != nil {
		return false, err
	}

	return tx.RowsAffected == 1, nil
}

func (r *achievementRepository) GetByUser(ctx context.Context, userID string) ([]entity.UserAchievement, error) {
	var result []entity.UserAchievement
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("unlocked_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
