package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sosyal-lab/backend/internal/entity"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	GetByHandle(ctx context.Context, handle string) (*entity.User, error)
	UpdateProfile(ctx context.Context, id string, updates map[string]any) error
	UpdateAvatar(ctx context.Context, id, url string) error
	UpdateLastActivity(ctx context.Context, id string) error
	IncreaseLoginAttempts(ctx context.Context, id string) error
	ResetLoginAttempts(ctx context.Context, id string) error

	// IncreasePoints adds the amount to both points and experience in a
	// single statement, so a racing award never loses either half.
	IncreasePoints(ctx context.Context, id string, amount int64) error

	// UpdateLevel performs a guarded level-up: it only applies if the user
	// is still at fromLevel with enough experience, so two racing checks
	// cannot double-level.
	UpdateLevel(ctx context.Context, id string, fromLevel int, threshold int) (bool, error)

	// GetWithPoints returns every user holding at least one point, used to
	// rebuild the leaderboard cache after redis loses it.
	GetWithPoints(ctx context.Context) ([]entity.User, error)

	Count(ctx context.Context) (int64, error)
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	var result []entity.User
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) GetByHandle(ctx context.Context, handle string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "handle=?", handle).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, updates map[string]any) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Updates(updates).Error
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id, url string) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update("avatar_url", url).Error
}

func (r *userRepository) UpdateLastActivity(ctx context.Context, id string) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update("last_activity_at", time.Now()).Error
}

func (r *userRepository) IncreaseLoginAttempts(ctx context.Context, id string) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update("login_attempts", gorm.Expr("login_attempts+1")).Error
}

func (r *userRepository) ResetLoginAttempts(ctx context.Context, id string) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update("login_attempts", 0).Error
}

func (r *userRepository) IncreasePoints(ctx context.Context, id string, amount int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Updates(map[string]any{
			"points":     gorm.Expr("points+?", amount),
			"experience": gorm.Expr("experience+?", amount),
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of rows effected is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *userRepository) UpdateLevel(
	ctx context.Context, id string, fromLevel int, threshold int,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Where("experience >= ? AND level=?", threshold, fromLevel).
		Updates(map[string]any{
			"level":      fromLevel + 1,
			"experience": gorm.Expr("experience-?", threshold),
		})

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *userRepository) GetWithPoints(ctx context.Context) ([]entity.User, error) {
	var result []entity.User
	err := xcontext.DB(ctx).
		Select("id", "points").
		Where("points > 0").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var result int64
	if err := xcontext.DB(ctx).Model(&entity.User{}).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}
