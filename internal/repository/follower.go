package repository

import (
	"context"
	"errors"

	"github.com/sosyal-lab/backend/internal/entity"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowerRepository interface {
	// Create is idempotent: inserting an existing edge is a no-op.
	Create(ctx context.Context, edge *entity.Follower) error

	// Delete is idempotent: removing an absent edge is a no-op.
	Delete(ctx context.Context, followerID, followedID string) error

	Get(ctx context.Context, followerID, followedID string) (*entity.Follower, error)
	GetFollowers(ctx context.Context, userID string, offset, limit int) ([]entity.Follower, error)
	GetFollowing(ctx context.Context, userID string, offset, limit int) ([]entity.Follower, error)
	GetFollowingIDs(ctx context.Context, userID string) ([]string, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type followerRepository struct{}

func NewFollowerRepository() *followerRepository {
	return &followerRepository{}
}

func (r *followerRepository) Create(ctx context.Context, edge *entity.Follower) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(edge).Error
}

func (r *followerRepository) Delete(ctx context.Context, followerID, followedID string) error {
	return xcontext.DB(ctx).
		Where("follower_id=? AND followed_id=?", followerID, followedID).
		Delete(&entity.Follower{}).Error
}

func (r *followerRepository) Get(
	ctx context.Context, followerID, followedID string,
) (*entity.Follower, error) {
	var result entity.Follower
	err := xcontext.DB(ctx).
		Where("follower_id=? AND followed_id=?", followerID, followedID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// IsFollowing reports whether the edge exists without surfacing not-found
// as an error.
func IsFollowing(ctx context.Context, repo FollowerRepository, followerID, followedID string) (bool, error) {
	_, err := repo.Get(ctx, followerID, followedID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (r *followerRepository) GetFollowers(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.Follower, error) {
	var result []entity.Follower
	err := xcontext.DB(ctx).
		Where("followed_id=?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followerRepository) GetFollowing(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.Follower, error) {
	var result []entity.Follower
	err := xcontext.DB(ctx).
		Where("follower_id=?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followerRepository) GetFollowingIDs(ctx context.Context, userID string) ([]string, error) {
	var result []string
	err := xcontext.DB(ctx).
		Model(&entity.Follower{}).
		Where("follower_id=?", userID).
		Pluck("followed_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followerRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Follower{}).
		Where("followed_id=?", userID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *followerRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Follower{}).
		Where("follower_id=?", userID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *followerRepository) Count(ctx context.Context) (int64, error) {
	var result int64
	if err := xcontext.DB(ctx).Model(&entity.Follower{}).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}
