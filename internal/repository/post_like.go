package repository

import (
	"context"

	"github.com/sosyal-lab/backend/internal/entity"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type PostLikeRepository interface {
	Create(ctx context.Context, like *entity.PostLike) error
	Delete(ctx context.Context, postID, userID string) error
	Count(ctx context.Context, postID string) (int64, error)
	GetByPost(ctx context.Context, postID string) ([]entity.PostLike, error)
}

type postLikeRepository struct{}

func NewPostLikeRepository() *postLikeRepository {
	return &postLikeRepository{}
}

func (r *postLikeRepository) Create(ctx context.Context, like *entity.PostLike) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like).Error
}

func (r *postLikeRepository) Delete(ctx context.Context, postID, userID string) error {
	return xcontext.DB(ctx).
		Where("post_id=? AND user_id=?", postID, userID).
		Delete(&entity.PostLike{}).Error
}

func (r *postLikeRepository) Count(ctx context.Context, postID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.PostLike{}).
		Where("post_id=?", postID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *postLikeRepository) GetByPost(ctx context.Context, postID string) ([]entity.PostLike, error) {
	var result []entity.PostLike
	err := xcontext.DB(ctx).
		Where("post_id=?", postID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
