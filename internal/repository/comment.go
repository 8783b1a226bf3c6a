package repository

import (
	"context"

	"github.com/sosyal-lab/backend/internal/entity"
	"github.com/sosyal-lab/backend/pkg/xcontext"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	GetByPost(ctx context.Context, postID string, offset, limit int) ([]entity.Comment, error)
	CountByPost(ctx context.Context, postID string) (int64, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

type commentRepository struct{}

func NewCommentRepository() *commentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return xcontext.DB(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	var result entity.Comment
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *commentRepository) GetByPost(
	ctx context.Context, postID string, offset, limit int,
) ([]entity.Comment, error) {
	var result []entity.Comment
	err := xcontext.DB(ctx).
		Where("post_id=?", postID).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commentRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Comment{}).
		Where("post_id=?", postID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *commentRepository) Count(ctx context.Context) (int64, error) {
	var result int64
	if err := xcontext.DB(ctx).Model(&entity.Comment{}).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Comment{}, "id=?", id).Error
}
