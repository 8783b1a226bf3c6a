package repository

import (
	"context"

	"github.com/sosyal-lab/backend/internal/entity"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetByAuthor(ctx context.Context, authorID string, offset, limit int) ([]entity.Post, error)
	GetByAuthors(ctx context.Context, authorIDs []string, offset, limit int) ([]entity.Post, error)
	GetLatest(ctx context.Context, offset, limit int) ([]entity.Post, error)
	Delete(ctx context.Context, id string) error
	UpdateLikeCount(ctx context.Context, id string, count int64) error
	UpdateCommentCount(ctx context.Context, id string, count int64) error
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type postRepository struct{}

func NewPostRepository() *postRepository {
	return &postRepository{}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	return xcontext.DB(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var result entity.Post
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *postRepository) GetByAuthor(
	ctx context.Context, authorID string, offset, limit int,
) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Where("author_id=?", authorID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) GetByAuthors(
	ctx context.Context, authorIDs []string, offset, limit int,
) ([]entity.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}

	var result []entity.Post
	err := xcontext.DB(ctx).
		Where("author_id IN (?)", authorIDs).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) GetLatest(ctx context.Context, offset, limit int) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Post{}, "id=?", id).Error
}

func (r *postRepository) UpdateLikeCount(ctx context.Context, id string, count int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
		Update("like_count", count)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *postRepository) UpdateCommentCount(ctx context.Context, id string, count int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
		Update("comment_count", count)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("author_id=?", authorID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var result int64
	if err := xcontext.DB(ctx).Model(&entity.Post{}).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}
