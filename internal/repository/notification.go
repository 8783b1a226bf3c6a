package repository

import (
	"context"

	"github.com/sosyal-lab/backend/internal/entity"
	"github.com/sosyal-lab/backend/pkg/xcontext"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByRecipient(ctx context.Context, recipientID string, offset, limit int) ([]entity.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, recipientID string, ids []int64) error
	MarkAllRead(ctx context.Context, recipientID string) error
}

type notificationRepository struct{}

func NewNotificationRepository() *notificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return xcontext.DB(ctx).Create(notification).Error
}

func (r *notificationRepository) GetByRecipient(
	ctx context.Context, recipientID string, offset, limit int,
) ([]entity.Notification, error) {
	var result []entity.Notification
	err := xcontext.DB(ctx).
		Where("user_id=?", recipientID).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("user_id=? AND is_read=false", recipientID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, recipientID string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	return xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("user_id=? AND id IN (?)", recipientID, ids).
		Update("is_read", true).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	return xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("user_id=? AND is_read=false", recipientID).
		Update("is_read", true).Error
}
