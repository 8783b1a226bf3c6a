package domain

import (
	"context"

	"github.com/sosyal-lab/backend/internal/model"
	"github.com/sosyal-lab/backend/internal/repository"
	"github.com/sosyal-lab/backend/pkg/errorx"
	"github.com/sosyal-lab/backend/pkg/xcontext"
)

type NotificationDomain interface {
	GetMy(ctx context.Context, req *model.GetMyNotificationsRequest) (*model.GetMyNotificationsResponse, error)
	MarkRead(ctx context.Context, req *model.MarkNotificationReadRequest) (*model.MarkNotificationReadResponse, error)
	MarkAllRead(ctx context.Context, req *model.MarkAllNotificationsReadRequest) (*model.MarkAllNotificationsReadResponse, error)
}

type notificationDomain struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationDomain(notificationRepo repository.NotificationRepository) *notificationDomain {
	return &notificationDomain{notificationRepo: notificationRepo}
}

func (d *notificationDomain) GetMy(
	ctx context.Context, req *model.GetMyNotificationsRequest,
) (*model.GetMyNotificationsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	_, limit := normalizePagination(0, req.Limit)

	notifications, err := d.notificationRepo.GetByRecipient(ctx, userID, 0, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notifications: %v", err)
		return nil, errorx.Unknown
	}

	unread, err := d.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unread notifications: %v", err)
		return nil, errorx.Unknown
	}

	clientNotifications := []model.Notification{}
	for i := range notifications {
		clientNotifications = append(clientNotifications, model.ConvertNotification(&notifications[i]))
	}

	return &model.GetMyNotificationsResponse{
		Notifications: clientNotifications,
		UnreadCount:   unread,
	}, nil
}

func (d *notificationDomain) MarkRead(
	ctx context.Context, req *model.MarkNotificationReadRequest,
) (*model.MarkNotificationReadResponse, error) {
	if req.NotificationID == 0 {
		return nil, errorx.New(errorx.BadRequest, "Require notification id")
	}

	err := d.notificationRepo.MarkRead(
		ctx, xcontext.RequestUserID(ctx), []int64{req.NotificationID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark notification read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkNotificationReadResponse{}, nil
}

func (d *notificationDomain) MarkAllRead(
	ctx context.Context, req *model.MarkAllNotificationsReadRequest,
) (*model.MarkAllNotificationsReadResponse, error) {
	err := d.notificationRepo.MarkAllRead(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark notifications read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkAllNotificationsReadResponse{}, nil
}
