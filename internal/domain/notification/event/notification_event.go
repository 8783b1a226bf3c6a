package event

import "github.com/sosyal-lab/backend/internal/model"

type NotificationCreatedEvent model.Notification

func (*NotificationCreatedEvent) Op() string {
	return "notification_created"
}

type MessageCreatedEvent model.Message

func (*MessageCreatedEvent) Op() string {
	return "message_created"
}

type UserStatus string

const (
	Online  = UserStatus("online")
	Offline = UserStatus("offline")
)

type ChangeUserStatusEvent struct {
	UserID string     `json:"user_id"`
	Status UserStatus `json:"status"`
}

func (*ChangeUserStatusEvent) Op() string {
	return "change_status"
}

type ReadyEvent struct {
	UnreadNotifications int64 `json:"unread_notifications"`
}

func (*ReadyEvent) Op() string {
	return "ready"
}
