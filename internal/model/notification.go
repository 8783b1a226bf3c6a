package model

type Notification struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	IsRead    bool   `json:"is_read"`
	RelatedID string `json:"related_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

type GetMyNotificationsRequest struct {
	Limit int `json:"limit"`
}

type GetMyNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unread_count"`
}

type MarkAllNotificationsReadRequest struct{}

type MarkAllNotificationsReadResponse struct{}

type ServeNotificationProxyRequest struct{}

type MarkNotificationReadRequest struct {
	NotificationID int64 `json:"notification_id"`
}

type MarkNotificationReadResponse struct{}
