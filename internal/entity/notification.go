package entity

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationLike        NotificationType = "like"
	NotificationComment     NotificationType = "comment"
	NotificationMessage     NotificationType = "message"
	NotificationFollow      NotificationType = "follow"
	NotificationLevelUp     NotificationType = "level_up"
	NotificationAchievement NotificationType = "achievement"
)

type Notification struct {
	ID        int64 `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	UserID string `gorm:"index;not null"`
	User   User   `gorm:"foreignKey:UserID"`

	Message   string           `gorm:"not null"`
	Type      NotificationType `gorm:"not null"`
	IsRead    bool             `gorm:"default:false"`
	RelatedID string
}
