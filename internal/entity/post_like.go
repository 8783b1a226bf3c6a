package entity

import "time"

type PostLike struct {
	CreatedAt time.Time

	PostID string `gorm:"primaryKey"`
	Post   Post   `gorm:"foreignKey:PostID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`
}
