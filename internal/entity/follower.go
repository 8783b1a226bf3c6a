package entity

import "time"

// Follower is a directed follow edge: FollowerID follows FollowedID.
type Follower struct {
	CreatedAt time.Time

	FollowerID string `gorm:"primaryKey"`
	Follower   User   `gorm:"foreignKey:FollowerID"`

	FollowedID string `gorm:"primaryKey"`
	Followed   User   `gorm:"foreignKey:FollowedID"`
}
