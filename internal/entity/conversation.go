package entity

import (
	"time"

	"gorm.io/gorm"
)

type Conversation struct {
	Base
	IsGroup bool   `gorm:"default:false"`
	Name    string // group name, empty for 1:1
}

type ConversationMember struct {
	CreatedAt time.Time

	ConversationID string       `gorm:"primaryKey"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`
}

// Message IDs are snowflakes, so ordering by primary key follows
// persistence order inside a conversation.
type Message struct {
	ID        int64 `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	ConversationID string       `gorm:"index;not null"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID"`

	SenderID string `gorm:"not null"`
	Sender   User   `gorm:"foreignKey:SenderID"`

	Content string `gorm:"type:text;not null"`

	// Read state relative to the non-sender side.
	IsRead bool `gorm:"default:false"`
}
