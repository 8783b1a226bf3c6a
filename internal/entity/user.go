package entity

import "time"

type User struct {
	Base
	Handle       string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"default:USER"`

	Bio       string
	AvatarURL string
	FirstName string
	LastName  string
	Instagram string
	Twitter   string
	Github    string

	Points     int64 `gorm:"default:0"`
	Level      int   `gorm:"default:1"`
	Experience int   `gorm:"default:0"`

	LastActivityAt time.Time

	// Carried as state only, no logic depends on them yet.
	IsVerified   bool
	TwoFAEnabled bool

	LoginAttempts int `gorm:"default:0"`
}

const (
	AdminRole = "ADMIN"
	UserRole  = "USER"
)
