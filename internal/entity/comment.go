package entity

type Comment struct {
	Base
	PostID string `gorm:"index;not null"`
	Post   Post   `gorm:"foreignKey:PostID"`

	AuthorID string `gorm:"index;not null"`
	Author   User   `gorm:"foreignKey:AuthorID"`

	Body string `gorm:"type:text;not null"`
}
