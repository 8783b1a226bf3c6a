package entity

type Post struct {
	Base
	AuthorID string `gorm:"index;not null"`
	Author   User   `gorm:"foreignKey:AuthorID"`

	Body     string `gorm:"type:text;not null"`
	ImageURL string

	// Space-joined #word tokens extracted from the body at creation time,
	// in order of first appearance. Immutable afterwards.
	Hashtags string

	// Recomputed from set cardinality on every mutation, never incremented
	// independently.
	LikeCount    int `gorm:"default:0"`
	CommentCount int `gorm:"default:0"`
}
