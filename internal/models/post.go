package models

import "time"

// MaxPostLength is the longest post content accepted, after trimming.
const MaxPostLength = 2000

type Post struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	AuthorID int    `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	Content  string `gorm:"not null" json:"content"`

	// LikesCount mirrors the number of Like rows for this post. It is only
	// ever moved by the karma engine's atomic increments, inside the same
	// transaction that writes the Like row.
	LikesCount int `gorm:"default:0" json:"likes_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreatePostRequest struct {
	Content string `json:"content"`
}
