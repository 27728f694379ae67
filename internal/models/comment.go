package models

import "time"

// MaxCommentLength is the longest comment content accepted, after trimming.
const MaxCommentLength = 1000

// Comment belongs to one post and may reply to another comment on the same
// post. Comments are stored flat and assembled into a tree in memory.
type Comment struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	PostID     int       `gorm:"not null;index" json:"post_id"`
	ParentID   *int      `gorm:"index" json:"parent_id,omitempty"`
	AuthorID   int       `gorm:"not null" json:"author_id"`
	Author     User      `gorm:"foreignKey:AuthorID" json:"author"`
	Content    string    `gorm:"not null" json:"content"`
	LikesCount int       `gorm:"default:0" json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateCommentRequest struct {
	Content  string `json:"content"`
	ParentID *int   `json:"parent_id,omitempty"`
}
