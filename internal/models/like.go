package models

import "time"

// Target types a Like may point at.
const (
	TargetPost    = "post"
	TargetComment = "comment"
)

// Like records that a user liked a post or a comment. The composite unique
// index is the durable backstop against double-likes: the engine also checks
// under a row lock, but the constraint is what makes the check-then-insert
// race lose cleanly.
type Like struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	UserID     int       `gorm:"not null;uniqueIndex:idx_like_user_target" json:"user_id"`
	TargetType string    `gorm:"size:10;not null;uniqueIndex:idx_like_user_target;index:idx_like_target" json:"target_type"`
	TargetID   int       `gorm:"not null;uniqueIndex:idx_like_user_target;index:idx_like_target" json:"target_id"`
	CreatedAt  time.Time `json:"created_at"`
}
