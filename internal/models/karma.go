package models

import "time"

// Karma awarded per like, by target kind.
const (
	KarmaPostLike    = 5
	KarmaCommentLike = 1
)

// Reasons recorded on karma transactions.
const (
	ReasonPostLike    = "post_like"
	ReasonCommentLike = "comment_like"
)

// KarmaTransaction is one row of the append-only karma ledger. Rows are never
// updated or deleted; every windowed karma figure is a sum over this table.
type KarmaTransaction struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	UserID   int    `gorm:"not null;index:idx_karma_user_created" json:"user_id"`
	Amount   int    `gorm:"not null" json:"amount"`
	Reason   string `gorm:"size:20;not null" json:"reason"`
	SourceID int    `gorm:"not null" json:"source_id"`

	// LikerID is the acting user, kept nullable so the ledger outlives any
	// future account removal of the liker.
	LikerID *int `json:"liker_id,omitempty"`

	CreatedAt time.Time `gorm:"index;index:idx_karma_user_created" json:"created_at"`
}
