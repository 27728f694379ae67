package models

import "time"

type User struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `gorm:"not null" json:"-"`
	Avatar   string `json:"avatar"`

	// TotalKarma is a cached, display-only value. The 24-hour leaderboard is
	// always computed from karma_transactions, never from this field.
	TotalKarma int `gorm:"default:0" json:"total_karma"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
