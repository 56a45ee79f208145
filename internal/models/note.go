package models

import "time"

type Note struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	Title           string     `json:"title"`
	Content         *string    `json:"content"`
	BackgroundColor string     `json:"background_color"`
	IsPinned        bool       `json:"is_pinned"`
	ShareToken      *string    `json:"share_token"`
	ShareExpiresAt  *time.Time `json:"share_expires_at"`
	IsPublic        bool       `json:"is_public"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}
