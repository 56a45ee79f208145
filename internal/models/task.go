package models

import "time"

// Task statuses and priorities accepted by the API and enforced
// by CHECK constraints in the schema.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"

	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

type Task struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority"`
	DueDate         *time.Time `json:"due_date"`
	CompletedAt     *time.Time `json:"completed_at"`
	BackgroundColor string     `json:"background_color"`
	IsPinned        bool       `json:"is_pinned"`
	ShareToken      *string    `json:"share_token"`
	ShareExpiresAt  *time.Time `json:"share_expires_at"`
	IsPublic        bool       `json:"is_public"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}
