package models

import "time"

type UserProfile struct {
	ID            int64      `json:"id" db:"id"`
	UserID        int64      `json:"user_id" db:"user_id"`
	DisplayName   *string    `json:"display_name" db:"display_name"`
	Bio           *string    `json:"bio" db:"bio"`
	AvatarURL     *string    `json:"avatar_url" db:"avatar_url"`
	CoverPhotoURL *string    `json:"cover_photo_url" db:"cover_photo_url"`
	LinkedinURL   *string    `json:"linkedin_url" db:"linkedin_url"`
	GithubURL     *string    `json:"github_url" db:"github_url"`
	InstagramURL  *string    `json:"instagram_url" db:"instagram_url"`
	WebsiteURL    *string    `json:"website_url" db:"website_url"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}
