package database

import (
	"context"
	"errors"

	"github.com/om-khorwal/NotesFlow/internal/models"

	"github.com/jackc/pgx/v5"
)

const profileColumns = `
	id, user_id, display_name, bio, avatar_url, cover_photo_url,
	linkedin_url, github_url, instagram_url, website_url, created_at, updated_at
`

func (q *Queries) GetProfileByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = $1`
	return scanProfile(q.db.QueryRow(ctx, query, userID))
}

// CreateProfile inserts an empty profile row for the user. Called at
// registration and lazily on first profile access.
func (q *Queries) CreateProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	query := `
		INSERT INTO user_profiles (user_id)
		VALUES ($1)
		RETURNING ` + profileColumns
	return scanProfile(q.db.QueryRow(ctx, query, userID))
}

type UpdateProfileParams struct {
	UserID        int64
	DisplayName   *string
	Bio           *string
	AvatarURL     *string
	CoverPhotoURL *string
	LinkedinURL   *string
	GithubURL     *string
	InstagramURL  *string
	WebsiteURL    *string
}

func (q *Queries) UpdateProfile(ctx context.Context, arg UpdateProfileParams) (*models.UserProfile, error) {
	query := `
		UPDATE user_profiles
		SET display_name = $2,
			bio = $3,
			avatar_url = $4,
			cover_photo_url = $5,
			linkedin_url = $6,
			github_url = $7,
			instagram_url = $8,
			website_url = $9,
			updated_at = now()
		WHERE user_id = $1
		RETURNING ` + profileColumns
	row := q.db.QueryRow(ctx, query,
		arg.UserID,
		arg.DisplayName,
		arg.Bio,
		arg.AvatarURL,
		arg.CoverPhotoURL,
		arg.LinkedinURL,
		arg.GithubURL,
		arg.InstagramURL,
		arg.WebsiteURL,
	)
	return scanProfile(row)
}

func scanProfile(row pgx.Row) (*models.UserProfile, error) {
	var p models.UserProfile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.DisplayName,
		&p.Bio,
		&p.AvatarURL,
		&p.CoverPhotoURL,
		&p.LinkedinURL,
		&p.GithubURL,
		&p.InstagramURL,
		&p.WebsiteURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &p, nil
}
