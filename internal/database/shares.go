package database

import (
	"context"
	"errors"
	"time"

	"github.com/om-khorwal/NotesFlow/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrShareTokenCollision is the storage-layer safety net for the unique
// index on share_token. At 43-character nanoid tokens a collision is
// effectively unreachable.
var ErrShareTokenCollision = errors.New("share token already in use")

type SetShareParams struct {
	ResourceID int64
	UserID     int64
	Token      string
	ExpiresAt  *time.Time
}

// SetNoteShare publishes a note: token, public flag and expiry are written
// in a single statement so a concurrent reader never sees a partial state.
// Returns nil when the note does not exist or is not owned by UserID.
func (q *Queries) SetNoteShare(ctx context.Context, arg SetShareParams) (*models.Note, error) {
	query := `
		UPDATE notes
		SET share_token = $3,
			is_public = true,
			share_expires_at = $4,
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + noteColumns
	note, err := scanNote(q.db.QueryRow(ctx, query, arg.ResourceID, arg.UserID, arg.Token, arg.ExpiresAt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrShareTokenCollision
		}
		return nil, err
	}
	return note, nil
}

// ClearNoteShare revokes a share link: all three share fields are cleared
// in one statement.
func (q *Queries) ClearNoteShare(ctx context.Context, noteID, userID int64) (bool, error) {
	query := `
		UPDATE notes
		SET share_token = NULL,
			is_public = false,
			share_expires_at = NULL,
			updated_at = now()
		WHERE id = $1 AND user_id = $2
	`
	res, err := q.db.Exec(ctx, query, noteID, userID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// GetSharedNoteByToken resolves a share token without any owner scoping.
// The token is the sole credential for anonymous access. Expiry is not
// checked here so callers can distinguish a lapsed link from a missing one.
func (q *Queries) GetSharedNoteByToken(ctx context.Context, token string) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE share_token = $1 AND is_public = true`
	return scanNote(q.db.QueryRow(ctx, query, token))
}

func (q *Queries) SetTaskShare(ctx context.Context, arg SetShareParams) (*models.Task, error) {
	query := `
		UPDATE tasks
		SET share_token = $3,
			is_public = true,
			share_expires_at = $4,
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + taskColumns
	task, err := scanTask(q.db.QueryRow(ctx, query, arg.ResourceID, arg.UserID, arg.Token, arg.ExpiresAt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrShareTokenCollision
		}
		return nil, err
	}
	return task, nil
}

func (q *Queries) ClearTaskShare(ctx context.Context, taskID, userID int64) (bool, error) {
	query := `
		UPDATE tasks
		SET share_token = NULL,
			is_public = false,
			share_expires_at = NULL,
			updated_at = now()
		WHERE id = $1 AND user_id = $2
	`
	res, err := q.db.Exec(ctx, query, taskID, userID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (q *Queries) GetSharedTaskByToken(ctx context.Context, token string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE share_token = $1 AND is_public = true`
	return scanTask(q.db.QueryRow(ctx, query, token))
}
