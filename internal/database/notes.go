package database

import (
	"context"
	"errors"

	"github.com/om-khorwal/NotesFlow/internal/models"

	"github.com/jackc/pgx/v5"
)

const noteColumns = `
	id, user_id, title, content, background_color, is_pinned,
	share_token, share_expires_at, is_public, created_at, updated_at
`

type CreateNoteParams struct {
	UserID          int64
	Title           string
	Content         *string
	BackgroundColor string
}

func (q *Queries) CreateNote(ctx context.Context, arg CreateNoteParams) (*models.Note, error) {
	query := `
		INSERT INTO notes (user_id, title, content, background_color)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + noteColumns
	row := q.db.QueryRow(ctx, query, arg.UserID, arg.Title, arg.Content, arg.BackgroundColor)
	return scanNote(row)
}

// GetNoteByID is scoped by the owner's id. A note owned by someone else
// is indistinguishable from an absent one.
func (q *Queries) GetNoteByID(ctx context.Context, noteID, userID int64) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1 AND user_id = $2`
	return scanNote(q.db.QueryRow(ctx, query, noteID, userID))
}

type ListNotesParams struct {
	UserID int64
	Search *string
	Pinned *bool
}

func (q *Queries) ListNotes(ctx context.Context, arg ListNotesParams) ([]models.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE user_id = $1
			AND ($2::text IS NULL OR title ILIKE '%' || $2 || '%' OR content ILIKE '%' || $2 || '%')
			AND ($3::boolean IS NULL OR is_pinned = $3)
		ORDER BY is_pinned DESC, COALESCE(updated_at, created_at) DESC
	`
	rows, err := q.db.Query(ctx, query, arg.UserID, arg.Search, arg.Pinned)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var note models.Note
		err := rows.Scan(
			&note.ID,
			&note.UserID,
			&note.Title,
			&note.Content,
			&note.BackgroundColor,
			&note.IsPinned,
			&note.ShareToken,
			&note.ShareExpiresAt,
			&note.IsPublic,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if notes == nil {
		return []models.Note{}, nil
	}

	return notes, nil
}

type UpdateNoteParams struct {
	ID              int64
	UserID          int64
	Title           string
	Content         *string
	BackgroundColor string
	IsPinned        bool
}

func (q *Queries) UpdateNote(ctx context.Context, arg UpdateNoteParams) (*models.Note, error) {
	query := `
		UPDATE notes
		SET title = $3,
			content = $4,
			background_color = $5,
			is_pinned = $6,
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + noteColumns
	row := q.db.QueryRow(ctx, query,
		arg.ID, arg.UserID, arg.Title, arg.Content, arg.BackgroundColor, arg.IsPinned,
	)
	return scanNote(row)
}

func (q *Queries) DeleteNote(ctx context.Context, noteID, userID int64) (bool, error) {
	query := `DELETE FROM notes WHERE id = $1 AND user_id = $2`
	res, err := q.db.Exec(ctx, query, noteID, userID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func scanNote(row pgx.Row) (*models.Note, error) {
	var note models.Note
	err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.BackgroundColor,
		&note.IsPinned,
		&note.ShareToken,
		&note.ShareExpiresAt,
		&note.IsPublic,
		&note.CreatedAt,
		&note.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &note, nil
}
