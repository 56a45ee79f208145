package database

import (
	"context"
	"errors"
	"time"

	"github.com/om-khorwal/NotesFlow/internal/models"

	"github.com/jackc/pgx/v5"
)

const taskColumns = `
	id, user_id, title, description, status, priority, due_date, completed_at,
	background_color, is_pinned, share_token, share_expires_at, is_public,
	created_at, updated_at
`

type CreateTaskParams struct {
	UserID          int64
	Title           string
	Description     *string
	Status          string
	Priority        string
	DueDate         *time.Time
	BackgroundColor string
}

func (q *Queries) CreateTask(ctx context.Context, arg CreateTaskParams) (*models.Task, error) {
	query := `
		INSERT INTO tasks (user_id, title, description, status, priority, due_date, background_color)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + taskColumns
	row := q.db.QueryRow(ctx, query,
		arg.UserID, arg.Title, arg.Description, arg.Status, arg.Priority, arg.DueDate, arg.BackgroundColor,
	)
	return scanTask(row)
}

func (q *Queries) GetTaskByID(ctx context.Context, taskID, userID int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`
	return scanTask(q.db.QueryRow(ctx, query, taskID, userID))
}

type ListTasksParams struct {
	UserID   int64
	Status   *string
	Priority *string
	Pinned   *bool
}

func (q *Queries) ListTasks(ctx context.Context, arg ListTasksParams) ([]models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
			AND ($2::text IS NULL OR status = $2)
			AND ($3::text IS NULL OR priority = $3)
			AND ($4::boolean IS NULL OR is_pinned = $4)
		ORDER BY is_pinned DESC, created_at DESC
	`
	rows, err := q.db.Query(ctx, query, arg.UserID, arg.Status, arg.Priority, arg.Pinned)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		err := rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.Priority,
			&task.DueDate,
			&task.CompletedAt,
			&task.BackgroundColor,
			&task.IsPinned,
			&task.ShareToken,
			&task.ShareExpiresAt,
			&task.IsPublic,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if tasks == nil {
		return []models.Task{}, nil
	}

	return tasks, nil
}

type UpdateTaskParams struct {
	ID              int64
	UserID          int64
	Title           string
	Description     *string
	Status          string
	Priority        string
	DueDate         *time.Time
	CompletedAt     *time.Time
	BackgroundColor string
	IsPinned        bool
}

func (q *Queries) UpdateTask(ctx context.Context, arg UpdateTaskParams) (*models.Task, error) {
	query := `
		UPDATE tasks
		SET title = $3,
			description = $4,
			status = $5,
			priority = $6,
			due_date = $7,
			completed_at = $8,
			background_color = $9,
			is_pinned = $10,
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + taskColumns
	row := q.db.QueryRow(ctx, query,
		arg.ID, arg.UserID, arg.Title, arg.Description, arg.Status, arg.Priority,
		arg.DueDate, arg.CompletedAt, arg.BackgroundColor, arg.IsPinned,
	)
	return scanTask(row)
}

func (q *Queries) DeleteTask(ctx context.Context, taskID, userID int64) (bool, error) {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	res, err := q.db.Exec(ctx, query, taskID, userID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

type TaskStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Low        int64 `json:"low"`
	Medium     int64 `json:"medium"`
	High       int64 `json:"high"`
}

func (q *Queries) GetTaskStats(ctx context.Context, userID int64) (*TaskStats, error) {
	query := `
		SELECT
			count(*),
			count(*) FILTER (WHERE status = 'pending'),
			count(*) FILTER (WHERE status = 'in_progress'),
			count(*) FILTER (WHERE status = 'completed'),
			count(*) FILTER (WHERE priority = 'low'),
			count(*) FILTER (WHERE priority = 'medium'),
			count(*) FILTER (WHERE priority = 'high')
		FROM tasks
		WHERE user_id = $1
	`
	var stats TaskStats
	err := q.db.QueryRow(ctx, query, userID).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.InProgress,
		&stats.Completed,
		&stats.Low,
		&stats.Medium,
		&stats.High,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func scanTask(row pgx.Row) (*models.Task, error) {
	var task models.Task
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.CompletedAt,
		&task.BackgroundColor,
		&task.IsPinned,
		&task.ShareToken,
		&task.ShareExpiresAt,
		&task.IsPublic,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &task, nil
}
