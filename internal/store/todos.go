package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/google/uuid"
)

// TodoRepository handles todo persistence
type TodoRepository struct {
	db *DB
}

// NewTodoRepository creates a new todo repository
func NewTodoRepository(db *DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// Create validates required fields and inserts the todo
func (r *TodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	if todo.Title == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}

	if todo.ID == uuid.Nil {
		todo.ID = uuid.New()
	}

	query := `
		INSERT INTO todos (id, user_id, title, description, completed, calendar_event_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query,
		todo.ID,
		todo.UserID,
		todo.Title,
		todo.Description,
		todo.Completed,
		todo.CalendarEventID,
		now,
		now,
	).Scan(&todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		return storeErr("create todo", err)
	}

	return nil
}

// GetByUserID retrieves all todos for a user ordered by creation time
func (r *TodoRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Todo, error) {
	query := `
		SELECT id, user_id, title, description, completed, calendar_event_id, created_at, updated_at
		FROM todos
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, storeErr("list todos", err)
	}
	defer rows.Close()

	var todos []*models.Todo
	for rows.Next() {
		todo := &models.Todo{}
		var eventID sql.NullString

		err := rows.Scan(
			&todo.ID,
			&todo.UserID,
			&todo.Title,
			&todo.Description,
			&todo.Completed,
			&eventID,
			&todo.CreatedAt,
			&todo.UpdatedAt,
		)
		if err != nil {
			return nil, storeErr("scan todo", err)
		}

		if eventID.Valid {
			todo.CalendarEventID = &eventID.String
		}

		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate todos", err)
	}

	return todos, nil
}

// TodoPatch carries the fields an update may change
type TodoPatch struct {
	Title           *string
	Description     *string
	Completed       *bool
	CalendarEventID *string
	UpdatedAt       *time.Time
}

// Update applies the patch to the user's todo
func (r *TodoRepository) Update(ctx context.Context, userID, todoID uuid.UUID, patch TodoPatch) error {
	sets := []string{}
	args := []any{todoID, userID}
	argIndex := 3

	addSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if patch.Title != nil {
		addSet("title", *patch.Title)
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.Completed != nil {
		addSet("completed", *patch.Completed)
	}
	if patch.CalendarEventID != nil {
		addSet("calendar_event_id", *patch.CalendarEventID)
	}
	if patch.UpdatedAt != nil {
		addSet("updated_at", *patch.UpdatedAt)
	} else {
		addSet("updated_at", time.Now().UTC())
	}

	query := "UPDATE todos SET "
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += " WHERE id = $1 AND user_id = $2"

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return storeErr("update todo", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storeErr("update todo", err)
	}
	if rowsAffected == 0 {
		return storeErr("update todo", sql.ErrNoRows)
	}

	return nil
}

// Delete removes the user's todo. Deleting a nonexistent id is not an error.
func (r *TodoRepository) Delete(ctx context.Context, userID, todoID uuid.UUID) error {
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, todoID, userID); err != nil {
		return storeErr("delete todo", err)
	}

	return nil
}
