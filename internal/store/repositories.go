package store

import (
	"context"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/google/uuid"
)

// The orchestrator depends on these interfaces rather than the concrete
// repositories, which keeps its failure-path tests free of a live database.

// TaskStore persists tasks
type TaskStore interface {
	Create(ctx context.Context, task *models.Task) error
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error)
	Update(ctx context.Context, userID, taskID uuid.UUID, patch TaskPatch) error
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
}

// HabitStore persists habits
type HabitStore interface {
	Create(ctx context.Context, habit *models.Habit) error
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Habit, error)
	Update(ctx context.Context, userID, habitID uuid.UUID, patch HabitPatch) error
	Delete(ctx context.Context, userID, habitID uuid.UUID) error
}

// HabitSessionStore persists habit sessions
type HabitSessionStore interface {
	Create(ctx context.Context, session *models.HabitSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.HabitSession, error)
	DeleteByHabitID(ctx context.Context, userID, habitID uuid.UUID) error
}

// TodoStore persists todos
type TodoStore interface {
	Create(ctx context.Context, todo *models.Todo) error
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Todo, error)
	Update(ctx context.Context, userID, todoID uuid.UUID, patch TodoPatch) error
	Delete(ctx context.Context, userID, todoID uuid.UUID) error
}

// UserStore persists user profiles
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByProviderID(ctx context.Context, providerID string) (*models.User, error)
	Update(ctx context.Context, userID uuid.UUID, patch UserPatch) error
}

// Ensure concrete types implement the interfaces
var (
	_ TaskStore         = (*TaskRepository)(nil)
	_ HabitStore        = (*HabitRepository)(nil)
	_ HabitSessionStore = (*HabitSessionRepository)(nil)
	_ TodoStore         = (*TodoRepository)(nil)
	_ UserStore         = (*UserRepository)(nil)
)
