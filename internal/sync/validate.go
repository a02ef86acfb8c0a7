package sync

import (
	"github.com/google/uuid"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/AlexTayron/task-habit/internal/store"
)

// Local required-field checks run before any store call is made. The
// repositories validate again on their own, but a draft rejected here never
// reaches the network.

func validateTask(task *models.Task) error {
	if task.Title == "" {
		return &store.ValidationError{Field: "title", Reason: "is required"}
	}
	if !models.ValidTaskStatus(task.Status) {
		return &store.ValidationError{Field: "status", Reason: "must be a board column"}
	}
	return nil
}

func validateHabit(habit *models.Habit) error {
	if habit.Title == "" {
		return &store.ValidationError{Field: "title", Reason: "is required"}
	}
	if habit.GoalTarget <= 0 {
		return &store.ValidationError{Field: "goal_target", Reason: "must be greater than zero"}
	}
	if habit.GoalType == "" {
		return &store.ValidationError{Field: "goal_type", Reason: "is required"}
	}
	if !models.ValidHabitFrequency(habit.Frequency) {
		return &store.ValidationError{Field: "frequency", Reason: "must be daily, weekly or monthly"}
	}
	if habit.Progress < 0 {
		return &store.ValidationError{Field: "progress", Reason: "must not be negative"}
	}
	return nil
}

func validateSession(session *models.HabitSession) error {
	if session.HabitID == uuid.Nil {
		return &store.ValidationError{Field: "habit_id", Reason: "is required"}
	}
	if session.Quantity <= 0 {
		return &store.ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	return nil
}

func validateTodo(todo *models.Todo) error {
	if todo.Title == "" {
		return &store.ValidationError{Field: "title", Reason: "is required"}
	}
	return nil
}
