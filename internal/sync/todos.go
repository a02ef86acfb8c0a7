package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/AlexTayron/task-habit/internal/store"
)

// CreateTodo validates and persists a new todo, creates its calendar event
// when a session is connected, and appends it to the container.
func (o *Orchestrator) CreateTodo(ctx context.Context, draft *models.Todo) *Outcome {
	if err := validateTodo(draft); err != nil {
		return failure("Todo not created", err.Error(), err)
	}
	draft.UserID = o.user.ID

	if err := o.todos.Create(ctx, draft); err != nil {
		o.log.Error("todo create failed", zap.Error(err))
		return failure("Todo not created", "The todo could not be saved. Try again.", err)
	}

	warn := o.syncNewEvent(ctx, "Todo created", todoEventInput(draft), func(eventID string) error {
		draft.CalendarEventID = &eventID
		return o.todos.Update(ctx, o.user.ID, draft.ID, store.TodoPatch{CalendarEventID: &eventID})
	})

	o.container.AppendTodo(draft)
	if warn != nil {
		return warn
	}
	if draft.CalendarEventID != nil {
		return success("Todo created", "Todo saved and added to your calendar.")
	}
	return success("Todo created", "Todo saved.")
}

// UpdateTodo pushes changed fields to the linked calendar event (best
// effort), persists them, and merges them into the container entry.
func (o *Orchestrator) UpdateTodo(ctx context.Context, todoID uuid.UUID, patch store.TodoPatch) *Outcome {
	current, ok := o.container.FindTodo(todoID)
	if !ok {
		return failure("Todo not updated", "The todo no longer exists.", errNotFound)
	}

	calErr := o.syncUpdateEvent(ctx, current.CalendarEventID, todoPatchEventInput(patch))

	if err := o.todos.Update(ctx, o.user.ID, todoID, patch); err != nil {
		o.log.Error("todo update failed", zap.String("todo_id", todoID.String()), zap.Error(err))
		return failure("Todo not updated", "The change could not be saved. Try again.", err)
	}

	o.container.UpdateTodo(todoID, func(t *models.Todo) {
		applyTodoPatch(t, patch)
	})

	if calErr != nil {
		return warning("Todo updated", "Saved, but the calendar event could not be updated.", calErr)
	}
	return success("Todo updated", "Your changes were saved.")
}

// ToggleTodo flips the completed flag through the standard update path
func (o *Orchestrator) ToggleTodo(ctx context.Context, todoID uuid.UUID) *Outcome {
	current, ok := o.container.FindTodo(todoID)
	if !ok {
		return failure("Todo not updated", "The todo no longer exists.", errNotFound)
	}
	completed := !current.Completed
	return o.UpdateTodo(ctx, todoID, store.TodoPatch{Completed: &completed})
}

// DeleteTodo removes the todo's calendar event (best effort), deletes it
// from the store, and drops it from the container.
func (o *Orchestrator) DeleteTodo(ctx context.Context, todoID uuid.UUID) *Outcome {
	current, ok := o.container.FindTodo(todoID)
	if !ok {
		return failure("Todo not deleted", "The todo no longer exists.", errNotFound)
	}

	calErr := o.syncDeleteEvent(ctx, current.CalendarEventID)

	if err := o.todos.Delete(ctx, o.user.ID, todoID); err != nil {
		o.log.Error("todo delete failed", zap.String("todo_id", todoID.String()), zap.Error(err))
		return failure("Todo not deleted", "The todo could not be deleted. Try again.", err)
	}

	o.container.RemoveTodo(todoID)

	if calErr != nil {
		return warning("Todo deleted", "Deleted, but its calendar event could not be removed.", calErr)
	}
	return success("Todo deleted", "The todo was deleted.")
}

func applyTodoPatch(t *models.Todo, p store.TodoPatch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.CalendarEventID != nil {
		t.CalendarEventID = p.CalendarEventID
	}
	if p.UpdatedAt != nil {
		t.UpdatedAt = *p.UpdatedAt
	} else {
		t.UpdatedAt = time.Now()
	}
}
