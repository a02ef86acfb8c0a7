package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/AlexTayron/task-habit/internal/store"
)

// CreateTask validates and persists a new task, creates its calendar event
// when a session is connected, and appends the finished task to the
// container exactly once.
func (o *Orchestrator) CreateTask(ctx context.Context, draft *models.Task) *Outcome {
	if err := validateTask(draft); err != nil {
		return failure("Task not created", err.Error(), err)
	}
	draft.UserID = o.user.ID

	if err := o.tasks.Create(ctx, draft); err != nil {
		o.log.Error("task create failed", zap.Error(err))
		return failure("Task not created", "The task could not be saved. Try again.", err)
	}

	warn := o.syncNewEvent(ctx, "Task created", taskEventInput(draft), func(eventID string) error {
		// The in-memory task keeps the reference even if the persist fails.
		draft.CalendarEventID = &eventID
		return o.tasks.Update(ctx, o.user.ID, draft.ID, store.TaskPatch{CalendarEventID: &eventID})
	})

	o.container.AppendTask(draft)
	if warn != nil {
		return warn
	}
	if draft.CalendarEventID != nil {
		return success("Task created", "Task saved and added to your calendar.")
	}
	return success("Task created", "Task saved.")
}

// UpdateTask pushes changed fields to the linked calendar event (best
// effort), persists them, and merges them into the container entry.
func (o *Orchestrator) UpdateTask(ctx context.Context, taskID uuid.UUID, patch store.TaskPatch) *Outcome {
	current, ok := o.container.FindTask(taskID)
	if !ok {
		return failure("Task not updated", "The task no longer exists.", errNotFound)
	}

	calErr := o.syncUpdateEvent(ctx, current.CalendarEventID, taskPatchEventInput(patch))

	if err := o.tasks.Update(ctx, o.user.ID, taskID, patch); err != nil {
		o.log.Error("task update failed", zap.String("task_id", taskID.String()), zap.Error(err))
		return failure("Task not updated", "The change could not be saved. Try again.", err)
	}

	o.container.UpdateTask(taskID, func(t *models.Task) {
		applyTaskPatch(t, patch)
	})

	if calErr != nil {
		return warning("Task updated", "Saved, but the calendar event could not be updated.", calErr)
	}
	return success("Task updated", "Your changes were saved.")
}

// DeleteTask removes the task's calendar event (best effort), deletes it
// from the store, and drops it from the container.
func (o *Orchestrator) DeleteTask(ctx context.Context, taskID uuid.UUID) *Outcome {
	current, ok := o.container.FindTask(taskID)
	if !ok {
		return failure("Task not deleted", "The task no longer exists.", errNotFound)
	}

	calErr := o.syncDeleteEvent(ctx, current.CalendarEventID)

	if err := o.tasks.Delete(ctx, o.user.ID, taskID); err != nil {
		o.log.Error("task delete failed", zap.String("task_id", taskID.String()), zap.Error(err))
		return failure("Task not deleted", "The task could not be deleted. Try again.", err)
	}

	o.container.RemoveTask(taskID)

	if calErr != nil {
		return warning("Task deleted", "Deleted, but its calendar event could not be removed.", calErr)
	}
	return success("Task deleted", "The task was deleted.")
}

func applyTaskPatch(t *models.Task, p store.TaskPatch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.StartsAt != nil {
		t.StartsAt = p.StartsAt
	}
	if p.EndsAt != nil {
		t.EndsAt = p.EndsAt
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
