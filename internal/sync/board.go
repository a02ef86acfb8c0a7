package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/AlexTayron/task-habit/internal/store"
)

// MoveTask handles a drag-and-drop of one task onto a board column. The new
// ordering is applied to the container optimistically before the store
// round-trip; only then is the status change persisted. If the store write
// fails, the pre-move snapshot is restored so the board never keeps an
// unconfirmed ordering.
func (o *Orchestrator) MoveTask(ctx context.Context, taskID uuid.UUID, dest models.TaskStatus) *Outcome {
	if !models.ValidTaskStatus(dest) {
		err := &store.ValidationError{Field: "status", Reason: "must be a board column"}
		return failure("Task not moved", err.Error(), err)
	}
	if _, ok := o.container.FindTask(taskID); !ok {
		return failure("Task not moved", "The task no longer exists.", errNotFound)
	}

	snapshot := o.container.Tasks()
	o.container.SetTasks(reorderBoard(snapshot, taskID, dest))

	// Pin the timestamp so the in-memory task matches the persisted row
	now := time.Now().UTC()
	if err := o.tasks.Update(ctx, o.user.ID, taskID, store.TaskPatch{Status: &dest, UpdatedAt: &now}); err != nil {
		o.log.Error("task move failed",
			zap.String("task_id", taskID.String()),
			zap.String("destination", string(dest)),
			zap.Error(err))
		o.container.SetTasks(snapshot)
		return failure("Task not moved", "The move could not be saved and was undone.", err)
	}

	o.container.UpdateTask(taskID, func(t *models.Task) { t.UpdatedAt = now })

	return success("Task moved", "The board was updated.")
}

// reorderBoard returns the task list after moving one task into the
// destination column. The moved task slots in just before the first task of
// that column created after it, or at the end of the column's run when none
// is. The result is re-flattened in fixed column order so each column's
// tasks are contiguous.
func reorderBoard(tasks []models.Task, movedID uuid.UUID, dest models.TaskStatus) []models.Task {
	var moved *models.Task
	rest := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == movedID {
			m := t
			moved = &m
			continue
		}
		rest = append(rest, t)
	}
	if moved == nil {
		return tasks
	}
	moved.Status = dest

	// Relative order within the destination column is all the flatten
	// pass preserves, so inserting anywhere before/after the right
	// neighbors is enough.
	placed := make([]models.Task, 0, len(tasks))
	inserted := false
	for _, t := range rest {
		if !inserted && t.Status == dest && t.CreatedAt.After(moved.CreatedAt) {
			placed = append(placed, *moved)
			inserted = true
		}
		placed = append(placed, t)
	}
	if !inserted {
		placed = append(placed, *moved)
	}

	flat := make([]models.Task, 0, len(placed))
	for _, col := range models.BoardColumns {
		for _, t := range placed {
			if t.Status == col {
				flat = append(flat, t)
			}
		}
	}
	return flat
}
