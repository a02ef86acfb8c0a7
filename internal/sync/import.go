package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/AlexTayron/task-habit/internal/queue"
)

// ImportAfterConnect runs the once-per-session event import after the
// calendar session has been connected mid-session.
func (o *Orchestrator) ImportAfterConnect(ctx context.Context) {
	if o.calendarConnected() {
		o.importOnce(ctx)
	}
}

// ImportCalendarEvents fetches upcoming calendar events and turns each one
// not yet linked to a task, habit or todo into a new task. Imported tasks
// appear in the container immediately; the store write for each candidate
// runs asynchronously, and one candidate's persist failure never blocks the
// others. Duplicate suppression is membership-by-reference only: a linear
// scan of the three loaded collections for the event id.
func (o *Orchestrator) ImportCalendarEvents(ctx context.Context) *Outcome {
	if !o.calendarConnected() {
		return success("Calendar import", "Calendar is not connected.")
	}

	now := time.Now()
	events, err := o.events.ListEvents(ctx, now, now.Add(o.importWindow))
	if err != nil {
		o.log.Warn("calendar event list failed", zap.Error(err))
		return warning("Calendar import failed", "Events could not be fetched from your calendar.", err)
	}

	imported := 0
	for _, ev := range events {
		if ev.ID == "" || o.container.HasCalendarEvent(ev.ID) {
			continue
		}
		eventID := ev.ID
		draft := &models.Task{
			ID:              uuid.New(),
			UserID:          o.user.ID,
			Title:           ev.Summary,
			Description:     ev.Description,
			Status:          models.TaskStatusTodo,
			StartsAt:        ev.Start.Resolve(),
			EndsAt:          ev.End.Resolve(),
			CalendarEventID: &eventID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if draft.Title == "" {
			draft.Title = "(untitled event)"
		}

		o.container.AppendTask(draft)
		o.persistImported(ctx, draft)
		imported++
	}

	if imported == 0 {
		return success("Calendar import", "No new events to import.")
	}
	return success("Calendar import", fmt.Sprintf("%d upcoming events were imported as tasks.", imported))
}

// persistImported writes one imported task to the store without blocking the
// import loop. With a job queue configured, the write becomes a worker job;
// otherwise a goroutine performs it directly. The task keeps the id assigned
// at import time either way.
func (o *Orchestrator) persistImported(ctx context.Context, draft *models.Task) {
	if o.jobs != nil {
		job := queue.NewImportPersistJob(o.user.ID, draft)
		err := o.jobs.Enqueue(ctx, job)
		if err == nil {
			return
		}
		o.log.Warn("import job enqueue failed, persisting inline",
			zap.String("task_id", draft.ID.String()), zap.Error(err))
	}

	o.importWG.Add(1)
	bg := context.WithoutCancel(ctx)
	go func() {
		defer o.importWG.Done()
		if err := o.tasks.Create(bg, draft); err != nil {
			o.log.Error("imported task persist failed",
				zap.String("task_id", draft.ID.String()),
				zap.String("event_id", *draft.CalendarEventID),
				zap.Error(err))
		}
	}()
}
