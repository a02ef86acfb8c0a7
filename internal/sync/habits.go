package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/AlexTayron/task-habit/internal/store"
)

// CreateHabit validates and persists a new habit, creates its recurring
// calendar event when a session is connected, and appends it to the
// container. Progress is clamped into [0, goal_target] before anything is
// persisted.
func (o *Orchestrator) CreateHabit(ctx context.Context, draft *models.Habit) *Outcome {
	if err := validateHabit(draft); err != nil {
		return failure("Habit not created", err.Error(), err)
	}
	draft.UserID = o.user.ID
	if draft.Progress > draft.GoalTarget {
		draft.Progress = draft.GoalTarget
	}

	if err := o.habits.Create(ctx, draft); err != nil {
		o.log.Error("habit create failed", zap.Error(err))
		return failure("Habit not created", "The habit could not be saved. Try again.", err)
	}

	warn := o.syncNewEvent(ctx, "Habit created", habitEventInput(draft), func(eventID string) error {
		draft.CalendarEventID = &eventID
		return o.habits.Update(ctx, o.user.ID, draft.ID, store.HabitPatch{CalendarEventID: &eventID})
	})

	o.container.AppendHabit(draft)
	if warn != nil {
		return warn
	}
	if draft.CalendarEventID != nil {
		return success("Habit created", "Habit saved and added to your calendar.")
	}
	return success("Habit created", "Habit saved.")
}

// UpdateHabit pushes changed fields to the linked calendar event (best
// effort), persists them, and merges them into the container entry. A
// progress change is clamped against the habit's goal target first.
func (o *Orchestrator) UpdateHabit(ctx context.Context, habitID uuid.UUID, patch store.HabitPatch) *Outcome {
	current, ok := o.container.FindHabit(habitID)
	if !ok {
		return failure("Habit not updated", "The habit no longer exists.", errNotFound)
	}

	if patch.Progress != nil {
		target := current.GoalTarget
		if patch.GoalTarget != nil {
			target = *patch.GoalTarget
		}
		clamped := clamp(*patch.Progress, 0, target)
		patch.Progress = &clamped
	}

	calErr := o.syncUpdateEvent(ctx, current.CalendarEventID, habitPatchEventInput(patch))

	if err := o.habits.Update(ctx, o.user.ID, habitID, patch); err != nil {
		o.log.Error("habit update failed", zap.String("habit_id", habitID.String()), zap.Error(err))
		return failure("Habit not updated", "The change could not be saved. Try again.", err)
	}

	o.container.UpdateHabit(habitID, func(h *models.Habit) {
		applyHabitPatch(h, patch)
	})

	if calErr != nil {
		return warning("Habit updated", "Saved, but the calendar event could not be updated.", calErr)
	}
	return success("Habit updated", "Your changes were saved.")
}

// DeleteHabit removes the habit's calendar event (best effort), deletes the
// habit from the store, and cascades the delete to every session recorded
// against it, both in the store and in the container.
func (o *Orchestrator) DeleteHabit(ctx context.Context, habitID uuid.UUID) *Outcome {
	current, ok := o.container.FindHabit(habitID)
	if !ok {
		return failure("Habit not deleted", "The habit no longer exists.", errNotFound)
	}

	calErr := o.syncDeleteEvent(ctx, current.CalendarEventID)

	if err := o.habits.Delete(ctx, o.user.ID, habitID); err != nil {
		o.log.Error("habit delete failed", zap.String("habit_id", habitID.String()), zap.Error(err))
		return failure("Habit not deleted", "The habit could not be deleted. Try again.", err)
	}

	var cascadeErr error
	if err := o.sessions.DeleteByHabitID(ctx, o.user.ID, habitID); err != nil {
		o.log.Error("habit session cascade failed", zap.String("habit_id", habitID.String()), zap.Error(err))
		cascadeErr = err
	}

	o.container.RemoveHabit(habitID)
	o.container.RemoveSessionsByHabit(habitID)

	switch {
	case cascadeErr != nil:
		return warning("Habit deleted", "Deleted, but some of its sessions could not be removed.", cascadeErr)
	case calErr != nil:
		return warning("Habit deleted", "Deleted, but its calendar event could not be removed.", calErr)
	}
	return success("Habit deleted", "The habit and its sessions were deleted.")
}

func applyHabitPatch(h *models.Habit, p store.HabitPatch) {
	if p.Title != nil {
		h.Title = *p.Title
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.GoalType != nil {
		h.GoalType = *p.GoalType
	}
	if p.GoalTarget != nil {
		h.GoalTarget = *p.GoalTarget
	}
	if p.Progress != nil {
		h.Progress = *p.Progress
	}
	if p.Frequency != nil {
		h.Frequency = *p.Frequency
	}
	if p.PreferredTime != nil {
		h.PreferredTime = p.PreferredTime
	}
	if p.CalendarEventID != nil {
		h.CalendarEventID = p.CalendarEventID
	}
	if p.UpdatedAt != nil {
		h.UpdatedAt = *p.UpdatedAt
	} else {
		h.UpdatedAt = time.Now()
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
