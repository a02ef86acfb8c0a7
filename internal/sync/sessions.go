package sync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/AlexTayron/task-habit/internal/store"
)

// RecordHabitSession persists an immutable session against a habit and then
// advances the habit's progress through the standard habit update path,
// clamped so progress never exceeds the goal target.
func (o *Orchestrator) RecordHabitSession(ctx context.Context, draft *models.HabitSession) *Outcome {
	if err := validateSession(draft); err != nil {
		return failure("Session not recorded", err.Error(), err)
	}

	habit, ok := o.container.FindHabit(draft.HabitID)
	if !ok {
		return failure("Session not recorded", "The habit no longer exists.", errNotFound)
	}
	draft.UserID = o.user.ID

	if err := o.sessions.Create(ctx, draft); err != nil {
		o.log.Error("habit session create failed",
			zap.String("habit_id", draft.HabitID.String()), zap.Error(err))
		return failure("Session not recorded", "The session could not be saved. Try again.", err)
	}

	o.container.AppendSession(draft)

	newProgress := clamp(habit.Progress+draft.Quantity, 0, habit.GoalTarget)
	out := o.UpdateHabit(ctx, habit.ID, store.HabitPatch{Progress: &newProgress})

	switch out.Severity {
	case SeverityError:
		return failure("Progress not updated",
			"The session was recorded, but the habit progress could not be saved.", out.Err)
	case SeverityWarning:
		return warning("Session recorded",
			"Progress saved, but the calendar event could not be updated.", out.Err)
	}
	return success("Session recorded",
		fmt.Sprintf("Progress for %q is now %g of %g.", habit.Title, newProgress, habit.GoalTarget))
}
