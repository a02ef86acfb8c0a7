package sync

import (
	"time"

	"github.com/AlexTayron/task-habit/internal/calendar"
	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/AlexTayron/task-habit/internal/store"
)

// Builders mapping domain entities onto calendar event inputs. Create
// builders send the full entity; update builders carry only the patched
// fields so absent fields are omitted from the wire call instead of
// clobbering calendar-side data.

func taskEventInput(task *models.Task) calendar.EventInput {
	return calendar.EventInput{
		Title:       task.Title,
		Description: task.Description,
		StartsAt:    task.StartsAt,
		EndsAt:      task.EndsAt,
	}
}

func taskPatchEventInput(patch store.TaskPatch) calendar.EventInput {
	in := calendar.EventInput{
		StartsAt: patch.StartsAt,
		EndsAt:   patch.EndsAt,
	}
	if patch.Title != nil {
		in.Title = *patch.Title
	}
	if patch.Description != nil {
		in.Description = *patch.Description
	}
	return in
}

func habitEventInput(habit *models.Habit) calendar.EventInput {
	in := calendar.EventInput{
		Title:       habit.Title,
		Description: habit.Description,
		Recurrence:  habit.Frequency,
	}
	if starts := preferredStart(habit.PreferredTime, time.Now()); starts != nil {
		in.StartsAt = starts
	}
	return in
}

func habitPatchEventInput(patch store.HabitPatch) calendar.EventInput {
	in := calendar.EventInput{}
	if patch.Title != nil {
		in.Title = *patch.Title
	}
	if patch.Description != nil {
		in.Description = *patch.Description
	}
	if patch.Frequency != nil {
		in.Recurrence = *patch.Frequency
	}
	if patch.PreferredTime != nil {
		in.StartsAt = preferredStart(patch.PreferredTime, time.Now())
	}
	return in
}

func todoEventInput(todo *models.Todo) calendar.EventInput {
	return calendar.EventInput{
		Title:       todo.Title,
		Description: todo.Description,
	}
}

func todoPatchEventInput(patch store.TodoPatch) calendar.EventInput {
	in := calendar.EventInput{}
	if patch.Title != nil {
		in.Title = *patch.Title
	}
	if patch.Description != nil {
		in.Description = *patch.Description
	}
	return in
}

// preferredStart anchors a habit's "HH:MM" preferred time to today's date.
// An unset or unparseable value yields nil, letting the calendar client fall
// back to its own defaults.
func preferredStart(preferred *string, now time.Time) *time.Time {
	if preferred == nil || *preferred == "" {
		return nil
	}
	at, err := time.Parse("15:04", *preferred)
	if err != nil {
		return nil
	}
	starts := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
	return &starts
}
