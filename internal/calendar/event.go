package calendar

import (
	"time"

	"github.com/AlexTayron/task-habit/internal/models"
)

// EventInput is the domain-side view of a calendar event. The orchestrator
// builds one from a task, habit or todo; the client maps it onto the wire
// format of the external API.
type EventInput struct {
	Title       string
	Description string
	StartsAt    *time.Time
	EndsAt      *time.Time
	// Recurrence derives an RRULE for habits; empty for tasks and todos.
	Recurrence models.HabitFrequency
}

// Event is an event instance returned by the external calendar, recurring
// events already expanded to single instances.
type Event struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       EventTime `json:"start"`
	End         EventTime `json:"end"`
}

// EventTime is the external API's date-or-datetime union
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// Resolve returns the concrete time of an EventTime, preferring the
// timed form over the all-day form.
func (t EventTime) Resolve() *time.Time {
	if t.DateTime != "" {
		if parsed, err := time.Parse(time.RFC3339, t.DateTime); err == nil {
			return &parsed
		}
	}
	if t.Date != "" {
		if parsed, err := time.Parse("2006-01-02", t.Date); err == nil {
			return &parsed
		}
	}
	return nil
}

// eventBody is the request payload for create/update calls. Text fields are
// pointers so a patch can distinguish "clear to empty" from "leave alone".
type eventBody struct {
	Summary     *string    `json:"summary,omitempty"`
	Description *string    `json:"description,omitempty"`
	Start       *EventTime `json:"start,omitempty"`
	End         *EventTime `json:"end,omitempty"`
	Recurrence  []string   `json:"recurrence,omitempty"`
}

const defaultEventDuration = 30 * time.Minute

// buildCreateBody maps an EventInput onto a full event payload. Items with
// no explicit schedule fall back to "now" / "now + 30 minutes".
func buildCreateBody(in EventInput, timeZone string, now time.Time) *eventBody {
	start := now
	if in.StartsAt != nil {
		start = *in.StartsAt
	}
	end := start.Add(defaultEventDuration)
	if in.EndsAt != nil {
		end = *in.EndsAt
	}

	return &eventBody{
		Summary:     &in.Title,
		Description: &in.Description,
		Start:       &EventTime{DateTime: start.Format(time.RFC3339), TimeZone: timeZone},
		End:         &EventTime{DateTime: end.Format(time.RFC3339), TimeZone: timeZone},
		Recurrence:  recurrenceRule(in.Recurrence),
	}
}

// buildUpdateBody maps an EventInput onto a patch payload. Schedule fields
// the item does not carry are omitted entirely so calendar-side data that is
// not tracked locally is never clobbered; the text fields are always sent,
// an empty description clears the calendar-side one.
func buildUpdateBody(in EventInput, timeZone string) *eventBody {
	body := &eventBody{
		Summary:     &in.Title,
		Description: &in.Description,
		Recurrence:  recurrenceRule(in.Recurrence),
	}
	if in.StartsAt != nil {
		body.Start = &EventTime{DateTime: in.StartsAt.Format(time.RFC3339), TimeZone: timeZone}
	}
	if in.EndsAt != nil {
		body.End = &EventTime{DateTime: in.EndsAt.Format(time.RFC3339), TimeZone: timeZone}
	}
	return body
}

func recurrenceRule(frequency models.HabitFrequency) []string {
	switch frequency {
	case models.HabitFrequencyDaily:
		return []string{"RRULE:FREQ=DAILY"}
	case models.HabitFrequencyWeekly:
		return []string{"RRULE:FREQ=WEEKLY"}
	case models.HabitFrequencyMonthly:
		return []string{"RRULE:FREQ=MONTHLY"}
	}
	return nil
}
