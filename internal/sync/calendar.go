package sync

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/AlexTayron/task-habit/internal/calendar"
)

// errNotFound marks an operation targeting an entity the container no longer
// holds. It never leaves the package except wrapped in an Outcome.
var errNotFound = errors.New("entity not found in session state")

// IsNotFound reports whether an outcome's error means the target entity is
// missing from the session state. The HTTP layer maps this to a 404.
func IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

// syncNewEvent runs the optional calendar leg of a create: event creation
// followed by the secondary persist of the event reference. It returns a
// warning outcome when a step degrades, or nil when every step (or no step)
// ran cleanly. The caller still appends the entity to the container either
// way.
func (o *Orchestrator) syncNewEvent(ctx context.Context, title string, in calendar.EventInput, persist func(eventID string) error) *Outcome {
	if !o.calendarConnected() {
		return nil
	}

	eventID, err := o.events.CreateEvent(ctx, in)
	if err != nil {
		o.log.Warn("calendar event create failed", zap.Error(err))
		return warning(title, "Saved, but the calendar event could not be created.", err)
	}

	if err := persist(eventID); err != nil {
		o.log.Warn("calendar reference persist failed",
			zap.String("event_id", eventID), zap.Error(err))
		return warning(title, "Saved and added to your calendar, but the calendar link could not be stored.", err)
	}

	return nil
}

// syncUpdateEvent pushes changed fields to the linked calendar event, if the
// session is connected, a link exists, and the patch touches anything the
// calendar can show. Returns the calendar error for the caller to downgrade
// to a warning.
func (o *Orchestrator) syncUpdateEvent(ctx context.Context, eventID *string, in calendar.EventInput) error {
	if !o.calendarConnected() || eventID == nil || *eventID == "" {
		return nil
	}
	if in == (calendar.EventInput{}) {
		return nil
	}
	if err := o.events.UpdateEvent(ctx, *eventID, in); err != nil {
		o.log.Warn("calendar event update failed",
			zap.String("event_id", *eventID), zap.Error(err))
		return err
	}
	return nil
}

// syncDeleteEvent removes the linked calendar event, if any. Returns the
// calendar error for the caller to downgrade to a warning.
func (o *Orchestrator) syncDeleteEvent(ctx context.Context, eventID *string) error {
	if !o.calendarConnected() || eventID == nil || *eventID == "" {
		return nil
	}
	if err := o.events.DeleteEvent(ctx, *eventID); err != nil {
		o.log.Warn("calendar event delete failed",
			zap.String("event_id", *eventID), zap.Error(err))
		return err
	}
	return nil
}
