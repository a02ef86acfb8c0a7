package sync

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/AlexTayron/task-habit/internal/models"
)

// Bootstrap loads the user's four collections from the store in parallel and
// seeds the container with them. When a calendar session is already
// connected, the once-per-session event import runs afterwards. Bootstrap
// replaces whatever the container held, so calling it again re-syncs the
// session from the store.
func (o *Orchestrator) Bootstrap(ctx context.Context) error {
	var (
		tasks    []*models.Task
		habits   []*models.Habit
		sessions []*models.HabitSession
		todos    []*models.Todo
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		tasks, err = o.tasks.GetByUserID(gctx, o.user.ID)
		return err
	})
	g.Go(func() (err error) {
		habits, err = o.habits.GetByUserID(gctx, o.user.ID)
		return err
	})
	g.Go(func() (err error) {
		sessions, err = o.sessions.GetByUserID(gctx, o.user.ID)
		return err
	})
	g.Go(func() (err error) {
		todos, err = o.todos.GetByUserID(gctx, o.user.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load user data: %w", err)
	}

	o.container.Load(o.user, tasks, habits, sessions, todos)

	if o.calendarConnected() {
		o.importOnce(ctx)
	}
	return nil
}

// importOnce triggers the calendar import the first time both preconditions
// (loaded data, connected calendar) hold in this session.
func (o *Orchestrator) importOnce(ctx context.Context) {
	o.mu.Lock()
	already := o.imported
	o.imported = true
	o.mu.Unlock()
	if already {
		return
	}
	o.ImportCalendarEvents(ctx)
}
