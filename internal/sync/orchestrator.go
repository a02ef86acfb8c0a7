package sync

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AlexTayron/task-habit/internal/calendar"
	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/AlexTayron/task-habit/internal/queue"
	"github.com/AlexTayron/task-habit/internal/state"
	"github.com/AlexTayron/task-habit/internal/store"
)

// Orchestrator coordinates every mutation across the in-memory state
// container, the document store, and the external calendar. It is the only
// component that writes to the container. One Orchestrator exists per
// authenticated session.
//
// Failure policy: store failures are fatal to the triggering operation and
// the container is left (or restored) as if the operation never ran.
// Calendar failures never block an operation; they degrade the outcome to a
// warning. No operation retries on its own.
type Orchestrator struct {
	user      *models.User
	container *state.Container

	tasks    store.TaskStore
	habits   store.HabitStore
	sessions store.HabitSessionStore
	todos    store.TodoStore
	users    store.UserStore

	events  calendar.EventAPI
	session *calendar.Session

	jobs         queue.JobQueue
	importWindow time.Duration
	log          *zap.Logger

	mu       sync.Mutex
	imported bool

	// importWG tracks in-flight background persists of imported tasks,
	// so shutdown (and tests) can wait for them.
	importWG sync.WaitGroup
}

// Config carries the orchestrator's dependencies
type Config struct {
	User     *models.User
	Tasks    store.TaskStore
	Habits   store.HabitStore
	Sessions store.HabitSessionStore
	Todos    store.TodoStore
	Users    store.UserStore

	// Events and Session may both be nil when no calendar credentials are
	// configured; every calendar step then degrades to a silent no-op.
	Events  calendar.EventAPI
	Session *calendar.Session

	// Jobs is optional. When nil, imported tasks are persisted by
	// per-candidate goroutines instead of queued jobs.
	Jobs queue.JobQueue

	// ImportWindow is the forward-looking window for calendar import.
	// Zero means the default of seven days.
	ImportWindow time.Duration

	Logger *zap.Logger
}

// New creates an orchestrator for one authenticated user
func New(cfg Config) *Orchestrator {
	window := cfg.ImportWindow
	if window <= 0 {
		window = time.Duration(models.DefaultImportWindowDays) * 24 * time.Hour
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		user:         cfg.User,
		container:    state.New(),
		tasks:        cfg.Tasks,
		habits:       cfg.Habits,
		sessions:     cfg.Sessions,
		todos:        cfg.Todos,
		users:        cfg.Users,
		events:       cfg.Events,
		session:      cfg.Session,
		jobs:         cfg.Jobs,
		importWindow: window,
		log:          log.With(zap.String("user_id", cfg.User.ID.String())),
	}
}

// Container exposes the session's state container for read access
func (o *Orchestrator) Container() *state.Container {
	return o.container
}

// User returns the profile the orchestrator was built for
func (o *Orchestrator) User() *models.User {
	return o.user
}

// calendarConnected reports whether calendar steps should be attempted at
// all. A missing client or a disconnected session both mean "skip silently".
func (o *Orchestrator) calendarConnected() bool {
	return o.events != nil && o.session != nil && o.session.Connected()
}

// Wait blocks until background import persists have finished
func (o *Orchestrator) Wait() {
	o.importWG.Wait()
}
