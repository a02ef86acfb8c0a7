package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AlexTayron/task-habit/internal/calendar"
	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/AlexTayron/task-habit/internal/queue"
	"github.com/AlexTayron/task-habit/internal/store"
	syncpkg "github.com/AlexTayron/task-habit/internal/sync"
)

// Registry hands out one orchestrator per authenticated user and keeps it
// for the lifetime of the process. The first request for a user pays the
// bootstrap cost (parallel store loads plus, when connected, the one-time
// calendar import); later requests reuse the same session state.
type Registry struct {
	db     *store.DB
	jobs   queue.JobQueue
	creds  *calendar.Credentials
	logger *zap.Logger

	calendarBaseURL string

	mu      sync.Mutex
	entries map[uuid.UUID]*registryEntry
}

type registryEntry struct {
	orch    *syncpkg.Orchestrator
	session *calendar.Session
}

// RegistryConfig carries the registry's shared dependencies. Credentials
// and Jobs are both optional; without credentials every calendar step is a
// silent no-op, without a queue import persists fall back to goroutines.
type RegistryConfig struct {
	DB              *store.DB
	Jobs            queue.JobQueue
	Credentials     *calendar.Credentials
	CalendarBaseURL string
	Logger          *zap.Logger
}

// NewRegistry creates an empty orchestrator registry
func NewRegistry(cfg RegistryConfig) *Registry {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		db:              cfg.DB,
		jobs:            cfg.Jobs,
		creds:           cfg.Credentials,
		calendarBaseURL: cfg.CalendarBaseURL,
		logger:          logger,
		entries:         make(map[uuid.UUID]*registryEntry),
	}
}

// ForUser returns the user's orchestrator, bootstrapping one on first use
func (reg *Registry) ForUser(ctx context.Context, user *models.User) (*syncpkg.Orchestrator, error) {
	entry, err := reg.entry(ctx, user)
	if err != nil {
		return nil, err
	}
	return entry.orch, nil
}

// SessionFor returns the user's calendar session, or nil when no calendar
// credentials are configured.
func (reg *Registry) SessionFor(ctx context.Context, user *models.User) (*calendar.Session, error) {
	entry, err := reg.entry(ctx, user)
	if err != nil {
		return nil, err
	}
	return entry.session, nil
}

// Wait blocks until every orchestrator's background work has drained
func (reg *Registry) Wait() {
	reg.mu.Lock()
	entries := make([]*registryEntry, 0, len(reg.entries))
	for _, e := range reg.entries {
		entries = append(entries, e)
	}
	reg.mu.Unlock()

	for _, e := range entries {
		e.orch.Wait()
	}
}

func (reg *Registry) entry(ctx context.Context, user *models.User) (*registryEntry, error) {
	reg.mu.Lock()
	if e, ok := reg.entries[user.ID]; ok {
		reg.mu.Unlock()
		return e, nil
	}
	reg.mu.Unlock()

	e, err := reg.build(ctx, user)
	if err != nil {
		return nil, err
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	// another request may have bootstrapped the same user concurrently
	if existing, ok := reg.entries[user.ID]; ok {
		return existing, nil
	}
	reg.entries[user.ID] = e
	return e, nil
}

func (reg *Registry) build(ctx context.Context, user *models.User) (*registryEntry, error) {
	var (
		session *calendar.Session
		events  calendar.EventAPI
	)

	calCfg, err := store.NewCalendarConfigRepository(reg.db).Get(ctx)
	if err != nil {
		return nil, err
	}
	window := time.Duration(models.DefaultImportWindowDays) * 24 * time.Hour
	calendarID := "primary"
	timeZone := "UTC"
	if calCfg != nil {
		if calCfg.ImportWindowDays > 0 {
			window = time.Duration(calCfg.ImportWindowDays) * 24 * time.Hour
		}
		if calCfg.TargetCalendarID != "" {
			calendarID = calCfg.TargetCalendarID
		}
		if calCfg.TimeZone != "" {
			timeZone = calCfg.TimeZone
		}
	}

	if reg.creds != nil {
		session = calendar.NewSession(reg.creds.OAuthConfig())
		events = calendar.NewClient(session, reg.calendarBaseURL, calendarID, timeZone)
	}

	orch := syncpkg.New(syncpkg.Config{
		User:         user,
		Tasks:        store.NewTaskRepository(reg.db),
		Habits:       store.NewHabitRepository(reg.db),
		Sessions:     store.NewHabitSessionRepository(reg.db),
		Todos:        store.NewTodoRepository(reg.db),
		Users:        store.NewUserRepository(reg.db),
		Events:       events,
		Session:      session,
		Jobs:         reg.jobs,
		ImportWindow: window,
		Logger:       reg.logger,
	})

	if err := orch.Bootstrap(ctx); err != nil {
		return nil, err
	}

	return &registryEntry{orch: orch, session: session}, nil
}
