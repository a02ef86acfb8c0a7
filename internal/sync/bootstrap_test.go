package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/AlexTayron/task-habit/internal/calendar"
	"github.com/AlexTayron/task-habit/internal/models"
)

func TestBootstrapLoadsAllCollections(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	habitID := uuid.New()
	f.tasks.getFunc = func(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
		return []*models.Task{
			{ID: uuid.New(), UserID: userID, Title: "t1", Status: models.TaskStatusTodo},
			{ID: uuid.New(), UserID: userID, Title: "t2", Status: models.TaskStatusDone},
		}, nil
	}
	f.habits.getFunc = func(ctx context.Context, userID uuid.UUID) ([]*models.Habit, error) {
		return []*models.Habit{
			{ID: habitID, UserID: userID, Title: "h1", GoalType: models.GoalTypePages, GoalTarget: 5, Frequency: models.HabitFrequencyDaily},
		}, nil
	}
	f.sessions.getFunc = func(ctx context.Context, userID uuid.UUID) ([]*models.HabitSession, error) {
		return []*models.HabitSession{
			{ID: uuid.New(), UserID: userID, HabitID: habitID, Quantity: 2, OccurredAt: time.Now()},
		}, nil
	}
	f.todos.getFunc = func(ctx context.Context, userID uuid.UUID) ([]*models.Todo, error) {
		return []*models.Todo{
			{ID: uuid.New(), UserID: userID, Title: "td1"},
		}, nil
	}

	if err := f.orch.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	c := f.orch.Container()
	if got := len(c.Tasks()); got != 2 {
		t.Errorf("expected 2 tasks, got %d", got)
	}
	if got := len(c.Habits()); got != 1 {
		t.Errorf("expected 1 habit, got %d", got)
	}
	if got := len(c.Sessions()); got != 1 {
		t.Errorf("expected 1 session, got %d", got)
	}
	if got := len(c.Todos()); got != 1 {
		t.Errorf("expected 1 todo, got %d", got)
	}
	if c.Profile() == nil || c.Profile().ID != f.user.ID {
		t.Error("profile not seeded from the authenticated user")
	}
}

func TestBootstrapFailsWhenAnyLoadFails(t *testing.T) {
	f := newFixture(false)
	f.habits.getFunc = func(ctx context.Context, userID uuid.UUID) ([]*models.Habit, error) {
		return nil, errors.New("connection refused")
	}

	if err := f.orch.Bootstrap(context.Background()); err == nil {
		t.Fatal("expected bootstrap to fail when one collection load fails")
	}
}

func TestBootstrapImportsOncePerSession(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()

	listCalls := 0
	f.events.listEventsFunc = func(ctx context.Context, timeMin, timeMax time.Time) ([]calendar.Event, error) {
		listCalls++
		return nil, nil
	}

	if err := f.orch.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if err := f.orch.Bootstrap(ctx); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}
	f.orch.ImportAfterConnect(ctx)

	if listCalls != 1 {
		t.Errorf("import must run once per session, ran %d times", listCalls)
	}
}

func TestImportAfterConnectTriggersImport(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	listCalls := 0
	f.events.listEventsFunc = func(ctx context.Context, timeMin, timeMax time.Time) ([]calendar.Event, error) {
		listCalls++
		return nil, nil
	}

	// Disconnected bootstrap must not import.
	if err := f.orch.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if listCalls != 0 {
		t.Fatalf("no import expected while disconnected, got %d", listCalls)
	}

	f.session.Connect(testToken())
	f.orch.ImportAfterConnect(ctx)
	if listCalls != 1 {
		t.Errorf("import should run after connecting, ran %d times", listCalls)
	}
}
