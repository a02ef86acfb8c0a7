package sync

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/AlexTayron/task-habit/internal/calendar"
	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/AlexTayron/task-habit/internal/store"
)

// mockTaskStore is a mock implementation of store.TaskStore
type mockTaskStore struct {
	mu          sync.Mutex
	createCalls int
	createFunc  func(ctx context.Context, task *models.Task) error
	getFunc     func(ctx context.Context, userID uuid.UUID) ([]*models.Task, error)
	updates     []store.TaskPatch
	updateFunc  func(ctx context.Context, userID, taskID uuid.UUID, patch store.TaskPatch) error
	deleteCalls int
	deleteFunc  func(ctx context.Context, userID, taskID uuid.UUID) error
}

func (m *mockTaskStore) Create(ctx context.Context, task *models.Task) error {
	m.mu.Lock()
	m.createCalls++
	m.mu.Unlock()
	if m.createFunc != nil {
		return m.createFunc(ctx, task)
	}
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	return nil
}

func (m *mockTaskStore) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockTaskStore) Update(ctx context.Context, userID, taskID uuid.UUID, patch store.TaskPatch) error {
	m.mu.Lock()
	m.updates = append(m.updates, patch)
	m.mu.Unlock()
	if m.updateFunc != nil {
		return m.updateFunc(ctx, userID, taskID, patch)
	}
	return nil
}

func (m *mockTaskStore) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	m.mu.Lock()
	m.deleteCalls++
	m.mu.Unlock()
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, taskID)
	}
	return nil
}

func (m *mockTaskStore) created() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

// mockHabitStore is a mock implementation of store.HabitStore
type mockHabitStore struct {
	mu          sync.Mutex
	createCalls int
	createFunc  func(ctx context.Context, habit *models.Habit) error
	getFunc     func(ctx context.Context, userID uuid.UUID) ([]*models.Habit, error)
	updates     []store.HabitPatch
	updateFunc  func(ctx context.Context, userID, habitID uuid.UUID, patch store.HabitPatch) error
	deleteCalls int
	deleteFunc  func(ctx context.Context, userID, habitID uuid.UUID) error
}

func (m *mockHabitStore) Create(ctx context.Context, habit *models.Habit) error {
	m.mu.Lock()
	m.createCalls++
	m.mu.Unlock()
	if m.createFunc != nil {
		return m.createFunc(ctx, habit)
	}
	if habit.ID == uuid.Nil {
		habit.ID = uuid.New()
	}
	return nil
}

func (m *mockHabitStore) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Habit, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockHabitStore) Update(ctx context.Context, userID, habitID uuid.UUID, patch store.HabitPatch) error {
	m.mu.Lock()
	m.updates = append(m.updates, patch)
	m.mu.Unlock()
	if m.updateFunc != nil {
		return m.updateFunc(ctx, userID, habitID, patch)
	}
	return nil
}

func (m *mockHabitStore) Delete(ctx context.Context, userID, habitID uuid.UUID) error {
	m.mu.Lock()
	m.deleteCalls++
	m.mu.Unlock()
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, habitID)
	}
	return nil
}

// mockSessionStore is a mock implementation of store.HabitSessionStore
type mockSessionStore struct {
	mu                 sync.Mutex
	createCalls        int
	createFunc         func(ctx context.Context, session *models.HabitSession) error
	getFunc            func(ctx context.Context, userID uuid.UUID) ([]*models.HabitSession, error)
	deleteByHabitCalls []uuid.UUID
	deleteByHabitFunc  func(ctx context.Context, userID, habitID uuid.UUID) error
}

func (m *mockSessionStore) Create(ctx context.Context, session *models.HabitSession) error {
	m.mu.Lock()
	m.createCalls++
	m.mu.Unlock()
	if m.createFunc != nil {
		return m.createFunc(ctx, session)
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	return nil
}

func (m *mockSessionStore) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.HabitSession, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockSessionStore) DeleteByHabitID(ctx context.Context, userID, habitID uuid.UUID) error {
	m.mu.Lock()
	m.deleteByHabitCalls = append(m.deleteByHabitCalls, habitID)
	m.mu.Unlock()
	if m.deleteByHabitFunc != nil {
		return m.deleteByHabitFunc(ctx, userID, habitID)
	}
	return nil
}

// mockTodoStore is a mock implementation of store.TodoStore
type mockTodoStore struct {
	mu          sync.Mutex
	createCalls int
	createFunc  func(ctx context.Context, todo *models.Todo) error
	getFunc     func(ctx context.Context, userID uuid.UUID) ([]*models.Todo, error)
	updates     []store.TodoPatch
	updateFunc  func(ctx context.Context, userID, todoID uuid.UUID, patch store.TodoPatch) error
	deleteCalls int
	deleteFunc  func(ctx context.Context, userID, todoID uuid.UUID) error
}

func (m *mockTodoStore) Create(ctx context.Context, todo *models.Todo) error {
	m.mu.Lock()
	m.createCalls++
	m.mu.Unlock()
	if m.createFunc != nil {
		return m.createFunc(ctx, todo)
	}
	if todo.ID == uuid.Nil {
		todo.ID = uuid.New()
	}
	return nil
}

func (m *mockTodoStore) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Todo, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockTodoStore) Update(ctx context.Context, userID, todoID uuid.UUID, patch store.TodoPatch) error {
	m.mu.Lock()
	m.updates = append(m.updates, patch)
	m.mu.Unlock()
	if m.updateFunc != nil {
		return m.updateFunc(ctx, userID, todoID, patch)
	}
	return nil
}

func (m *mockTodoStore) Delete(ctx context.Context, userID, todoID uuid.UUID) error {
	m.mu.Lock()
	m.deleteCalls++
	m.mu.Unlock()
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, todoID)
	}
	return nil
}

// mockUserStore is a mock implementation of store.UserStore
type mockUserStore struct {
	updates    []store.UserPatch
	updateFunc func(ctx context.Context, userID uuid.UUID, patch store.UserPatch) error
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	return nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return nil, nil
}

func (m *mockUserStore) GetByProviderID(ctx context.Context, providerID string) (*models.User, error) {
	return nil, nil
}

func (m *mockUserStore) Update(ctx context.Context, userID uuid.UUID, patch store.UserPatch) error {
	m.updates = append(m.updates, patch)
	if m.updateFunc != nil {
		return m.updateFunc(ctx, userID, patch)
	}
	return nil
}

// mockEvents is a mock implementation of calendar.EventAPI
type mockEvents struct {
	createCalls     int
	createEventFunc func(ctx context.Context, in calendar.EventInput) (string, error)
	updateCalls     int
	updateEventFunc func(ctx context.Context, eventID string, in calendar.EventInput) error
	deleteCalls     int
	deleteEventFunc func(ctx context.Context, eventID string) error
	listEventsFunc  func(ctx context.Context, timeMin, timeMax time.Time) ([]calendar.Event, error)
}

func (m *mockEvents) CreateEvent(ctx context.Context, in calendar.EventInput) (string, error) {
	m.createCalls++
	if m.createEventFunc != nil {
		return m.createEventFunc(ctx, in)
	}
	return "evt-" + uuid.NewString(), nil
}

func (m *mockEvents) UpdateEvent(ctx context.Context, eventID string, in calendar.EventInput) error {
	m.updateCalls++
	if m.updateEventFunc != nil {
		return m.updateEventFunc(ctx, eventID, in)
	}
	return nil
}

func (m *mockEvents) DeleteEvent(ctx context.Context, eventID string) error {
	m.deleteCalls++
	if m.deleteEventFunc != nil {
		return m.deleteEventFunc(ctx, eventID)
	}
	return nil
}

func (m *mockEvents) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]calendar.Event, error) {
	if m.listEventsFunc != nil {
		return m.listEventsFunc(ctx, timeMin, timeMax)
	}
	return nil, nil
}

var _ calendar.EventAPI = (*mockEvents)(nil)

// fixture wires an orchestrator against mocks. With connected=true the
// calendar session holds a token, so every calendar step runs.
type fixture struct {
	user     *models.User
	tasks    *mockTaskStore
	habits   *mockHabitStore
	sessions *mockSessionStore
	todos    *mockTodoStore
	users    *mockUserStore
	events   *mockEvents
	session  *calendar.Session
	orch     *Orchestrator
}

func newFixture(connected bool) *fixture {
	f := &fixture{
		user:     &models.User{ID: uuid.New(), Email: "test@example.com"},
		tasks:    &mockTaskStore{},
		habits:   &mockHabitStore{},
		sessions: &mockSessionStore{},
		todos:    &mockTodoStore{},
		users:    &mockUserStore{},
		events:   &mockEvents{},
		session:  calendar.NewSession(&oauth2.Config{}),
	}
	if connected {
		f.session.Connect(&oauth2.Token{AccessToken: "test-token"})
	}
	f.orch = New(Config{
		User:     f.user,
		Tasks:    f.tasks,
		Habits:   f.habits,
		Sessions: f.sessions,
		Todos:    f.todos,
		Users:    f.users,
		Events:   f.events,
		Session:  f.session,
		Logger:   zap.NewNop(),
	})
	return f
}

func strptr(s string) *string {
	return &s
}

func testToken() *oauth2.Token {
	return &oauth2.Token{AccessToken: "test-token"}
}
