package state

import (
	"sync"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/google/uuid"
)

// Container is the authoritative in-memory state driving the rendered views:
// four ordered collections plus the current user's profile. The orchestrator
// is the only writer; handlers read value snapshots. Order is insertion
// order except where the orchestrator explicitly re-sorts the task board.
type Container struct {
	mu       sync.RWMutex
	profile  *models.User
	tasks    []*models.Task
	habits   []*models.Habit
	sessions []*models.HabitSession
	todos    []*models.Todo
}

// New creates an empty container
func New() *Container {
	return &Container{}
}

// Reset clears all collections and the profile (logout path)
func (c *Container) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = nil
	c.tasks = nil
	c.habits = nil
	c.sessions = nil
	c.todos = nil
}

// Load replaces the whole container in one step (bootstrap path)
func (c *Container) Load(profile *models.User, tasks []*models.Task, habits []*models.Habit, sessions []*models.HabitSession, todos []*models.Todo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = profile
	c.tasks = tasks
	c.habits = habits
	c.sessions = sessions
	c.todos = todos
}

// Profile returns a copy of the current profile, or nil before bootstrap
func (c *Container) Profile() *models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.profile == nil {
		return nil
	}
	copied := *c.profile
	return &copied
}

// SetProfile replaces the profile
func (c *Container) SetProfile(profile *models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = profile
}

// UpdateProfile mutates the profile under the write lock
func (c *Container) UpdateProfile(fn func(*models.User)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.profile != nil {
		fn(c.profile)
	}
}

// Tasks returns a value snapshot of the task collection in board order
func (c *Container) Tasks() []models.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Task, len(c.tasks))
	for i, t := range c.tasks {
		out[i] = *t
	}
	return out
}

// FindTask returns a copy of the task with the given id
func (c *Container) FindTask(id uuid.UUID) (models.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.tasks {
		if t.ID == id {
			return *t, true
		}
	}
	return models.Task{}, false
}

// AppendTask adds a task at the end of the collection
func (c *Container) AppendTask(task *models.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *task
	c.tasks = append(c.tasks, &copied)
}

// UpdateTask applies fn to the task with the given id under the write lock.
// Each mutation is a single atomic in-memory change, never built
// incrementally across suspension points.
func (c *Container) UpdateTask(id uuid.UUID, fn func(*models.Task)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.tasks {
		if t.ID == id {
			fn(t)
			return true
		}
	}
	return false
}

// RemoveTask deletes the task with the given id
func (c *Container) RemoveTask(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, t := range c.tasks {
		if t.ID == id {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// SetTasks replaces the full ordered task list (board reordering)
func (c *Container) SetTasks(tasks []models.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	replaced := make([]*models.Task, len(tasks))
	for i := range tasks {
		copied := tasks[i]
		replaced[i] = &copied
	}
	c.tasks = replaced
}

// Habits returns a value snapshot of the habit collection
func (c *Container) Habits() []models.Habit {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Habit, len(c.habits))
	for i, h := range c.habits {
		out[i] = *h
	}
	return out
}

// FindHabit returns a copy of the habit with the given id
func (c *Container) FindHabit(id uuid.UUID) (models.Habit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, h := range c.habits {
		if h.ID == id {
			return *h, true
		}
	}
	return models.Habit{}, false
}

// AppendHabit adds a habit at the end of the collection
func (c *Container) AppendHabit(habit *models.Habit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *habit
	c.habits = append(c.habits, &copied)
}

// UpdateHabit applies fn to the habit with the given id under the write lock
func (c *Container) UpdateHabit(id uuid.UUID, fn func(*models.Habit)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, h := range c.habits {
		if h.ID == id {
			fn(h)
			return true
		}
	}
	return false
}

// RemoveHabit deletes the habit with the given id
func (c *Container) RemoveHabit(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, h := range c.habits {
		if h.ID == id {
			c.habits = append(c.habits[:i], c.habits[i+1:]...)
			return true
		}
	}
	return false
}

// Sessions returns a value snapshot of the habit session collection
func (c *Container) Sessions() []models.HabitSession {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.HabitSession, len(c.sessions))
	for i, s := range c.sessions {
		out[i] = *s
	}
	return out
}

// AppendSession adds a session at the end of the collection
func (c *Container) AppendSession(session *models.HabitSession) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *session
	c.sessions = append(c.sessions, &copied)
}

// RemoveSessionsByHabit deletes every session referencing the habit and
// returns how many were removed
func (c *Container) RemoveSessionsByHabit(habitID uuid.UUID) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.sessions[:0]
	removed := 0
	for _, s := range c.sessions {
		if s.HabitID == habitID {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	c.sessions = kept
	return removed
}

// Todos returns a value snapshot of the todo collection
func (c *Container) Todos() []models.Todo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Todo, len(c.todos))
	for i, t := range c.todos {
		out[i] = *t
	}
	return out
}

// FindTodo returns a copy of the todo with the given id
func (c *Container) FindTodo(id uuid.UUID) (models.Todo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.todos {
		if t.ID == id {
			return *t, true
		}
	}
	return models.Todo{}, false
}

// AppendTodo adds a todo at the end of the collection
func (c *Container) AppendTodo(todo *models.Todo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *todo
	c.todos = append(c.todos, &copied)
}

// UpdateTodo applies fn to the todo with the given id under the write lock
func (c *Container) UpdateTodo(id uuid.UUID, fn func(*models.Todo)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.todos {
		if t.ID == id {
			fn(t)
			return true
		}
	}
	return false
}

// RemoveTodo deletes the todo with the given id
func (c *Container) RemoveTodo(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, t := range c.todos {
		if t.ID == id {
			c.todos = append(c.todos[:i], c.todos[i+1:]...)
			return true
		}
	}
	return false
}

// HasCalendarEvent reports whether any task, habit or todo already carries
// the given calendar event reference. Duplicate suppression for event import
// is membership-by-reference only: a linear scan over the three loaded
// collections, O(n) per candidate.
func (c *Container) HasCalendarEvent(eventID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.tasks {
		if t.CalendarEventID != nil && *t.CalendarEventID == eventID {
			return true
		}
	}
	for _, h := range c.habits {
		if h.CalendarEventID != nil && *h.CalendarEventID == eventID {
			return true
		}
	}
	for _, t := range c.todos {
		if t.CalendarEventID != nil && *t.CalendarEventID == eventID {
			return true
		}
	}
	return false
}
