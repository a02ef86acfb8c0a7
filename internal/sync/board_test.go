package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/AlexTayron/task-habit/internal/store"
)

func boardTask(title string, status models.TaskStatus, createdAt time.Time) *models.Task {
	return &models.Task{
		ID:        uuid.New(),
		Title:     title,
		Status:    status,
		CreatedAt: createdAt,
	}
}

// checkColumnsContiguous asserts the flattened list groups each column's
// tasks contiguously in fixed column order, with every task appearing once.
func checkColumnsContiguous(t *testing.T, tasks []models.Task, want int) {
	t.Helper()
	if len(tasks) != want {
		t.Fatalf("expected %d tasks, got %d", want, len(tasks))
	}
	seen := map[uuid.UUID]bool{}
	col := 0
	for _, task := range tasks {
		for col < len(models.BoardColumns) && task.Status != models.BoardColumns[col] {
			col++
		}
		if col == len(models.BoardColumns) {
			t.Fatalf("task %q (status %s) appears out of column order", task.Title, task.Status)
		}
		if seen[task.ID] {
			t.Fatalf("task %q appears more than once", task.Title)
		}
		seen[task.ID] = true
	}
}

func TestMoveTaskInsertsByCreationTime(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	base := time.Now()

	early := boardTask("early", models.TaskStatusInProgress, base.Add(-2*time.Hour))
	late := boardTask("late", models.TaskStatusInProgress, base.Add(2*time.Hour))
	moved := boardTask("moved", models.TaskStatusTodo, base)
	for _, task := range []*models.Task{early, late, moved} {
		f.orch.Container().AppendTask(task)
	}

	out := f.orch.MoveTask(ctx, moved.ID, models.TaskStatusInProgress)
	if out.Severity != SeveritySuccess {
		t.Fatalf("expected success, got %s: %s", out.Severity, out.Message)
	}

	tasks := f.orch.Container().Tasks()
	checkColumnsContiguous(t, tasks, 3)
	order := []string{tasks[0].Title, tasks[1].Title, tasks[2].Title}
	want := []string{"early", "moved", "late"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}

	if len(f.tasks.updates) != 1 {
		t.Fatalf("expected 1 store update, got %d", len(f.tasks.updates))
	}
	patch := f.tasks.updates[0]
	if patch.Status == nil || *patch.Status != models.TaskStatusInProgress {
		t.Errorf("expected status patch in_progress, got %v", patch.Status)
	}
	if patch.Title != nil || patch.Description != nil {
		t.Error("move must persist only the status field")
	}
}

func TestMoveTaskAppendsWhenLatestInColumn(t *testing.T) {
	f := newFixture(false)
	base := time.Now()

	a := boardTask("a", models.TaskStatusDone, base.Add(-3*time.Hour))
	b := boardTask("b", models.TaskStatusDone, base.Add(-2*time.Hour))
	moved := boardTask("moved", models.TaskStatusTodo, base)
	for _, task := range []*models.Task{a, b, moved} {
		f.orch.Container().AppendTask(task)
	}

	if out := f.orch.MoveTask(context.Background(), moved.ID, models.TaskStatusDone); !out.OK() {
		t.Fatalf("move failed: %s", out.Message)
	}

	tasks := f.orch.Container().Tasks()
	if tasks[len(tasks)-1].Title != "moved" {
		t.Errorf("expected moved task at the end of the done column, got %q", tasks[len(tasks)-1].Title)
	}
}

func TestMoveTaskRefreshesUpdatedAt(t *testing.T) {
	f := newFixture(false)
	base := time.Now().Add(-24 * time.Hour)

	moved := boardTask("moved", models.TaskStatusTodo, base)
	moved.UpdatedAt = base
	f.orch.Container().AppendTask(moved)

	if out := f.orch.MoveTask(context.Background(), moved.ID, models.TaskStatusDone); !out.OK() {
		t.Fatalf("move failed: %s", out.Message)
	}

	got, ok := f.orch.Container().FindTask(moved.ID)
	if !ok {
		t.Fatal("moved task disappeared from the container")
	}
	if !got.UpdatedAt.After(base) {
		t.Errorf("expected updated_at to be refreshed, still %v", got.UpdatedAt)
	}

	patch := f.tasks.updates[0]
	if patch.UpdatedAt == nil || !patch.UpdatedAt.Equal(got.UpdatedAt) {
		t.Errorf("expected the persisted timestamp to match the in-memory one, got %v vs %v", patch.UpdatedAt, got.UpdatedAt)
	}
}

// Column grouping stays consistent across an arbitrary move sequence.
func TestMoveTaskColumnReconciliation(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	base := time.Now()

	var all []*models.Task
	for i := 0; i < 9; i++ {
		task := boardTask(string(rune('a'+i)), models.BoardColumns[i%3], base.Add(time.Duration(i)*time.Minute))
		all = append(all, task)
		f.orch.Container().AppendTask(task)
	}

	moves := []struct {
		idx  int
		dest models.TaskStatus
	}{
		{0, models.TaskStatusDone},
		{4, models.TaskStatusTodo},
		{8, models.TaskStatusInProgress},
		{0, models.TaskStatusTodo},
		{2, models.TaskStatusInProgress},
	}
	for _, mv := range moves {
		if out := f.orch.MoveTask(ctx, all[mv.idx].ID, mv.dest); !out.OK() {
			t.Fatalf("move of %q failed: %s", all[mv.idx].Title, out.Message)
		}
	}

	checkColumnsContiguous(t, f.orch.Container().Tasks(), len(all))
}

func TestMoveTaskStoreFailureRestoresSnapshot(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	base := time.Now()

	first := boardTask("first", models.TaskStatusTodo, base)
	second := boardTask("second", models.TaskStatusInProgress, base.Add(time.Minute))
	f.orch.Container().AppendTask(first)
	f.orch.Container().AppendTask(second)
	before := f.orch.Container().Tasks()

	f.tasks.updateFunc = func(ctx context.Context, userID, taskID uuid.UUID, patch store.TaskPatch) error {
		return errors.New("write failed")
	}

	out := f.orch.MoveTask(ctx, first.ID, models.TaskStatusDone)
	if out.Severity != SeverityError {
		t.Fatalf("expected error, got %s", out.Severity)
	}

	after := f.orch.Container().Tasks()
	if len(after) != len(before) {
		t.Fatalf("task count changed: %d != %d", len(after), len(before))
	}
	for i := range before {
		if after[i].ID != before[i].ID || after[i].Status != before[i].Status {
			t.Errorf("position %d not restored: got %q/%s, want %q/%s",
				i, after[i].Title, after[i].Status, before[i].Title, before[i].Status)
		}
	}
}

func TestMoveTaskRejectsUnknownColumn(t *testing.T) {
	f := newFixture(false)
	task := boardTask("stray", models.TaskStatusTodo, time.Now())
	f.orch.Container().AppendTask(task)

	out := f.orch.MoveTask(context.Background(), task.ID, models.TaskStatus("archived"))
	if out.Severity != SeverityError {
		t.Fatalf("expected error, got %s", out.Severity)
	}
	if len(f.tasks.updates) != 0 {
		t.Error("no store call expected for an invalid column")
	}
}
