package queue

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type fakePurger struct {
	calls     atomic.Int32
	retention time.Duration
	n         int
	err       error
}

func (f *fakePurger) PurgeOlderThan(_ context.Context, retention time.Duration) (int, error) {
	f.calls.Add(1)
	f.retention = retention
	return f.n, f.err
}

func TestGarbageCollector_Collect(t *testing.T) {
	t.Parallel()

	t.Run("nil purger is a no-op", func(t *testing.T) {
		t.Parallel()
		gc := NewGarbageCollector(nil, time.Minute, 24*time.Hour, nil)
		if err := gc.collect(context.Background()); err != nil {
			t.Errorf("collect() = %v, want nil", err)
		}
	})

	t.Run("passes retention through to the purger", func(t *testing.T) {
		t.Parallel()
		purger := &fakePurger{n: 3}
		gc := NewGarbageCollector(purger, time.Minute, 24*time.Hour, nil)
		if err := gc.collect(context.Background()); err != nil {
			t.Errorf("collect() = %v, want nil", err)
		}
		if got := purger.calls.Load(); got != 1 {
			t.Errorf("purger called %d times, want 1", got)
		}
		if purger.retention != 24*time.Hour {
			t.Errorf("retention = %v, want 24h", purger.retention)
		}
	})

	t.Run("wraps purger errors", func(t *testing.T) {
		t.Parallel()
		purger := &fakePurger{err: errors.New("broker gone")}
		gc := NewGarbageCollector(purger, time.Minute, time.Hour, nil)
		if err := gc.collect(context.Background()); err == nil {
			t.Error("collect() = nil, want error")
		}
	})
}

func TestGarbageCollector_Start_StopsOnCancel(t *testing.T) {
	t.Parallel()

	gc := NewGarbageCollector(&fakePurger{}, 24*time.Hour, time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := gc.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Start() = %v, want context.Canceled", err)
	}
}
