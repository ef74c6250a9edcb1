package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

// mockRenderer simulates frame rendering for testing
type mockRenderer struct {
	delay     time.Duration
	failTasks map[int]bool // task indices that should fail
	callCount atomic.Int32
}

func (m *mockRenderer) Render(ctx context.Context, task Task) (string, error) {
	m.callCount.Add(1)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(m.delay):
	}

	if m.failTasks != nil && m.failTasks[task.Index] {
		return "", errors.New("simulated failure")
	}

	return fmt.Sprintf("frame_%02d", task.Index), nil
}

func TestPool_BasicExecution(t *testing.T) {
	r := &mockRenderer{delay: 10 * time.Millisecond}

	pool := New(Config[string]{
		Workers:  2,
		Renderer: r,
	})

	tasks := Tasks(3)
	results := pool.Run(context.Background(), tasks)

	if len(results) != len(tasks) {
		t.Errorf("Expected %d results, got %d", len(tasks), len(results))
	}

	for i, res := range results {
		if res.Err != nil {
			t.Errorf("Unexpected error for task %d: %v", res.Task.Index, res.Err)
		}
		if res.Task.Index != i {
			t.Errorf("Expected results ordered by index, got %d at %d", res.Task.Index, i)
		}
		if want := fmt.Sprintf("frame_%02d", i); res.Output != want {
			t.Errorf("Expected output %s, got %s", want, res.Output)
		}
	}

	if r.callCount.Load() != int32(len(tasks)) {
		t.Errorf("Expected %d render calls, got %d", len(tasks), r.callCount.Load())
	}
}

func TestPool_Parallelism(t *testing.T) {
	// Use a longer delay to ensure parallelism is tested
	r := &mockRenderer{delay: 50 * time.Millisecond}

	pool := New(Config[string]{
		Workers:  4,
		Renderer: r,
	})

	tasks := Tasks(8)

	start := time.Now()
	results := pool.Run(context.Background(), tasks)
	elapsed := time.Since(start)

	// With 4 workers and 8 tasks at 50ms each, should take ~100ms (2 batches)
	maxExpected := 200 * time.Millisecond
	if elapsed > maxExpected {
		t.Errorf("Expected parallel execution in ~100ms, took %v", elapsed)
	}

	if len(results) != len(tasks) {
		t.Errorf("Expected %d results, got %d", len(tasks), len(results))
	}

	t.Logf("Processed %d tasks with %d workers in %v", len(tasks), 4, elapsed)
}

func TestPool_ErrorHandling(t *testing.T) {
	r := &mockRenderer{
		delay:     10 * time.Millisecond,
		failTasks: map[int]bool{1: true},
	}

	pool := New(Config[string]{
		Workers:  2,
		Renderer: r,
	})

	results := pool.Run(context.Background(), Tasks(3))

	if len(results) != 3 {
		t.Errorf("Expected 3 results, got %d", len(results))
	}

	var successCount, failCount int
	for _, res := range results {
		if res.Err != nil {
			failCount++
			if res.Task.Index != 1 {
				t.Errorf("Unexpected failure for task %d", res.Task.Index)
			}
		} else {
			successCount++
		}
	}

	if successCount != 2 {
		t.Errorf("Expected 2 successes, got %d", successCount)
	}
	if failCount != 1 {
		t.Errorf("Expected 1 failure, got %d", failCount)
	}
	if err := FirstError(results); err == nil || err.Error() != "simulated failure" {
		t.Errorf("Expected FirstError to report the simulated failure, got %v", err)
	}
}

func TestPool_Cancellation(t *testing.T) {
	r := &mockRenderer{delay: 100 * time.Millisecond}

	pool := New(Config[string]{
		Workers:  2,
		Renderer: r,
	})

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	results := pool.Run(ctx, Tasks(10))
	elapsed := time.Since(start)

	if elapsed > 200*time.Millisecond {
		t.Errorf("Expected early cancellation, took %v", elapsed)
	}

	if len(results) != 10 {
		t.Errorf("Expected a result for every task, got %d", len(results))
	}

	var cancelledCount int
	for _, res := range results {
		if res.Err != nil && errors.Is(res.Err, context.Canceled) {
			cancelledCount++
		}
	}
	if cancelledCount == 0 {
		t.Error("Expected cancelled results")
	}

	t.Logf("Completed with %d results (%d cancelled) in %v", len(results), cancelledCount, elapsed)
}

func TestPool_ProgressCallback(t *testing.T) {
	r := &mockRenderer{delay: 10 * time.Millisecond}

	var progressCalls atomic.Int32
	var lastCompleted, lastTotal int

	pool := New(Config[string]{
		Workers:  2,
		Renderer: r,
		OnProgress: func(completed, total, failed int) {
			progressCalls.Add(1)
			lastCompleted = completed
			lastTotal = total
		},
	})

	tasks := Tasks(3)
	pool.Run(context.Background(), tasks)

	if progressCalls.Load() == 0 {
		t.Error("Expected progress callbacks, got none")
	}

	if lastCompleted != len(tasks) {
		t.Errorf("Expected lastCompleted=%d, got %d", len(tasks), lastCompleted)
	}
	if lastTotal != len(tasks) {
		t.Errorf("Expected lastTotal=%d, got %d", len(tasks), lastTotal)
	}
}

func TestPool_EmptyTasks(t *testing.T) {
	r := &mockRenderer{}

	pool := New(Config[string]{
		Workers:  2,
		Renderer: r,
	})

	results := pool.Run(context.Background(), nil)

	if len(results) != 0 {
		t.Errorf("Expected 0 results for empty tasks, got %d", len(results))
	}

	if r.callCount.Load() != 0 {
		t.Errorf("Expected 0 render calls for empty tasks, got %d", r.callCount.Load())
	}
}

func TestPool_RenderFunc(t *testing.T) {
	pool := New(Config[int]{
		Workers: 3,
		Renderer: RenderFunc[int](func(_ context.Context, task Task) (int, error) {
			return task.Index * task.Total, nil
		}),
	})

	results := pool.Run(context.Background(), Tasks(4))
	for i, res := range results {
		if res.Output != i*4 {
			t.Errorf("Expected output %d for task %d, got %d", i*4, i, res.Output)
		}
	}
}

func TestPool_DefaultWorkers(t *testing.T) {
	pool := New(Config[string]{Renderer: &mockRenderer{}})
	if pool.workers != 1 {
		t.Errorf("Expected 1 worker for zero config, got %d", pool.workers)
	}
}
