// Package worker renders independent frames or slices on a bounded pool of
// goroutines.
package worker

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Renderer produces the output of one task.
type Renderer[T any] interface {
	Render(ctx context.Context, task Task) (T, error)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc[T any] func(ctx context.Context, task Task) (T, error)

func (f RenderFunc[T]) Render(ctx context.Context, task Task) (T, error) { return f(ctx, task) }

// Task identifies one unit of work, a flipbook frame or a volume slice.
type Task struct {
	Index int
	Total int
}

// Result represents the outcome of a task.
type Result[T any] struct {
	Task    Task
	Output  T
	Err     error
	Elapsed time.Duration
}

// ProgressFunc is called after each task completes.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config[T any] struct {
	Workers    int
	Renderer   Renderer[T]
	OnProgress ProgressFunc
}

// Pool manages parallel rendering.
type Pool[T any] struct {
	workers    int
	renderer   Renderer[T]
	onProgress ProgressFunc
}

// New creates a new worker pool.
func New[T any](cfg Config[T]) *Pool[T] {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pool[T]{
		workers:    workers,
		renderer:   cfg.Renderer,
		onProgress: cfg.OnProgress,
	}
}

// Tasks returns n tasks indexed 0..n-1.
func Tasks(n int) []Task {
	tasks := make([]Task, n)
	for i := range tasks {
		tasks[i] = Task{Index: i, Total: n}
	}
	return tasks
}

// Run executes all tasks and returns their results ordered by Task.Index.
// It blocks until all tasks complete or the context is cancelled; tasks not
// started before cancellation carry ctx.Err().
func (p *Pool[T]) Run(ctx context.Context, tasks []Task) []Result[T] {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan Task, len(tasks))
	resultCh := make(chan Result[T], len(tasks))

	var (
		completed int
		failed    int
		mu        sync.Mutex
	)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, taskCh, resultCh)
		}()
	}

	for _, task := range tasks {
		taskCh <- task
	}
	close(taskCh)

	results := make([]Result[T], 0, len(tasks))
	done := make(chan struct{})

	go func() {
		for result := range resultCh {
			results = append(results, result)

			mu.Lock()
			completed++
			if result.Err != nil {
				failed++
			}
			c, f := completed, failed
			mu.Unlock()

			if p.onProgress != nil {
				p.onProgress(c, len(tasks), f)
			}
		}
		close(done)
	}()

	wg.Wait()
	close(resultCh)
	<-done

	sort.Slice(results, func(i, j int) bool { return results[i].Task.Index < results[j].Task.Index })
	return results
}

func (p *Pool[T]) worker(ctx context.Context, tasks <-chan Task, results chan<- Result[T]) {
	for task := range tasks {
		select {
		case <-ctx.Done():
			results <- Result[T]{
				Task: task,
				Err:  ctx.Err(),
			}
			continue
		default:
		}

		start := time.Now()
		out, err := p.renderer.Render(ctx, task)
		elapsed := time.Since(start)

		results <- Result[T]{
			Task:    task,
			Output:  out,
			Err:     err,
			Elapsed: elapsed,
		}
	}
}

// FirstError returns the first failed result's error in index order.
func FirstError[T any](results []Result[T]) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
