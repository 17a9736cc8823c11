package jobs

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Task is one unit of independent work executed by the pool.
type Task struct {
	ID  string
	Run func(context.Context) error
}

// Result pairs a task with its outcome.
type Result struct {
	ID  string
	Err error
}

// Pool executes batches of independent tasks with bounded concurrency and
// gathers per-task outcomes. Unlike a background queue it blocks until the
// whole batch has completed, which lets callers report partial failures
// synchronously.
type Pool struct {
	workers int
	logger  *zap.Logger
}

// NewPool builds a pool with the given worker count.
func NewPool(workers int, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{workers: workers, logger: logger}
}

// Run executes all tasks and returns results in task order.
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	results := make([]Result, len(tasks))
	if len(tasks) == 0 {
		return results
	}

	workers := p.workers
	if workers > len(tasks) {
		workers = len(tasks)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				task := tasks[i]
				if err := ctx.Err(); err != nil {
					results[i] = Result{ID: task.ID, Err: err}
					continue
				}
				err := task.Run(ctx)
				if err != nil {
					p.logger.Warn("pool task failed", zap.String("task_id", task.ID), zap.Error(err))
				}
				results[i] = Result{ID: task.ID, Err: err}
			}
		}()
	}

	for i := range tasks {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results
}
