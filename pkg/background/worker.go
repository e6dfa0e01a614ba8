package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"lionhearts/pkg/logger"
)

// Task is a unit of periodic work.
type Task interface {
	Interval() time.Duration
	Do(context.Context) error
	Name() string
}

type workerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}

type Worker struct {
	log   workerLogger
	tasks []Task
	wg    sync.WaitGroup
}

// Start runs every task once synchronously and fails if any of them fails or
// panics. On success each task is then rescheduled on its own ticker until ctx
// is cancelled.
func Start(ctx context.Context, log workerLogger, tasks ...Task) (*Worker, error) {
	w := &Worker{
		log:   log,
		tasks: tasks,
	}

	warmup, warmupCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		warmup.Go(func() error {
			log.Info("warming up background task", logger.NewField("task", task.Name()))
			return w.safeDo(warmupCtx, task)
		})
	}
	if err := warmup.Wait(); err != nil {
		return nil, fmt.Errorf("warm up tasks: %w", err)
	}

	for _, task := range tasks {
		interval := task.Interval()
		if interval <= 0 {
			log.Warn("non-positive interval, periodic run disabled",
				logger.NewField("task", task.Name()),
				logger.NewField("interval", interval),
			)
			continue
		}

		w.wg.Add(1)
		go w.loop(ctx, task, interval)
	}

	return w, nil
}

// Wait blocks until every periodic loop has returned.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) loop(ctx context.Context, task Task, interval time.Duration) {
	defer w.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("background task stopped", logger.NewField("task", task.Name()))
			return
		case <-ticker.C:
			if err := w.safeDo(ctx, task); err != nil {
				w.log.Error("background task failed",
					logger.NewField("task", task.Name()),
					logger.NewField("error", err),
				)
			}
		}
	}
}

func (w *Worker) safeDo(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %s panicked: %v", task.Name(), r)
			w.log.Error("background task panic",
				logger.NewField("task", task.Name()),
				logger.NewField("recover", r),
				logger.NewField("stack", string(debug.Stack())),
			)
		}
	}()

	return task.Do(ctx)
}
