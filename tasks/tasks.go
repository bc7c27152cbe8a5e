// Package tasks runs deferred work, such as refreshing the featured speaker
// after a session is created, off the request path. Tasks are kept in a
// Redis list and consumed by a Worker.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	QueueKey = "conference:tasks"

	SetFeaturedSpeaker    = "set_speaker"
	SendConfirmationEmail = "send_confirmation_email"

	MaxAttempts = 3
)

type Task struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Params     map[string]string `json:"params"`
	Attempts   int               `json:"attempts"`
	EnqueuedAt time.Time         `json:"enqueued_at"`
}

// Enqueuer is what request handlers need to defer work.
type Enqueuer interface {
	Enqueue(ctx context.Context, name string, params map[string]string) error
}

type Queue struct {
	client redis.Cmdable
	key    string
}

func NewQueue(client redis.Cmdable) *Queue {
	return &Queue{client: client, key: QueueKey}
}

func (q *Queue) Enqueue(ctx context.Context, name string, params map[string]string) error {
	return q.push(ctx, &Task{
		ID:         uuid.New().String(),
		Name:       name,
		Params:     params,
		EnqueuedAt: time.Now().UTC(),
	})
}

func (q *Queue) push(ctx context.Context, task *Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue task %s: %w", task.Name, err)
	}
	return nil
}

// Dequeue waits up to timeout for the oldest task. It returns nil, nil when
// the queue stayed empty.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*Task, error) {
	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to dequeue task: %w", err)
	}

	var task Task
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task: %w", err)
	}
	return &task, nil
}

func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}

type HandlerFunc func(ctx context.Context, params map[string]string) error

type Worker struct {
	queue       *Queue
	handlers    map[string]HandlerFunc
	pollTimeout time.Duration
	logger      *slog.Logger
}

func NewWorker(queue *Queue, pollTimeout time.Duration, logger *slog.Logger) *Worker {
	return &Worker{
		queue:       queue,
		handlers:    map[string]HandlerFunc{},
		pollTimeout: pollTimeout,
		logger:      logger,
	}
}

func (w *Worker) Handle(name string, fn HandlerFunc) {
	w.handlers[name] = fn
}

// ProcessOne runs at most one task. A failing task is pushed back until it
// has been tried MaxAttempts times.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	task, err := w.queue.Dequeue(ctx, w.pollTimeout)
	if err != nil || task == nil {
		return false, err
	}

	handler, ok := w.handlers[task.Name]
	if !ok {
		w.logger.Warn("dropping task with no handler", "task", task.Name, "id", task.ID)
		return true, nil
	}

	task.Attempts++
	if err := handler(ctx, task.Params); err != nil {
		if task.Attempts >= MaxAttempts {
			w.logger.Error("task failed, giving up", "task", task.Name, "id", task.ID, "attempts", task.Attempts, "error", err)
			return true, nil
		}
		w.logger.Warn("task failed, requeueing", "task", task.Name, "id", task.ID, "attempts", task.Attempts, "error", err)
		return true, w.queue.push(ctx, task)
	}

	w.logger.Debug("task done", "task", task.Name, "id", task.ID)
	return true, nil
}

// Run consumes tasks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("task worker started")
	for {
		if ctx.Err() != nil {
			w.logger.Info("task worker stopped")
			return
		}
		if _, err := w.ProcessOne(ctx); err != nil {
			if ctx.Err() != nil {
				continue
			}
			w.logger.Error("task worker", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
		}
	}
}
