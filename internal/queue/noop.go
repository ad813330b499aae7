package queue

import "context"

// NoOpQueue discards enqueued tasks. Used when no broker is configured so
// the server can run standalone; its Worker blocks until cancellation.
type NoOpQueue struct{}

// NewNoOpQueue creates a new no-op queue instance
func NewNoOpQueue() *NoOpQueue {
	return &NoOpQueue{}
}

// Enqueue discards the task and always succeeds
func (q *NoOpQueue) Enqueue(ctx context.Context, task Task) error {
	return nil
}

// Worker blocks until the context is cancelled; no tasks ever arrive
func (q *NoOpQueue) Worker(ctx context.Context, taskType TaskType, handler Handler) error {
	<-ctx.Done()
	return ctx.Err()
}
