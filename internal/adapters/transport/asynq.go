package transport

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"
	"go.trai.ch/taskspec/internal/core/domain"
	"go.trai.ch/taskspec/internal/core/ports"
	"go.trai.ch/zerr"
)

// TaskType is the asynq task type carrying a framed spec.
const TaskType = "taskspec:spec"

// enqueuer is the subset of *asynq.Client used for publishing.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// AsynqPublisher implements ports.Publisher on a Redis-backed asynq queue.
type AsynqPublisher struct {
	client enqueuer
	queue  string
}

var _ ports.Publisher = (*AsynqPublisher)(nil)

// NewAsynqPublisher connects to Redis at addr and publishes on the named queue.
func NewAsynqPublisher(addr, queue string) *AsynqPublisher {
	return newAsynqPublisher(asynq.NewClient(asynq.RedisClientOpt{Addr: addr}), queue)
}

func newAsynqPublisher(client enqueuer, queue string) *AsynqPublisher {
	return &AsynqPublisher{client: client, queue: queue}
}

// Publish enqueues the framed spec. The task id doubles as the queue task id,
// so publishing a spec that is still queued is a no-op.
func (p *AsynqPublisher) Publish(ctx context.Context, spec *domain.Spec) error {
	task := asynq.NewTask(TaskType, Frame(spec))

	_, err := p.client.EnqueueContext(ctx, task,
		asynq.Queue(p.queue),
		asynq.TaskID(spec.TaskID().String()),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "failed to publish task spec"),
			"task_id", spec.TaskID().String()), "queue", p.queue)
	}
	return nil
}

// Close releases the Redis connection.
func (p *AsynqPublisher) Close() error {
	return p.client.Close()
}

// NewHandler adapts a spec consumer into an asynq handler. The spec passed to
// fn aliases the task payload and must not be retained after fn returns.
func NewHandler(fn func(ctx context.Context, spec *domain.Spec) error) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		spec, err := Unframe(t.Payload())
		if err != nil {
			// Corrupt payloads never succeed on retry.
			return errors.Join(err, asynq.SkipRetry)
		}
		return fn(ctx, spec)
	}
}
