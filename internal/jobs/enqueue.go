package jobs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// DefaultMaxRetry covers a long upstream rate-limit window
const DefaultMaxRetry = 10

// Enqueuer submits background tasks to Redis
type Enqueuer struct {
	client   *asynq.Client
	maxRetry int
}

func NewEnqueuer(redisAddr string) *Enqueuer {
	return &Enqueuer{
		client:   asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
		maxRetry: DefaultMaxRetry,
	}
}

// EnqueueResolveName schedules the lookup of a favorite's name and returns the task id
func (e *Enqueuer) EnqueueResolveName(ctx context.Context, id int) (string, error) {
	task, err := NewResolveFavoriteNameTask(id)
	if err != nil {
		return "", err
	}
	info, err := e.client.EnqueueContext(ctx, task,
		asynq.TaskID(uuid.NewString()),
		asynq.Queue(QueueFavorites),
		asynq.MaxRetry(e.maxRetry),
	)
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", TaskResolveFavoriteName, err)
	}
	return info.ID, nil
}

func (e *Enqueuer) Close() error {
	return e.client.Close()
}
