package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"swasthya-admin/internal/domain"
)

// PushQueue hands fan-out jobs to the external delivery worker. Enqueue is
// fire-and-forget: once the job is on the queue, delivery and retries are
// the worker's problem.
type PushQueue interface {
	Enqueue(ctx context.Context, job *domain.PushJob) error
}

type redisPushQueue struct {
	client *redis.Client
	key    string
}

func NewRedisPushQueue(client *redis.Client, key string) PushQueue {
	return &redisPushQueue{client: client, key: key}
}

func (q *redisPushQueue) Enqueue(ctx context.Context, job *domain.PushJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode push job: %w", err)
	}

	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	return nil
}
