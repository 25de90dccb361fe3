package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"neighbourcam/internal/domain"
	"neighbourcam/pkg/e"

	"github.com/redis/go-redis/v9"
)

// NotificationQueue buffers per-owner notifications between request creation
// and the delivery worker. Enqueue failures are the caller's to log, never to
// propagate: the request record is the source of truth.
type NotificationQueue struct {
	client *redis.Client
	key    string
}

func NewNotificationQueue(client *redis.Client, key string) *NotificationQueue {
	return &NotificationQueue{client: client, key: key}
}

func (q *NotificationQueue) Enqueue(ctx context.Context, n domain.OwnerNotification) error {
	b, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, b).Err()
}

func (q *NotificationQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.OwnerNotification, error) {
	var n domain.OwnerNotification

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return n, e.ErrQueueEmpty
		}
		return n, err
	}
	if len(res) < 2 {
		return n, redis.Nil
	}
	if err := json.Unmarshal([]byte(res[1]), &n); err != nil {
		return n, err
	}
	return n, nil
}
