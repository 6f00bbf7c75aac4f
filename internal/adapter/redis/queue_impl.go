package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/user/phytochem-crawler/internal/repository"
)

const scrapeQueueKey = "phytocrawl:queue"

// QueueRepoImpl provides a concrete implementation for the QueueRepository interface using Redis Lists.
type QueueRepoImpl struct {
	client redis.Cmdable
	key    string
}

// NewQueueRepo creates a new instance of QueueRepoImpl.
func NewQueueRepo(client redis.Cmdable) *QueueRepoImpl {
	return &QueueRepoImpl{client: client, key: scrapeQueueKey}
}

// Push adds a plant name to the left side of the list.
func (r *QueueRepoImpl) Push(ctx context.Context, plantName string) error {
	return r.client.LPush(ctx, r.key, plantName).Err()
}

// Pop removes and returns the oldest plant name from the right side of the list.
func (r *QueueRepoImpl) Pop(ctx context.Context) (string, error) {
	name, err := r.client.RPop(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", repository.ErrQueueEmpty
	}
	return name, err
}

// Contains reports whether plantName is waiting in the queue.
func (r *QueueRepoImpl) Contains(ctx context.Context, plantName string) (bool, error) {
	_, err := r.client.LPos(ctx, r.key, plantName, redis.LPosArgs{}).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Size returns the current number of items in the queue.
func (r *QueueRepoImpl) Size(ctx context.Context) (int64, error) {
	return r.client.LLen(ctx, r.key).Result()
}
