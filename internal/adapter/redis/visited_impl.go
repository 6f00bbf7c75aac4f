package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/phytochem-crawler/pkg/utils"
)

const visitedPlantPrefix = "phytocrawl:visited:"

// VisitedRepoImpl provides a concrete implementation for the VisitedRepository interface using Redis.
type VisitedRepoImpl struct {
	client redis.Cmdable
}

// NewVisitedRepo creates a new instance of VisitedRepoImpl.
func NewVisitedRepo(client redis.Cmdable) *VisitedRepoImpl {
	return &VisitedRepoImpl{client: client}
}

func (r *VisitedRepoImpl) key(plantName string) string {
	return fmt.Sprintf("%s%s", visitedPlantPrefix, utils.HashKey(plantName))
}

// MarkVisited records that plantName was scraped; the mark expires after expiry.
func (r *VisitedRepoImpl) MarkVisited(ctx context.Context, plantName string, expiry time.Duration) error {
	return r.client.SetEx(ctx, r.key(plantName), "1", expiry).Err()
}

// IsVisited reports whether plantName was scraped within its expiry window.
func (r *VisitedRepoImpl) IsVisited(ctx context.Context, plantName string) (bool, error) {
	val, err := r.client.Exists(ctx, r.key(plantName)).Result()
	if err != nil {
		return false, err
	}
	return val == 1, nil
}

// RemoveVisited clears the mark, used for forced scrapes.
func (r *VisitedRepoImpl) RemoveVisited(ctx context.Context, plantName string) error {
	return r.client.Del(ctx, r.key(plantName)).Err()
}
