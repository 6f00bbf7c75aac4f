package repository

import (
	"context"
	"time"
)

// VisitedRepository defines the interface for deduplication of scraped plants.
type VisitedRepository interface {
	// MarkVisited marks a plant as scraped with a specific expiry time.
	MarkVisited(ctx context.Context, plantName string, expiry time.Duration) error
	// IsVisited checks if a plant has been scraped recently.
	IsVisited(ctx context.Context, plantName string) (bool, error)
	// RemoveVisited removes a plant from the visited set, used for forced scrapes.
	RemoveVisited(ctx context.Context, plantName string) error
}
