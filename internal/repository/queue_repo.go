package repository

import (
	"context"
	"errors"
)

// ErrQueueEmpty is returned by Pop when there is nothing to take.
var ErrQueueEmpty = errors.New("queue is empty")

// QueueRepository defines the interface for a FIFO queue of plant names to be scraped.
type QueueRepository interface {
	// Push adds a plant name to the end of the queue.
	Push(ctx context.Context, plantName string) error
	// Pop removes and returns the plant name at the front of the queue, or ErrQueueEmpty.
	Pop(ctx context.Context) (string, error)
	// Contains reports whether a plant name is waiting in the queue.
	Contains(ctx context.Context, plantName string) (bool, error)
	// Size returns the current number of items in the queue.
	Size(ctx context.Context) (int64, error)
}
