package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/user/phytochem-crawler/internal/repository"
	"github.com/user/phytochem-crawler/pkg/metrics"
)

// PlantRunner scrapes named plants. *Pipeline implements it.
type PlantRunner interface {
	Run(ctx context.Context, names []string, force bool) (Summary, error)
}

// Worker drains the scrape queue one plant at a time.
type Worker struct {
	queueRepo repository.QueueRepository
	runner    PlantRunner
	interval  time.Duration
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewWorker creates a Worker polling the queue every interval.
func NewWorker(queueRepo repository.QueueRepository, runner PlantRunner, interval time.Duration, m *metrics.Metrics, logger *zap.Logger) *Worker {
	return &Worker{
		queueRepo: queueRepo,
		runner:    runner,
		interval:  interval,
		metrics:   m,
		logger:    logger,
	}
}

// Run processes queued plants until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("worker started", zap.Duration("interval", w.interval))
	for {
		// Drain everything queued before waiting for the next tick.
		for {
			processed, err := w.ProcessNext(ctx)
			if err != nil {
				w.logger.Error("worker step failed", zap.Error(err))
			}
			if !processed || ctx.Err() != nil {
				break
			}
		}

		select {
		case <-ctx.Done():
			w.logger.Info("worker stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// ProcessNext pops one plant and scrapes it. It reports whether a plant
// was taken from the queue.
func (w *Worker) ProcessNext(ctx context.Context) (bool, error) {
	w.updateDepth(ctx)

	plantName, err := w.queueRepo.Pop(ctx)
	if errors.Is(err, repository.ErrQueueEmpty) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to pop plant from queue: %w", err)
	}

	w.logger.Info("processing plant from queue", zap.String("plant", plantName))
	// The dedup check already happened on submit.
	summary, err := w.runner.Run(ctx, []string{plantName}, true)
	if err != nil {
		return true, fmt.Errorf("scrape %q: %w", plantName, err)
	}
	w.logger.Info("queued plant finished",
		zap.String("plant", plantName),
		zap.Int("processed", summary.Processed),
		zap.Int("failed", summary.Failed),
	)
	w.updateDepth(ctx)
	return true, nil
}

func (w *Worker) updateDepth(ctx context.Context) {
	if w.metrics == nil {
		return
	}
	size, err := w.queueRepo.Size(ctx)
	if err != nil {
		w.logger.Debug("failed to read queue size", zap.Error(err))
		return
	}
	w.metrics.QueueDepth.Set(float64(size))
}
