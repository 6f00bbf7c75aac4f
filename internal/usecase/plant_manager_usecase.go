package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/phytochem-crawler/internal/entity"
	"github.com/user/phytochem-crawler/internal/repository"
)

var (
	ErrPlantRecentlyScraped = errors.New("plant has been scraped recently and force is false")
	ErrUnknownPlant         = errors.New("plant is not in the plant list")
)

// PlantManager defines the interface for submitting plants and checking on them.
type PlantManager interface {
	Submit(ctx context.Context, plantName string, force bool) (string, error)
	GetStatus(ctx context.Context, plantName string) (*entity.ScrapeStatus, error)
	GetRecord(ctx context.Context, plantName string) (*entity.PlantRecord, error)
}

type plantManagerUseCase struct {
	plants      repository.PlantListRepository
	visitedRepo repository.VisitedRepository
	queueRepo   repository.QueueRepository
	recordRepo  repository.PlantRecordRepository
	logger      *zap.Logger
}

// NewPlantManager creates a new PlantManager use case. Names are resolved
// against plants, so every spelling of a plant shares one visited mark, one
// queue entry and one record.
func NewPlantManager(
	plants repository.PlantListRepository,
	visitedRepo repository.VisitedRepository,
	queueRepo repository.QueueRepository,
	recordRepo repository.PlantRecordRepository,
	logger *zap.Logger,
) PlantManager {
	return &plantManagerUseCase{
		plants:      plants,
		visitedRepo: visitedRepo,
		queueRepo:   queueRepo,
		recordRepo:  recordRepo,
		logger:      logger,
	}
}

// resolve maps a user supplied name to the plant list spelling, matching
// case-insensitively the way the pipeline does.
func (uc *plantManagerUseCase) resolve(ctx context.Context, plantName string) (string, error) {
	all, err := uc.plants.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load plant list: %w", err)
	}
	matched := entity.FilterPlants(all, []string{plantName})
	if len(matched) == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlant, strings.TrimSpace(plantName))
	}
	return matched[0].Name, nil
}

// Submit queues a plant for scraping and returns a submission id. Names not
// in the plant list are rejected with ErrUnknownPlant.
func (uc *plantManagerUseCase) Submit(ctx context.Context, plantName string, force bool) (string, error) {
	plantName, err := uc.resolve(ctx, plantName)
	if err != nil {
		return "", err
	}
	submissionID := uuid.NewString()

	if force {
		if err := uc.visitedRepo.RemoveVisited(ctx, plantName); err != nil {
			uc.logger.Warn("failed to clear visited mark for forced scrape", zap.String("plant", plantName), zap.Error(err))
		}
	} else {
		isVisited, err := uc.visitedRepo.IsVisited(ctx, plantName)
		if err != nil {
			return "", err
		}
		if isVisited {
			return submissionID, ErrPlantRecentlyScraped
		}
	}

	if err := uc.queueRepo.Push(ctx, plantName); err != nil {
		return "", err
	}
	uc.logger.Info("plant queued", zap.String("plant", plantName), zap.String("submission_id", submissionID))
	return submissionID, nil
}

// GetStatus reports completed when a record is stored, pending when the
// plant is queued or was scraped without a stored record, and not_found
// otherwise, including for plants missing from the plant list.
func (uc *plantManagerUseCase) GetStatus(ctx context.Context, plantName string) (*entity.ScrapeStatus, error) {
	canonical, err := uc.resolve(ctx, plantName)
	if errors.Is(err, ErrUnknownPlant) {
		return &entity.ScrapeStatus{PlantName: strings.TrimSpace(plantName), CurrentStatus: entity.StatusNotFound}, nil
	}
	if err != nil {
		return nil, err
	}
	plantName = canonical

	record, err := uc.recordRepo.FindByName(ctx, plantName)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		uc.logger.Error("error finding plant record", zap.String("plant", plantName), zap.Error(err))
	}
	if record != nil {
		var scrapedAt *time.Time
		if !record.ScrapedAt.IsZero() {
			t := record.ScrapedAt
			scrapedAt = &t
		}
		return &entity.ScrapeStatus{
			PlantName:           plantName,
			CurrentStatus:       entity.StatusCompleted,
			LastScrapeTimestamp: scrapedAt,
			PhytochemicalCount:  len(record.PhytochemicalIDs()),
		}, nil
	}

	queued, err := uc.queueRepo.Contains(ctx, plantName)
	if err != nil {
		return nil, err
	}
	visited := false
	if !queued {
		if visited, err = uc.visitedRepo.IsVisited(ctx, plantName); err != nil {
			return nil, err
		}
	}
	if queued || visited {
		return &entity.ScrapeStatus{PlantName: plantName, CurrentStatus: entity.StatusPending}, nil
	}

	return &entity.ScrapeStatus{PlantName: plantName, CurrentStatus: entity.StatusNotFound}, nil
}

// GetRecord returns the stored record of a plant, or repository.ErrNotFound.
func (uc *plantManagerUseCase) GetRecord(ctx context.Context, plantName string) (*entity.PlantRecord, error) {
	canonical, err := uc.resolve(ctx, plantName)
	if errors.Is(err, ErrUnknownPlant) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return uc.recordRepo.FindByName(ctx, canonical)
}
