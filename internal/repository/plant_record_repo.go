package repository

import (
	"context"
	"errors"

	"github.com/user/phytochem-crawler/internal/entity"
)

// ErrNotFound is returned by lookups that find nothing.
var ErrNotFound = errors.New("not found")

// RecordSink receives finished plant records.
type RecordSink interface {
	// Save stores the record. Saving a plant again replaces the earlier record.
	Save(ctx context.Context, record *entity.PlantRecord) error
}

// PlantRecordRepository defines the interface for storing and retrieving plant records.
type PlantRecordRepository interface {
	RecordSink
	// FindByName retrieves the record of a plant, or ErrNotFound.
	FindByName(ctx context.Context, plantName string) (*entity.PlantRecord, error)
}
