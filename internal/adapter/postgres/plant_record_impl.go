package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/user/phytochem-crawler/internal/entity"
	"github.com/user/phytochem-crawler/internal/repository"
)

// PlantRecordRepoImpl stores plant records as JSONB documents.
type PlantRecordRepoImpl struct {
	db DB
}

// NewPlantRecordRepo creates a new instance of PlantRecordRepoImpl.
func NewPlantRecordRepo(db DB) *PlantRecordRepoImpl {
	return &PlantRecordRepoImpl{db: db}
}

// Save stores or replaces the record of a plant.
func (r *PlantRecordRepoImpl) Save(ctx context.Context, record *entity.PlantRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal plant record: %w", err)
	}
	scrapedAt := record.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO plant_records (plant_name, data, phytochemical_count, scraped_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (plant_name) DO UPDATE SET
			data = EXCLUDED.data,
			phytochemical_count = EXCLUDED.phytochemical_count,
			scraped_at = EXCLUDED.scraped_at;
	`
	_, err = r.db.Exec(ctx, query,
		record.PlantName,
		data,
		len(record.PhytochemicalIDs()),
		scrapedAt,
	)
	if err != nil {
		return fmt.Errorf("save plant record %q: %w", record.PlantName, err)
	}
	return nil
}

// FindByName retrieves the stored record of a plant.
func (r *PlantRecordRepoImpl) FindByName(ctx context.Context, plantName string) (*entity.PlantRecord, error) {
	query := `SELECT data, scraped_at FROM plant_records WHERE plant_name = $1;`

	var (
		data      []byte
		scrapedAt time.Time
	)
	err := r.db.QueryRow(ctx, query, plantName).Scan(&data, &scrapedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find plant record %q: %w", plantName, err)
	}

	var record entity.PlantRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode plant record %q: %w", plantName, err)
	}
	record.ScrapedAt = scrapedAt
	return &record, nil
}
