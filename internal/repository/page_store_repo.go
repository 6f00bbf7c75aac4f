package repository

import (
	"context"

	"github.com/user/phytochem-crawler/internal/entity"
)

// PageStore keeps the raw HTML of downloaded pages.
type PageStore interface {
	// Save writes html under the plant's page directory as fileName and
	// returns the path written.
	Save(ctx context.Context, plantName, fileName, html string) (string, error)
}

// PlantListRepository reads and writes the list of known plants.
type PlantListRepository interface {
	Load(ctx context.Context) ([]entity.PlantOption, error)
	Store(ctx context.Context, options []entity.PlantOption) error
}
