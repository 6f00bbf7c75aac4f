package repository

import (
	"context"

	"github.com/user/phytochem-crawler/internal/entity"
)

// FailedPageRepository defines the interface for recording pages that could not be downloaded.
type FailedPageRepository interface {
	// SaveOrUpdate creates or updates a record for a failed page.
	SaveOrUpdate(ctx context.Context, page *entity.FailedPage) error
	// FindRecent retrieves the most recently failed pages.
	FindRecent(ctx context.Context, limit int) ([]*entity.FailedPage, error)
	// Delete removes a failed page record, typically after a successful download.
	Delete(ctx context.Context, url string) error
}
