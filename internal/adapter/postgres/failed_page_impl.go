package postgres

import (
	"context"

	"github.com/user/phytochem-crawler/internal/entity"
)

// FailedPageRepoImpl provides a concrete implementation for the FailedPageRepository interface using PostgreSQL.
type FailedPageRepoImpl struct {
	db DB
}

// NewFailedPageRepo creates a new instance of FailedPageRepoImpl.
func NewFailedPageRepo(db DB) *FailedPageRepoImpl {
	return &FailedPageRepoImpl{db: db}
}

// SaveOrUpdate creates or updates a record for a failed page.
// It increments the retry_count on conflict.
func (r *FailedPageRepoImpl) SaveOrUpdate(ctx context.Context, page *entity.FailedPage) error {
	query := `
		INSERT INTO failed_pages (url, page_type, plant_name, failure_reason, last_attempt, retry_count)
		VALUES ($1, $2, $3, $4, $5, 1)
		ON CONFLICT (url) DO UPDATE SET
			page_type = EXCLUDED.page_type,
			plant_name = EXCLUDED.plant_name,
			failure_reason = EXCLUDED.failure_reason,
			last_attempt = EXCLUDED.last_attempt,
			retry_count = failed_pages.retry_count + 1;
	`
	_, err := r.db.Exec(ctx, query,
		page.URL,
		string(page.PageType),
		page.PlantName,
		page.FailureReason,
		page.LastAttempt,
	)
	return err
}

// FindRecent retrieves the most recently failed pages.
func (r *FailedPageRepoImpl) FindRecent(ctx context.Context, limit int) ([]*entity.FailedPage, error) {
	query := `
		SELECT id, url, page_type, plant_name, failure_reason, last_attempt, retry_count
		FROM failed_pages
		ORDER BY last_attempt DESC
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*entity.FailedPage
	for rows.Next() {
		var (
			fp       entity.FailedPage
			pageType string
		)
		if err := rows.Scan(
			&fp.ID,
			&fp.URL,
			&pageType,
			&fp.PlantName,
			&fp.FailureReason,
			&fp.LastAttempt,
			&fp.RetryCount,
		); err != nil {
			return nil, err
		}
		fp.PageType = entity.PageType(pageType)
		pages = append(pages, &fp)
	}

	return pages, rows.Err()
}

// Delete removes a failed page record, typically after a successful download.
func (r *FailedPageRepoImpl) Delete(ctx context.Context, url string) error {
	query := `DELETE FROM failed_pages WHERE url = $1;`
	_, err := r.db.Exec(ctx, query, url)
	return err
}
