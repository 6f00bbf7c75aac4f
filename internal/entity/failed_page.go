package entity

import "time"

// FailedPage mirrors the `failed_pages` PostgreSQL table schema.
type FailedPage struct {
	ID            int64
	URL           string
	PageType      PageType
	PlantName     string
	FailureReason string
	LastAttempt   time.Time
	RetryCount    int
}
