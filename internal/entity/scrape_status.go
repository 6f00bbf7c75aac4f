package entity

import "time"

const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusNotFound  = "not_found"
)

type ScrapeStatus struct {
	PlantName           string
	CurrentStatus       string // "pending", "completed", "not_found"
	LastScrapeTimestamp *time.Time
	PhytochemicalCount  int
}
