package response

import (
	"time"

	"github.com/user/phytochem-crawler/internal/labels"
)

const (
	OutcomeQueued   = "queued"
	OutcomeSkipped  = "skipped"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

type SubmitPlantsResponse struct {
	Status    string            `json:"status"`
	RequestID string            `json:"request_id"`
	Plants    []PlantSubmission `json:"plants"`
}

// PlantSubmission is the outcome of submitting a single plant.
type PlantSubmission struct {
	Plant        string `json:"plant"`
	Outcome      string `json:"outcome"` // "queued", "skipped", "rejected", "failed"
	SubmissionID string `json:"submission_id,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// PlantStatusResponse is a DTO for scrape status, mirroring entity.ScrapeStatus
type PlantStatusResponse struct {
	PlantName           string     `json:"plant_name"`
	CurrentStatus       string     `json:"current_status"` // "pending", "completed"
	LastScrapeTimestamp *time.Time `json:"last_scrape_timestamp,omitempty"`
	PhytochemicalCount  int        `json:"phytochemical_count,omitempty"`
}

type ExtractResponse struct {
	Record labels.Record  `json:"record"`
	Empty  []string       `json:"empty"`
	Issues []labels.Issue `json:"issues"`
}

type HealthResponse struct {
	Status string            `json:"status"`
	Stores map[string]string `json:"stores,omitempty"`
}
