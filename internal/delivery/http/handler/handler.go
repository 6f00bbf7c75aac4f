package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/phytochem-crawler/internal/delivery/http/request"
	"github.com/user/phytochem-crawler/internal/delivery/http/response"
	"github.com/user/phytochem-crawler/internal/entity"
	"github.com/user/phytochem-crawler/internal/extractor"
	"github.com/user/phytochem-crawler/internal/labels"
	"github.com/user/phytochem-crawler/internal/repository"
	"github.com/user/phytochem-crawler/internal/usecase"
)

const healthCheckTimeout = 2 * time.Second

// maxExtractBody bounds the size of documents posted to /api/extract.
const maxExtractBody = 8 << 20

// HealthCheck pings one backing store.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	plantManager usecase.PlantManager
	checks       map[string]HealthCheck
	logger       *zap.Logger
}

// NewHandler creates a Handler. checks maps store names to their pings and
// may be nil.
func NewHandler(plantManager usecase.PlantManager, checks map[string]HealthCheck, logger *zap.Logger) *Handler {
	return &Handler{
		plantManager: plantManager,
		checks:       checks,
		logger:       logger,
	}
}

func (h *Handler) HandleSubmitPlants(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitPlantsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	names := make([]string, 0, len(req.Plants))
	for _, name := range req.Plants {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		h.writeJSONError(w, "Plants list cannot be empty", http.StatusBadRequest)
		return
	}

	resp := response.SubmitPlantsResponse{
		Status:    "accepted",
		RequestID: uuid.NewString(),
		Plants:    make([]response.PlantSubmission, 0, len(names)),
	}
	failed := 0
	for _, name := range names {
		sub := response.PlantSubmission{Plant: name}
		id, err := h.plantManager.Submit(r.Context(), name, req.Force)
		switch {
		case err == nil:
			sub.Outcome = response.OutcomeQueued
			sub.SubmissionID = id
		case errors.Is(err, usecase.ErrPlantRecentlyScraped):
			sub.Outcome = response.OutcomeSkipped
			sub.Reason = err.Error()
		case errors.Is(err, usecase.ErrUnknownPlant):
			sub.Outcome = response.OutcomeRejected
			sub.Reason = usecase.ErrUnknownPlant.Error()
		default:
			h.logger.Error("failed to submit plant", zap.String("plant", name), zap.Error(err))
			sub.Outcome = response.OutcomeFailed
			sub.Reason = "Internal server error"
			failed++
		}
		resp.Plants = append(resp.Plants, sub)
	}

	if failed == len(names) {
		h.writeJSONError(w, "Could not queue any plant", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusAccepted, resp)
}

func (h *Handler) HandleGetPlantStatus(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		h.writeJSONError(w, "name query parameter is required", http.StatusBadRequest)
		return
	}

	status, err := h.plantManager.GetStatus(r.Context(), name)
	if err != nil {
		h.logger.Error("failed to get scrape status", zap.String("plant", name), zap.Error(err))
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if status.CurrentStatus == entity.StatusNotFound {
		h.writeJSONError(w, "Scrape status not found for the given plant", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, response.PlantStatusResponse{
		PlantName:           status.PlantName,
		CurrentStatus:       status.CurrentStatus,
		LastScrapeTimestamp: status.LastScrapeTimestamp,
		PhytochemicalCount:  status.PhytochemicalCount,
	})
}

func (h *Handler) HandleGetPlantRecord(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(chi.URLParam(r, "name"))

	record, err := h.plantManager.GetRecord(r.Context(), name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeJSONError(w, "No record stored for the given plant", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get plant record", zap.String("plant", name), zap.Error(err))
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, record)
}

// HandleExtract runs an ad hoc label spec over the posted HTML or text.
func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	var req request.ExtractRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxExtractBody)).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Labels) == 0 {
		h.writeJSONError(w, "labels cannot be empty", http.StatusBadRequest)
		return
	}
	for _, l := range req.Labels {
		if l.Text == "" {
			h.writeJSONError(w, "every label needs a non-empty label text", http.StatusBadRequest)
			return
		}
	}

	var (
		rec    labels.Record
		issues []labels.Issue
	)
	switch {
	case req.HTML != "":
		var err error
		rec, issues, err = extractor.Fields(req.HTML, req.Labels, req.Closeouts, req.Limits)
		if err != nil {
			h.writeJSONError(w, "Could not parse html", http.StatusBadRequest)
			return
		}
	case req.Text != "":
		rec = labels.Extract(req.Text, req.Labels, req.Closeouts, nil)
		issues = labels.Validate(req.Text, req.Labels, rec, req.Limits)
	default:
		h.writeJSONError(w, "html or text is required", http.StatusBadRequest)
		return
	}

	if issues == nil {
		issues = []labels.Issue{}
	}
	empty := labels.EmptyFields(req.Labels, rec)
	if empty == nil {
		empty = []string{}
	}
	h.writeJSON(w, http.StatusOK, response.ExtractResponse{Record: rec, Empty: empty, Issues: issues})
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := response.HealthResponse{Status: "ok"}
	if len(h.checks) > 0 {
		resp.Stores = make(map[string]string, len(h.checks))
	}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Error("health check failed", zap.String("store", name), zap.Error(err))
			resp.Stores[name] = "unhealthy"
			resp.Status = "degraded"
			continue
		}
		resp.Stores[name] = "healthy"
	}

	if resp.Status != "ok" {
		h.writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
