// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/blackpixelca/entrata-webflow-sync/internal/logging"
	"github.com/blackpixelca/entrata-webflow-sync/internal/models"
	"github.com/blackpixelca/entrata-webflow-sync/internal/sync"
)

// SyncRunner is the manager surface the handlers need.
type SyncRunner interface {
	TriggerRun(ctx context.Context) (*models.RunSummary, error)
	LastRun() *models.RunSummary
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	runner    SyncRunner
	props     []models.PropertyConfig
	version   string
	startTime time.Time
}

// NewHandler creates a handler with the given sync runner and property set.
func NewHandler(runner SyncRunner, props []models.PropertyConfig, version string) *Handler {
	return &Handler{
		runner:    runner,
		props:     props,
		version:   version,
		startTime: time.Now(),
	}
}

// TriggerSync starts a full sync run and reports its outcome. A run
// already in progress yields 409; a run with any failed property yields
// 500 with the partial summary attached.
func (h *Handler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	logger := logging.Ctx(r.Context())
	logger.Info().Msg("Sync triggered via HTTP")

	summary, err := h.runner.TriggerRun(r.Context())
	if err != nil {
		if errors.Is(err, sync.ErrRunInProgress) {
			respondError(w, http.StatusConflict, ErrCodeConflict, "A sync run is already in progress", nil)
			return
		}

		respondJSON(w, http.StatusInternalServerError, &models.APIResponse{
			Status: "error",
			Data:   summary,
			Metadata: models.Metadata{
				Timestamp: time.Now(),
			},
			Error: &models.APIError{
				Code:    ErrCodeSyncFailed,
				Message: sanitizeLogValue(err.Error()),
			},
		})
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   summary,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// statusResponse is the payload for GET /api/v1/status.
type statusResponse struct {
	Version       string             `json:"version"`
	UptimeSeconds float64            `json:"uptimeSeconds"`
	Properties    int                `json:"properties"`
	LastRun       *models.RunSummary `json:"lastRun"`
}

// Status reports service uptime, configured properties, and the last run.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: statusResponse{
			Version:       h.version,
			UptimeSeconds: time.Since(h.startTime).Seconds(),
			Properties:    len(h.props),
			LastRun:       h.runner.LastRun(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive is the liveness probe: 200 whenever the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   map[string]string{"status": "alive"},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady is the readiness probe: 200 once properties are configured.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if len(h.props) == 0 {
		respondError(w, http.StatusServiceUnavailable, ErrCodeNotReady, "No properties configured", nil)
		return
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   map[string]interface{}{"status": "ready", "properties": len(h.props)},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// infoResponse describes the service for unrecognized paths.
type infoResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// Info acknowledges any unrecognized request with a 200 service
// description. Webhook senders treat non-2xx as delivery failure and
// retry, so unknown paths are described rather than rejected.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	logger := logging.Ctx(r.Context())
	logger.Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Unrecognized path acknowledged")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: infoResponse{
			Service: "entrata-webflow-sync",
			Version: h.version,
			Endpoints: map[string]string{
				"POST /sync":               "trigger a full sync run",
				"GET /api/v1/status":       "last run summary and uptime",
				"GET /api/v1/health/live":  "liveness probe",
				"GET /api/v1/health/ready": "readiness probe",
				"GET /metrics":             "Prometheus metrics",
			},
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
