package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	apperrors "tabletime/pkg/errors"
	httputil "tabletime/pkg/http"
	"tabletime/pkg/logger"
)

// Pinger is anything whose reachability decides readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

type APIHealthResponse struct {
	OK bool `json:"ok"`
}

type HealthHandler struct {
	store   Pinger
	log     *logger.Logger
	latency httputil.Latency
}

func NewHealthHandler(store Pinger, log *logger.Logger, latency httputil.Latency) *HealthHandler {
	return &HealthHandler{
		store:   store,
		log:     log,
		latency: latency,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

// APIHealth is the liveness check the browser client polls.
func (h *HealthHandler) APIHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.latency.Wait(httputil.OpHealth)
	if err := httputil.WriteSuccess(w, APIHealthResponse{OK: true}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "APIHealth", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Error("Booking store health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		if writeErr := httputil.WriteError(w, apperrors.Unavailable("Booking store")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Ready", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:   "ready",
		Database: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	router.GET("/api/health", h.APIHealth)
}
