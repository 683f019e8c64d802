package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"tabletime/internal/bookings/service"
	apperrors "tabletime/pkg/errors"
	httputil "tabletime/pkg/http"
	"tabletime/pkg/logger"
	"tabletime/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
	latency httputil.Latency
}

func NewBookingHandler(service service.BookingService, log *logger.Logger, latency httputil.Latency) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
		latency: latency,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.latency.Wait(httputil.OpCreate)
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Invalid request body")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	h.latency.Wait(httputil.OpCreate)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

// Search treats a date it cannot parse as matching nothing.
func (h *BookingHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	var filter model.BookingFilter

	if email := strings.TrimSpace(query.Get("email")); email != "" {
		filter.Email = &email
	}

	bookings := []*model.Booking{}
	dateMatchable := true
	if raw := strings.TrimSpace(query.Get("date")); raw != "" {
		date, err := model.ParseDate(raw)
		if err != nil {
			dateMatchable = false
		} else {
			filter.Date = &date
		}
	}

	if dateMatchable {
		var err error
		bookings, err = h.service.Search(r.Context(), filter)
		if err != nil {
			h.latency.Wait(httputil.OpSearch)
			if writeErr := httputil.WriteError(w, err); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "Search", "operation", "WriteError", "error", writeErr)
			}
			return
		}
	}

	h.latency.Wait(httputil.OpSearch)
	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	err := h.service.Cancel(r.Context(), ps.ByName("code"))
	h.latency.Wait(httputil.OpCancel)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cancel", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

// Reschedule reads an unparsable body as an empty one, so the caller gets
// the not-found or missing-field error instead of a decode error.
func (h *BookingHandler) Reschedule(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("ignoring unreadable reschedule body", "error", err)
		req = model.RescheduleRequest{}
	}
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)

	booking, err := h.service.Reschedule(r.Context(), ps.ByName("code"), &req)
	h.latency.Wait(httputil.OpReschedule)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Reschedule", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Reschedule", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/bookings", h.Create)
	router.GET("/api/bookings", h.Search)
	router.DELETE("/api/bookings/:code", h.Cancel)
	router.PATCH("/api/bookings/:code", h.Reschedule)
}
