package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"tabletime/internal/availability/service"
	httputil "tabletime/pkg/http"
	"tabletime/pkg/logger"
	"tabletime/pkg/model"
)

type AvailabilityResponse struct {
	Slots           []model.TimeOfDay `json:"slots"`
	CapacityPerSlot int               `json:"capacityPerSlot"`
}

type AvailabilityHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
	latency httputil.Latency
}

func NewAvailabilityHandler(service service.AvailabilityService, log *logger.Logger, latency httputil.Latency) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
		latency: latency,
	}
}

// Get never rejects its query: a missing or malformed date is treated as
// a date with no bookings.
func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	restaurant := strings.TrimSpace(query.Get("restaurant"))
	date, _ := model.ParseDate(strings.TrimSpace(query.Get("date")))

	slots, err := h.service.FreeSlots(r.Context(), restaurant, date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Get", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.latency.Wait(httputil.OpAvailability)
	if err := httputil.WriteSuccess(w, AvailabilityResponse{
		Slots:           slots,
		CapacityPerSlot: h.service.CapacityPerSlot(),
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/availability", h.Get)
}
