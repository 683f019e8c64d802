package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"tabletime/internal/restaurants/service"
	httputil "tabletime/pkg/http"
	"tabletime/pkg/logger"
)

type RestaurantHandler struct {
	directory service.Directory
	log       *logger.Logger
	latency   httputil.Latency
}

func NewRestaurantHandler(directory service.Directory, log *logger.Logger, latency httputil.Latency) *RestaurantHandler {
	return &RestaurantHandler{
		directory: directory,
		log:       log,
		latency:   latency,
	}
}

func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	restaurants := h.directory.Search(r.URL.Query().Get("q"))

	h.latency.Wait(httputil.OpRestaurants)
	if err := httputil.WriteSuccess(w, restaurants); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RestaurantHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/restaurants", h.List)
}
