package http

import (
	"net/http"

	"item-monitor/internal/handler/http/respond"
)

// RootHandler serves the service banner at GET /.
type RootHandler struct {
	Version string
}

func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{
		"message": "item monitor service",
		"version": h.Version,
	})
}
