package handler

import (
	"net/http"
	"time"

	"metagift-api/pkg/response"
)

// Handler contains shared HTTP handlers and their dependencies.
type Handler struct {
	startTime time.Time
}

// New creates a new handler.
func New() *Handler {
	return &Handler{startTime: time.Now()}
}

// StatusResponse represents the status check response.
type StatusResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
}

// Status handles GET /api/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	response.OK(w, StatusResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}
