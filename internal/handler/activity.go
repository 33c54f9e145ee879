package handler

import (
	"net/http"

	"metagift-api/internal/store"
	"metagift-api/pkg/response"
)

// ActivityHandler serves the recent-transactions feed.
type ActivityHandler struct {
	activity *store.Activity
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(activity *store.Activity) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// List handles GET /api/activity
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.activity.List(r.Context(), store.DisplayLimit))
}
