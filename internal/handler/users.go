package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"metagift-api/internal/store"
	"metagift-api/pkg/apierror"
	"metagift-api/pkg/response"
)

// UsersHandler serves per-user balance and statistics.
type UsersHandler struct {
	ledger *store.Ledger
	stats  *store.Stats
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(ledger *store.Ledger, stats *store.Stats) *UsersHandler {
	return &UsersHandler{ledger: ledger, stats: stats}
}

// GetStats handles GET /api/user-stats/{userId}
func (h *UsersHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		response.Error(w, apierror.BadRequest("Invalid user ID"))
		return
	}

	response.OK(w, h.stats.Get(r.Context(), userID))
}

// GetBalance handles GET /api/user-balance/{userId}
func (h *UsersHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		response.Error(w, apierror.BadRequest("Invalid user ID"))
		return
	}

	response.OK(w, map[string]int{"stars": h.ledger.Balance(r.Context(), userID)})
}
