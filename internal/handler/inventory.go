package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"metagift-api/internal/store"
	"metagift-api/pkg/apierror"
	"metagift-api/pkg/response"
)

// InventoryHandler serves per-user inventories.
type InventoryHandler struct {
	inventory *store.Inventory
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(inventory *store.Inventory) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// List handles GET /api/inventory/{userId}
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil || userID <= 0 {
		response.Error(w, apierror.BadRequest("Invalid user ID"))
		return
	}

	response.OK(w, h.inventory.ListByOwner(r.Context(), userID))
}
