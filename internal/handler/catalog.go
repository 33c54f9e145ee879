package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"metagift-api/internal/model"
	"metagift-api/internal/service"
	"metagift-api/pkg/apierror"
	"metagift-api/pkg/response"
)

// CatalogHandler handles catalog browsing and administration.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List handles GET /api/items
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.catalog.List(r.Context())
	if items == nil {
		items = []model.Item{}
	}
	response.OK(w, items)
}

// Create handles POST /api/items
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var item model.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}

	h.catalog.Insert(r.Context(), item)
	response.OK(w, map[string]interface{}{"success": true})
}

// Update handles PUT /api/items/{id}
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, apierror.BadRequest("invalid item id"))
		return
	}

	var patch map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}

	if err := h.catalog.Update(r.Context(), id, patch); err != nil {
		response.Error(w, apierror.NotFound("Item not found"))
		return
	}
	response.OK(w, map[string]interface{}{"success": true})
}

// Delete handles DELETE /api/items/{id}
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, apierror.BadRequest("invalid item id"))
		return
	}

	if err := h.catalog.Remove(r.Context(), id); err != nil {
		response.Error(w, apierror.NotFound("Item not found"))
		return
	}
	response.OK(w, map[string]interface{}{"success": true})
}
