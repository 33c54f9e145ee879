package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"metagift-api/internal/model"
	"metagift-api/internal/pricing"
	"metagift-api/internal/service"
	"metagift-api/internal/store"
	"metagift-api/pkg/apierror"
	"metagift-api/pkg/response"
)

// PaymentsHandler handles payment methods, off-platform payment requests
// and their admin approval.
type PaymentsHandler struct {
	shop    *service.Shop
	catalog *service.CatalogService
}

// NewPaymentsHandler creates a new payments handler.
func NewPaymentsHandler(shop *service.Shop, catalog *service.CatalogService) *PaymentsHandler {
	return &PaymentsHandler{shop: shop, catalog: catalog}
}

// Methods handles GET /api/payment-methods/{itemId}
func (h *PaymentsHandler) Methods(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(chi.URLParam(r, "itemId"))
	if err != nil {
		response.Error(w, apierror.BadRequest("invalid item id"))
		return
	}

	item, err := h.catalog.GetByID(r.Context(), itemID)
	if err != nil {
		response.Error(w, apierror.NotFound("Item not found"))
		return
	}

	response.OK(w, map[string]interface{}{
		"paymentMethods": pricing.MethodsForItem(item),
	})
}

type paymentRequestBody struct {
	ItemID         int     `json:"itemId"`
	UserID         int64   `json:"userId"`
	Username       string  `json:"username"`
	Price          float64 `json:"price"`
	ConvertedPrice float64 `json:"convertedPrice"`
	PaymentMethod  string  `json:"paymentMethod"`
	ItemName       string  `json:"itemName"`
	ItemImage      string  `json:"itemImage"`
	ReferrerID     int64   `json:"referrerId"`
}

// CreatePaymentRequest handles POST /api/payment-request
func (h *PaymentsHandler) CreatePaymentRequest(w http.ResponseWriter, r *http.Request) {
	var body paymentRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}

	h.shop.CreatePaymentRequest(r.Context(), model.PaymentRequest{
		ItemID:         body.ItemID,
		UserID:         body.UserID,
		Username:       body.Username,
		Price:          body.Price,
		ConvertedPrice: body.ConvertedPrice,
		PaymentMethod:  body.PaymentMethod,
		ItemName:       body.ItemName,
		ItemImage:      body.ItemImage,
		ReferrerID:     body.ReferrerID,
	})

	response.OK(w, map[string]interface{}{"success": true})
}

type topUpRequestBody struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Amount   int    `json:"amount"`
}

// CreateTopUpRequest handles POST /api/topup-request
func (h *PaymentsHandler) CreateTopUpRequest(w http.ResponseWriter, r *http.Request) {
	var body topUpRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}

	h.shop.CreateTopUpRequest(r.Context(), body.UserID, body.Username, body.Amount)
	response.OK(w, map[string]interface{}{"success": true})
}

// Pending handles GET /api/payment-requests
func (h *PaymentsHandler) Pending(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.shop.PendingRequests(r.Context()))
}

// Approve handles POST /api/payment-request/{id}/approve
func (h *PaymentsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	err := h.shop.ApprovePaymentRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.requestError(w, err, "Payment request not found")
		return
	}
	response.OK(w, map[string]interface{}{"success": true})
}

// Reject handles POST /api/payment-request/{id}/reject
func (h *PaymentsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	err := h.shop.RejectPaymentRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.requestError(w, err, "Payment request not found")
		return
	}
	response.OK(w, map[string]interface{}{"success": true})
}

// ApproveTopUp handles POST /api/topup-request/{id}/approve
func (h *PaymentsHandler) ApproveTopUp(w http.ResponseWriter, r *http.Request) {
	err := h.shop.ApproveTopUp(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.requestError(w, err, "Top up request not found")
		return
	}
	response.OK(w, map[string]interface{}{"success": true})
}

func (h *PaymentsHandler) requestError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, store.ErrAlreadyProcessed):
		response.Error(w, apierror.Conflict("Request already processed"))
	case errors.Is(err, store.ErrNotFound):
		response.Error(w, apierror.NotFound(notFoundMsg))
	default:
		response.Error(w, err)
	}
}
