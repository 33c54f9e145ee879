package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"metagift-api/internal/service"
	"metagift-api/pkg/apierror"
	"metagift-api/pkg/response"
)

// PurchaseHandler handles balance purchases.
type PurchaseHandler struct {
	shop *service.Shop
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(shop *service.Shop) *PurchaseHandler {
	return &PurchaseHandler{shop: shop}
}

type purchaseRequest struct {
	ItemID     int    `json:"itemId"`
	UserID     int64  `json:"userId"`
	Username   string `json:"username"`
	StarsPrice int    `json:"starsPrice"`
	ReferrerID int64  `json:"referrerId"`
}

// PurchaseWithBalance handles POST /api/purchase-with-balance
func (h *PurchaseHandler) PurchaseWithBalance(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}

	newBalance, err := h.shop.PurchaseWithBalance(r.Context(), service.PurchaseInput{
		ItemID:     req.ItemID,
		UserID:     req.UserID,
		Username:   req.Username,
		StarsPrice: req.StarsPrice,
		ReferrerID: req.ReferrerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemUnavailable):
			response.Error(w, apierror.BadRequest("Товар недоступен или распродан"))
		case errors.Is(err, service.ErrInsufficientBalance):
			response.Error(w, apierror.BadRequest("Недостаточно Stars на балансе"))
		default:
			response.Error(w, err)
		}
		return
	}

	response.OK(w, map[string]interface{}{
		"success":    true,
		"newBalance": newBalance,
		"message":    "Покупка успешна!",
	})
}
