package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"metagift-api/internal/service"
	"metagift-api/pkg/apierror"
	"metagift-api/pkg/response"
)

// TransferHandler handles peer-to-peer gift transfers.
type TransferHandler struct {
	shop *service.Shop
}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler(shop *service.Shop) *TransferHandler {
	return &TransferHandler{shop: shop}
}

type transferRequest struct {
	FromUserID   int64  `json:"fromUserId"`
	FromUsername string `json:"fromUsername"`
	ToUserID     int64  `json:"toUserId"`
	Comment      string `json:"comment"`
	Item         struct {
		InventoryID string `json:"inventoryId"`
		ID          int    `json:"id"`
		Name        string `json:"name"`
	} `json:"item"`
}

// Transfer handles POST /api/transfer-item
func (h *TransferHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}

	err := h.shop.TransferItem(r.Context(), service.TransferInput{
		FromUserID:   req.FromUserID,
		FromUsername: req.FromUsername,
		ToUserID:     req.ToUserID,
		Comment:      req.Comment,
		InventoryID:  req.Item.InventoryID,
		ItemID:       req.Item.ID,
		ItemName:     req.Item.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingTransferData):
			response.Error(w, apierror.BadRequest("Отсутствуют обязательные данные для передачи"))
		case errors.Is(err, service.ErrInvalidRecipient):
			response.Error(w, apierror.BadRequest("Некорректный ID получателя"))
		case errors.Is(err, service.ErrSelfTransfer):
			response.Error(w, apierror.BadRequest("Нельзя передать подарок самому себе"))
		case errors.Is(err, service.ErrInventoryItemNotFound):
			response.Error(w, apierror.NotFound("Предмет не найден в вашем инвентаре"))
		default:
			response.Error(w, err)
		}
		return
	}

	response.OK(w, map[string]interface{}{"success": true})
}
