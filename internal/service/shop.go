package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"metagift-api/internal/logger"
	"metagift-api/internal/model"
	"metagift-api/internal/pricing"
	"metagift-api/internal/store"
)

// Notifier delivers a chat message to a user. Delivery is best-effort and
// never affects the transaction that triggered it.
type Notifier interface {
	Notify(chatID int64, html string) error
}

// Shop is the transaction engine: it orchestrates catalog, ledger,
// inventory, activity and stats mutations for purchases, request
// approvals and transfers. One mutex serializes every multi-store
// transaction, so balances cannot go negative and stock cannot oversell
// under concurrent load.
type Shop struct {
	catalog   *CatalogService
	ledger    *store.Ledger
	stats     *store.Stats
	inventory *store.Inventory
	activity  *store.Activity
	requests  *store.Requests
	referrals *store.Referrals
	notifier  Notifier

	mu sync.Mutex
}

// NewShop creates the transaction engine. notifier may be nil.
func NewShop(
	catalog *CatalogService,
	ledger *store.Ledger,
	stats *store.Stats,
	inventory *store.Inventory,
	activity *store.Activity,
	requests *store.Requests,
	referrals *store.Referrals,
	notifier Notifier,
) *Shop {
	return &Shop{
		catalog:   catalog,
		ledger:    ledger,
		stats:     stats,
		inventory: inventory,
		activity:  activity,
		requests:  requests,
		referrals: referrals,
		notifier:  notifier,
	}
}

// PurchaseInput carries one purchase-with-balance request.
type PurchaseInput struct {
	ItemID     int
	UserID     int64
	Username   string
	StarsPrice int
	ReferrerID int64
}

// PurchaseWithBalance buys an item with the user's Stars balance and
// returns the new balance. Preconditions are validated before any store
// is touched: a rejected purchase leaves ledger and catalog unchanged.
func (s *Shop) PurchaseWithBalance(ctx context.Context, in PurchaseInput) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.catalog.GetByID(ctx, in.ItemID)
	if err != nil || item.Stock <= 0 {
		return 0, ErrItemUnavailable
	}

	balance := s.ledger.Balance(ctx, in.UserID)
	if balance < in.StarsPrice {
		return 0, ErrInsufficientBalance
	}

	// Preconditions hold; commit.
	newBalance := balance - in.StarsPrice
	s.ledger.SetBalance(ctx, in.UserID, newBalance, in.Username)

	if err := s.catalog.DecrementStock(ctx, in.ItemID); err != nil {
		logger.Error("stock decrement failed after debit",
			zap.Int("item_id", in.ItemID), zap.Error(err))
	}

	buyerNumber := s.activity.CountByItem(ctx, in.ItemID) + 1

	s.activity.Append(ctx, model.ActivityRecord{
		ID:             item.ID,
		Name:           item.Name,
		Image:          item.Image,
		Price:          item.Price,
		ConvertedPrice: float64(in.StarsPrice),
		Prices:         item.Prices,
		UserID:         in.UserID,
		Username:       in.Username,
		BuyerNumber:    buyerNumber,
	})

	s.inventory.Append(ctx, model.InventoryRecord{
		ID:             item.ID,
		Name:           item.Name,
		Image:          item.Image,
		Price:          item.Price,
		ConvertedPrice: float64(in.StarsPrice),
		Prices:         item.Prices,
		Quantity:       item.Quantity,
		Owner:          "@" + in.Username,
		UserID:         in.UserID,
		Username:       in.Username,
		Status:         item.Status,
	})

	s.stats.RecordPurchase(ctx, in.UserID, in.Username,
		pricing.SpentStars(item.Price, float64(in.StarsPrice)))

	s.recordReferral(ctx, in.ReferrerID, in.UserID)

	return newBalance, nil
}

// recordReferral stores the referrer link once per referred user.
func (s *Shop) recordReferral(ctx context.Context, referrerID, userID int64) {
	if referrerID <= 0 || referrerID == userID {
		return
	}
	if s.referrals.Record(ctx, referrerID, userID) {
		s.stats.RecordReferral(ctx, referrerID)
	}
}

// CreatePaymentRequest records a pending off-platform purchase declaration.
func (s *Shop) CreatePaymentRequest(ctx context.Context, req model.PaymentRequest) model.PaymentRequest {
	req.Type = model.RequestTypePurchase
	if req.ConvertedPrice == 0 {
		req.ConvertedPrice = req.Price
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "TON"
	}
	return s.requests.Append(ctx, req)
}

// CreateTopUpRequest records a pending Stars top-up declaration.
func (s *Shop) CreateTopUpRequest(ctx context.Context, userID int64, username string, amount int) model.PaymentRequest {
	return s.requests.Append(ctx, model.PaymentRequest{
		Type:     model.RequestTypeTopUp,
		UserID:   userID,
		Username: username,
		Amount:   amount,
	})
}

// PendingRequests lists requests awaiting an admin decision.
func (s *Shop) PendingRequests(ctx context.Context) []model.PaymentRequest {
	return s.requests.Pending(ctx)
}

// ApprovePaymentRequest marks a pending purchase request approved and
// fulfills it using the price snapshot recorded when the request was filed.
// Top-up requests are invisible here: approving one through this path would
// terminalize it without crediting, stranding the user's money. When the
// referenced item has meanwhile sold out, the request still ends up
// approved but nothing else mutates; that race is accepted.
func (s *Shop) ApprovePaymentRequest(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := s.requests.Get(ctx, id)
	if err != nil || req.Type != model.RequestTypePurchase {
		return store.ErrNotFound
	}

	req, err = s.requests.MarkStatus(ctx, id, model.RequestStatusApproved)
	if err != nil {
		return err
	}

	item, err := s.catalog.GetByID(ctx, req.ItemID)
	if err != nil || item.Stock <= 0 {
		logger.Warn("approved payment request for unavailable item",
			zap.String("request_id", req.ID), zap.Int("item_id", req.ItemID))
		return nil
	}

	if err := s.catalog.DecrementStock(ctx, req.ItemID); err != nil {
		logger.Error("stock decrement failed on approval",
			zap.Int("item_id", req.ItemID), zap.Error(err))
	}

	buyerNumber := s.activity.CountByItem(ctx, req.ItemID) + 1

	s.activity.Append(ctx, model.ActivityRecord{
		ID:             req.ItemID,
		Name:           req.ItemName,
		Image:          req.ItemImage,
		Price:          req.Price,
		ConvertedPrice: req.ConvertedPrice,
		PaymentMethod:  req.PaymentMethod,
		UserID:         req.UserID,
		Username:       req.Username,
		BuyerNumber:    buyerNumber,
	})

	s.inventory.Append(ctx, model.InventoryRecord{
		ID:             req.ItemID,
		Name:           req.ItemName,
		Image:          req.ItemImage,
		Price:          req.Price,
		ConvertedPrice: req.ConvertedPrice,
		Quantity:       item.Quantity,
		Owner:          pricing.ShopWalletLabel,
		UserID:         req.UserID,
		Username:       req.Username,
	})

	s.stats.RecordPurchase(ctx, req.UserID, req.Username,
		pricing.SpentStars(req.Price, req.ConvertedPrice))

	s.recordReferral(ctx, req.ReferrerID, req.UserID)

	return nil
}

// RejectPaymentRequest marks a pending request rejected. No other state
// changes.
func (s *Shop) RejectPaymentRequest(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.requests.MarkStatus(ctx, id, model.RequestStatusRejected)
	return err
}

// ApproveTopUp marks a pending top-up approved and credits the declared
// amount to the user's balance. The confirmation message is fire-and-forget.
func (s *Shop) ApproveTopUp(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := s.requests.Get(ctx, id)
	if err != nil || req.Type != model.RequestTypeTopUp {
		return store.ErrNotFound
	}

	req, err = s.requests.MarkStatus(ctx, id, model.RequestStatusApproved)
	if err != nil {
		return err
	}

	newBalance := s.ledger.Balance(ctx, req.UserID) + req.Amount
	s.ledger.SetBalance(ctx, req.UserID, newBalance, req.Username)

	message := fmt.Sprintf("💰 <b>Пополнение баланса подтверждено!</b>\n\n"+
		"⭐ Начислено: %d Stars\n"+
		"💳 Текущий баланс: %d Stars\n\n"+
		"Теперь вы можете покупать подарки с баланса! 🎁",
		req.Amount, newBalance)
	s.notify(req.UserID, message)

	return nil
}

// TransferInput carries one peer-to-peer item transfer request.
type TransferInput struct {
	FromUserID   int64
	FromUsername string
	ToUserID     int64
	Comment      string

	// Item reference: InventoryID when the frontend knows it, with the
	// (ItemID, ItemName) pair as fallback.
	InventoryID string
	ItemID      int
	ItemName    string
}

// TransferItem moves one inventory record from sender to recipient. The
// record is deleted and recreated under a fresh InventoryID carrying the
// transfer metadata; exactly one record exists before and after. The
// recipient's real username is unknown until their next login, so a
// placeholder is stored.
func (s *Shop) TransferItem(ctx context.Context, in TransferInput) error {
	if in.ItemID == 0 || in.ItemName == "" || in.FromUserID == 0 || in.FromUsername == "" {
		return ErrMissingTransferData
	}
	if in.ToUserID <= 0 {
		return ErrInvalidRecipient
	}
	if in.FromUserID == in.ToUserID {
		return ErrSelfTransfer
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var owned *model.InventoryRecord
	for _, rec := range s.inventory.ListByOwner(ctx, in.FromUserID) {
		if rec.InventoryID == in.InventoryID || (rec.ID == in.ItemID && rec.Name == in.ItemName) {
			owned = &rec
			break
		}
	}
	if owned == nil {
		return ErrInventoryItemNotFound
	}

	s.inventory.Remove(ctx, owned.InventoryID, in.FromUserID)

	transferred := *owned
	transferred.UserID = in.ToUserID
	transferred.Username = fmt.Sprintf("user_%d", in.ToUserID)
	transferred.Owner = fmt.Sprintf("ID: %d", in.ToUserID)
	transferred.Comment = in.Comment
	transferred.TransferDate = nowRFC3339()
	transferred.FromUsername = in.FromUsername
	s.inventory.Append(ctx, transferred)

	comment := in.Comment
	if comment == "" {
		comment = "Без комментария"
	}
	message := fmt.Sprintf("🎁 <b>Вы получили подарок!</b>\n\n"+
		"📦 Подарок: %s\n"+
		"👤 От: %s\n"+
		"💬 Комментарий: %s\n\n"+
		"Подарок добавлен в ваш инвентарь!",
		owned.Name, in.FromUsername, comment)
	s.notify(in.ToUserID, message)

	return nil
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// notify delivers a message without ever failing the transaction.
func (s *Shop) notify(chatID int64, html string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(chatID, html); err != nil {
		logger.Error("notification delivery failed",
			zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
