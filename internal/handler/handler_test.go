package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metagift-api/internal/docstore"
	"metagift-api/internal/handler"
	"metagift-api/internal/model"
	"metagift-api/internal/router"
	"metagift-api/internal/service"
	"metagift-api/internal/store"
)

type testServer struct {
	mux     http.Handler
	catalog *service.CatalogService
	ledger  *store.Ledger
	shop    *service.Shop
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	docs, err := docstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	catalog := service.NewCatalogService(store.NewCatalog(docs), nil)
	ledger := store.NewLedger(docs)
	stats := store.NewStats(docs)
	inventory := store.NewInventory(docs)
	activity := store.NewActivity(docs)
	requests := store.NewRequests(docs)

	shop := service.NewShop(catalog, ledger, stats, inventory,
		activity, requests, store.NewReferrals(docs), nil)

	mux := router.New(router.Config{
		Handler:          handler.New(),
		CatalogHandler:   handler.NewCatalogHandler(catalog),
		ActivityHandler:  handler.NewActivityHandler(activity),
		InventoryHandler: handler.NewInventoryHandler(inventory),
		UsersHandler:     handler.NewUsersHandler(ledger, stats),
		PurchaseHandler:  handler.NewPurchaseHandler(shop),
		PaymentsHandler:  handler.NewPaymentsHandler(shop, catalog),
		TransferHandler:  handler.NewTransferHandler(shop),
		WebhookHandler:   handler.NewWebhookHandler(nil),
	})

	return &testServer{mux: mux, catalog: catalog, ledger: ledger, shop: shop}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	ts.mux.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestStatusEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var status struct {
		Status string `json:"status"`
	}
	decode(t, rec, &status)
	assert.Equal(t, "ok", status.Status)
}

func TestItemsListEmptyCatalogReturnsArray(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestItemsAdministration(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/items",
		`{"name":"Plush Pepe","price":5,"stock":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/items", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []model.Item
	decode(t, rec, &items)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ID)
	require.NotNil(t, items[0].Prices)
	assert.Equal(t, 500, items[0].Prices.STARS)

	rec = ts.do(t, http.MethodPut, "/api/items/1", `{"stock":10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPut, "/api/items/99", `{"stock":10}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Item not found"}`, rec.Body.String())

	rec = ts.do(t, http.MethodDelete, "/api/items/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/items", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestPurchaseWithBalanceEndpoint(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	ts.catalog.Insert(ctx, model.Item{Name: "Plush Pepe", Price: 5, Stock: 1})
	ts.ledger.SetBalance(ctx, 1001, 1000, "alice")

	t.Run("success", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/purchase-with-balance",
			`{"itemId":1,"userId":1001,"username":"alice","starsPrice":500}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var result struct {
			Success    bool   `json:"success"`
			NewBalance int    `json:"newBalance"`
			Message    string `json:"message"`
		}
		decode(t, rec, &result)
		assert.True(t, result.Success)
		assert.Equal(t, 500, result.NewBalance)
		assert.Equal(t, "Покупка успешна!", result.Message)
	})

	t.Run("sold out", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/purchase-with-balance",
			`{"itemId":1,"userId":1001,"username":"alice","starsPrice":500}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Товар недоступен или распродан"}`, rec.Body.String())
	})

	t.Run("insufficient balance", func(t *testing.T) {
		// Item 1 was delisted above, so the new item reuses id 1; use the
		// assigned id rather than assuming one.
		rare := ts.catalog.Insert(ctx, model.Item{Name: "Rare gift", Price: 50, Stock: 1})
		rec := ts.do(t, http.MethodPost, "/api/purchase-with-balance",
			fmt.Sprintf(`{"itemId":%d,"userId":1001,"username":"alice","starsPrice":5000}`, rare.ID))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Недостаточно Stars на балансе"}`, rec.Body.String())
	})
}

func TestInventoryEndpointRejectsBadUserID(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/inventory/abc", "/api/inventory/0", "/api/inventory/-5"} {
		rec := ts.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.JSONEq(t, `{"error":"Invalid user ID"}`, rec.Body.String(), path)
	}

	rec := ts.do(t, http.MethodGet, "/api/inventory/1001", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestUserBalanceEndpoint(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/user-balance/1001", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"stars":0}`, rec.Body.String())

	ts.ledger.SetBalance(ctx, 1001, 250, "alice")

	rec = ts.do(t, http.MethodGet, "/api/user-balance/1001", "")
	assert.JSONEq(t, `{"stars":250}`, rec.Body.String())
}

func TestPaymentMethodsEndpoint(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/payment-methods/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Item not found"}`, rec.Body.String())

	ts.catalog.Insert(ctx, model.Item{Name: "Plush Pepe", Price: 5, Stock: 1})

	rec = ts.do(t, http.MethodGet, "/api/payment-methods/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		PaymentMethods []struct {
			ID    string  `json:"id"`
			Price float64 `json:"price"`
		} `json:"paymentMethods"`
	}
	decode(t, rec, &result)
	require.Len(t, result.PaymentMethods, 3)
	assert.Equal(t, "STARS", result.PaymentMethods[0].ID)
	assert.Equal(t, 500.0, result.PaymentMethods[0].Price)
}

func TestTopUpApprovalFlow(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/topup-request",
		`{"userId":1001,"username":"alice","amount":200}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/payment-requests", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var pending []model.PaymentRequest
	decode(t, rec, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, model.RequestTypeTopUp, pending[0].Type)

	rec = ts.do(t, http.MethodPost, "/api/topup-request/"+pending[0].ID+"/approve", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/user-balance/1001", "")
	assert.JSONEq(t, `{"stars":200}`, rec.Body.String())

	// The state machine rejects a second approval.
	rec = ts.do(t, http.MethodPost, "/api/topup-request/"+pending[0].ID+"/approve", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"Request already processed"}`, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/topup-request/missing/approve", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Top up request not found"}`, rec.Body.String())
}

func TestPaymentRequestRejection(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/payment-request",
		`{"itemId":1,"userId":1001,"username":"alice","price":5,"convertedPrice":500}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var pending []model.PaymentRequest
	decode(t, ts.do(t, http.MethodGet, "/api/payment-requests", ""), &pending)
	require.Len(t, pending, 1)

	rec = ts.do(t, http.MethodPost, "/api/payment-request/"+pending[0].ID+"/reject", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/payment-requests", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestTransferEndpointErrorMapping(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/transfer-item",
		`{"fromUserId":1001,"fromUsername":"alice","toUserId":2002,"item":{}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Отсутствуют обязательные данные для передачи"}`, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/transfer-item",
		`{"fromUserId":1001,"fromUsername":"alice","toUserId":2002,"item":{"id":1,"name":"Plush Pepe"}}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Предмет не найден в вашем инвентаре"}`, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/transfer-item",
		`{"fromUserId":1001,"fromUsername":"alice","toUserId":1001,"item":{"id":1,"name":"Plush Pepe"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Нельзя передать подарок самому себе"}`, rec.Body.String())
}

func TestActivityEndpoint(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/activity", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	item := ts.catalog.Insert(ctx, model.Item{Name: "Plush Pepe", Price: 5, Stock: 1})
	ts.ledger.SetBalance(ctx, 1001, 1000, "alice")
	_, err := ts.shop.PurchaseWithBalance(ctx, service.PurchaseInput{
		ItemID: item.ID, UserID: 1001, Username: "alice", StarsPrice: 500,
	})
	require.NoError(t, err)

	rec = ts.do(t, http.MethodGet, "/api/activity", "")
	var records []model.ActivityRecord
	decode(t, rec, &records)
	require.Len(t, records, 1)
	assert.Equal(t, "alice", records[0].Username)
	assert.Equal(t, 1, records[0].BuyerNumber)
}

func TestWebhookAlwaysAnswers200(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/webhook", `{"update_id":1}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	// Telegram retries anything but 200, so even garbage gets one.
	rec = ts.do(t, http.MethodPost, "/webhook", `not json at all`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRequestIDHeaderExposed(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/status", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	// An id supplied by the caller is echoed back, not replaced.
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("X-Request-ID", "frontend-trace-42")
	rec = httptest.NewRecorder()
	ts.mux.ServeHTTP(rec, req)
	assert.Equal(t, "frontend-trace-42", rec.Header().Get("X-Request-ID"))
}
