package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"metagift-api/internal/handler"
	"metagift-api/internal/middleware"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler          *handler.Handler
	CatalogHandler   *handler.CatalogHandler
	ActivityHandler  *handler.ActivityHandler
	InventoryHandler *handler.InventoryHandler
	UsersHandler     *handler.UsersHandler
	PurchaseHandler  *handler.PurchaseHandler
	PaymentsHandler  *handler.PaymentsHandler
	TransferHandler  *handler.TransferHandler
	WebhookHandler   *handler.WebhookHandler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Telegram webhook
	r.Post("/webhook", cfg.WebhookHandler.Receive)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", cfg.Handler.Status)

		// Catalog
		r.Get("/items", cfg.CatalogHandler.List)
		r.Post("/items", cfg.CatalogHandler.Create)
		r.Put("/items/{id}", cfg.CatalogHandler.Update)
		r.Delete("/items/{id}", cfg.CatalogHandler.Delete)

		// Feed and per-user reads
		r.Get("/activity", cfg.ActivityHandler.List)
		r.Get("/inventory/{userId}", cfg.InventoryHandler.List)
		r.Get("/user-stats/{userId}", cfg.UsersHandler.GetStats)
		r.Get("/user-balance/{userId}", cfg.UsersHandler.GetBalance)

		// Purchases
		r.Get("/payment-methods/{itemId}", cfg.PaymentsHandler.Methods)
		r.Post("/purchase-with-balance", cfg.PurchaseHandler.PurchaseWithBalance)

		// Payment requests and admin approval
		r.Post("/payment-request", cfg.PaymentsHandler.CreatePaymentRequest)
		r.Get("/payment-requests", cfg.PaymentsHandler.Pending)
		r.Post("/payment-request/{id}/approve", cfg.PaymentsHandler.Approve)
		r.Post("/payment-request/{id}/reject", cfg.PaymentsHandler.Reject)
		r.Post("/topup-request", cfg.PaymentsHandler.CreateTopUpRequest)
		r.Post("/topup-request/{id}/approve", cfg.PaymentsHandler.ApproveTopUp)

		// Transfers
		r.Post("/transfer-item", cfg.TransferHandler.Transfer)
	})

	return r
}
