package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"metagift-api/internal/bot"
	"metagift-api/internal/cache"
	"metagift-api/internal/config"
	"metagift-api/internal/docstore"
	"metagift-api/internal/handler"
	"metagift-api/internal/logger"
	"metagift-api/internal/router"
	"metagift-api/internal/service"
	"metagift-api/internal/store"
)

func main() {
	cfg := config.MustLoad()

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("starting MetaGift API", zap.String("environment", cfg.App.Environment))

	// Initialize the document store based on config
	var docs docstore.Store
	switch cfg.Storage.Type {
	case "sqlite":
		sqliteStore, err := docstore.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			logger.Error("failed to initialize SQLite storage", zap.Error(err))
			os.Exit(1)
		}
		docs = sqliteStore
	case "mysql":
		mysqlStore, err := docstore.NewMySQLStore(cfg.Storage.MySQLDSN())
		if err != nil {
			logger.Error("failed to initialize MySQL storage", zap.Error(err))
			os.Exit(1)
		}
		docs = mysqlStore
	default: // file
		fileStore, err := docstore.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			logger.Error("failed to initialize file storage", zap.Error(err))
			os.Exit(1)
		}
		docs = fileStore
	}
	defer docs.Close()
	logger.Info("document store initialized", zap.String("type", cfg.Storage.Type))

	// Optional Redis catalog cache
	var catalogCache *cache.Catalog
	if cfg.Cache.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		c, err := cache.NewCatalog(client, cfg.Cache.TTL)
		if err != nil {
			logger.Warn("redis unavailable, running without catalog cache", zap.Error(err))
		} else {
			catalogCache = c
			logger.Info("catalog cache initialized")
		}
	}

	// Typed stores
	catalogStore := store.NewCatalog(docs)
	ledger := store.NewLedger(docs)
	stats := store.NewStats(docs)
	inventory := store.NewInventory(docs)
	activity := store.NewActivity(docs)
	requests := store.NewRequests(docs)
	referrals := store.NewReferrals(docs)

	// Telegram bot (optional)
	shopBot, err := bot.New(cfg.Bot.Token, cfg.App.WebAppURL)
	if err != nil {
		logger.Error("failed to initialize bot", zap.Error(err))
		os.Exit(1)
	}

	// Services
	catalogService := service.NewCatalogService(catalogStore, catalogCache)
	shop := service.NewShop(catalogService, ledger, stats, inventory, activity, requests, referrals, shopBot)

	// Scheduled backups
	var scheduler *cron.Cron
	if cfg.Backup.Enabled {
		backup := service.NewBackup(docs, cfg.Backup.Dir, cfg.Backup.Retention)
		scheduler = cron.New()
		if _, err := scheduler.AddFunc(cfg.Backup.Schedule, backup.Run); err != nil {
			logger.Error("invalid backup schedule", zap.String("schedule", cfg.Backup.Schedule), zap.Error(err))
		} else {
			scheduler.Start()
			logger.Info("backup scheduler started", zap.String("schedule", cfg.Backup.Schedule))
		}
	}

	// Router
	r := router.New(router.Config{
		Handler:          handler.New(),
		CatalogHandler:   handler.NewCatalogHandler(catalogService),
		ActivityHandler:  handler.NewActivityHandler(activity),
		InventoryHandler: handler.NewInventoryHandler(inventory),
		UsersHandler:     handler.NewUsersHandler(ledger, stats),
		PurchaseHandler:  handler.NewPurchaseHandler(shop),
		PaymentsHandler:  handler.NewPaymentsHandler(shop, catalogService),
		TransferHandler:  handler.NewTransferHandler(shop),
		WebhookHandler:   handler.NewWebhookHandler(shopBot),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server listening", zap.String("address", cfg.Server.Address()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	if scheduler != nil {
		scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
}
