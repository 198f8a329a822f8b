package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fyb-funds/fund-service/cache"
	"github.com/fyb-funds/fund-service/config"
	"github.com/fyb-funds/fund-service/database"
	"github.com/fyb-funds/fund-service/handlers"
	"github.com/fyb-funds/fund-service/middleware"
	"github.com/fyb-funds/fund-service/services"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment from .env file")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(),
	}))
	slog.SetDefault(logger)

	port := config.GetEnvOrDefault("PORT", "3001")

	defaults, err := config.LoadDefaults(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.NewStore(ctx, database.NewDatabaseConfig())
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			slog.Error("Failed to close store", "error", err)
		}
	}()

	if mongoStore, ok := store.(*database.MongoStore); ok {
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			slog.Error("Failed to create MongoDB indexes", "error", err)
			os.Exit(1)
		}
	}

	// Redis is optional; without it the ledger is computed on every request
	var ledgerCache *cache.LedgerCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client, err := cache.Connect(ctx, addr, os.Getenv("REDIS_PASSWORD"), 0)
		if err != nil {
			slog.Warn("Redis unavailable, ledger caching disabled", "addr", addr, "error", err)
		} else {
			ledgerCache = cache.NewLedgerCache(client)
			defer client.Close()
			slog.Info("Ledger caching enabled", "addr", addr)
		}
	}

	memberService := services.NewMemberService(store, ledgerCache, defaults)
	ledgerService := services.NewLedgerService(store, ledgerCache)
	transactionService := services.NewTransactionService(store)
	catalogService := services.NewCatalogService(store)
	fundService := services.NewFundService(store)

	if err := catalogService.SeedItems(ctx, defaults.Items); err != nil {
		slog.Error("Failed to seed catalog", "error", err)
		os.Exit(1)
	}
	if err := fundService.SeedFund(ctx, defaults.FundBaseAmount); err != nil {
		slog.Error("Failed to seed fund", "error", err)
		os.Exit(1)
	}

	mux := handlers.NewRouter(handlers.Services{
		Members:      memberService,
		Ledger:       ledgerService,
		Transactions: transactionService,
		Catalog:      catalogService,
		Fund:         fundService,
	})

	handler := middleware.CORSMiddleware()(middleware.RoleMiddleware(defaults.AccessKeys)(mux))

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Fund service starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

func logLevel() slog.Level {
	switch config.GetEnvOrDefault("LOG_LEVEL", "info") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
