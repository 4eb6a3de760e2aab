// cmd/api/main.go
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"credit-ledger/internal/config"
	"credit-ledger/internal/domain"
	"credit-ledger/internal/handler"
	"credit-ledger/internal/service"
	"credit-ledger/internal/storage/postgres"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.MustLoad()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DBConn)
	if err != nil {
		slog.Error("Failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// The DB container may still be coming up; ping with a bounded backoff.
	backoff := retry.WithMaxRetries(5, retry.NewConstant(2*time.Second))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			slog.Warn("DB ping failed, retrying", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		slog.Error("DB did not become reachable", "error", err)
		os.Exit(1)
	}
	slog.Info("Connected to PostgreSQL")

	store := postgres.NewStorage(pool)

	dict, err := store.ResolveIDs(ctx)
	if err != nil {
		slog.Error("Failed to resolve dictionary ids", "error", err)
		os.Exit(1)
	}
	warnMissing(dict)

	svc := service.New(store, dict)
	ledgerHandler := handler.NewLedgerHandler(svc)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/user_credits/:user_id", ledgerHandler.UserCredits)
	router.POST("/plans_insert", ledgerHandler.PlansInsert)
	router.GET("/year_performance", ledgerHandler.YearPerformance)

	slog.Info("Server started", "port", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

// warnMissing flags dictionary names the reports depend on. A missing name
// does not stop the server: the affected totals just stay at zero.
func warnMissing(dict domain.DictionaryIDs) {
	for name, id := range map[string]int{
		domain.DictBody:       dict.Body,
		domain.DictPercent:    dict.Percent,
		domain.DictIssuance:   dict.Issuance,
		domain.DictCollection: dict.Collection,
	} {
		if id == 0 {
			slog.Warn("Dictionary entry missing, related totals degrade to zero", "name", name)
		}
	}
}
