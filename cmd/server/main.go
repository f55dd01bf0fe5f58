package main

import (
	"context"
	"net/http"
	"os"
	"time"

	webAdapter "zuno-agent/internal/adapters/web"
	"zuno-agent/internal/ai"
	"zuno-agent/internal/app"
	"zuno-agent/internal/core"
	"zuno-agent/internal/db"
	"zuno-agent/internal/seed"
	"zuno-agent/internal/store/memory"
	"zuno-agent/internal/store/postgres"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	ctx := context.Background()

	var (
		ledger    core.LedgerStore
		inventory core.InventoryStore
	)
	if os.Getenv("STORE_BACKEND") == "postgres" {
		pool, err := db.NewPool(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("database")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			logger.Fatal().Err(err).Msg("schema")
		}
		ledger = postgres.NewLedger(pool)
		inventory = postgres.NewInventory(pool)
		// First boot on an empty database gets the catalog, not the demo history.
		if items, err := inventory.List(ctx); err == nil && len(items) == 0 {
			if err := seed.Apply(ctx, ledger, inventory, false); err != nil {
				logger.Fatal().Err(err).Msg("seed")
			}
		}
	} else {
		ledger = memory.NewLedger()
		inventory = memory.NewInventory()
		withHistory := os.Getenv("SEED_DEMO_LEDGER") != "false"
		if err := seed.Apply(ctx, ledger, inventory, withHistory); err != nil {
			logger.Fatal().Err(err).Msg("seed")
		}
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logger.Warn().Msg("OPENAI_API_KEY is not set")
	}
	agent := ai.NewAgent(apiKey)

	ingestor := core.NewIngestor(agent, ledger, inventory, logger)
	growth := core.TrailingPeriodGrowth{
		Period:   30 * 24 * time.Hour,
		Fallback: decimal.NewFromFloat(12.5),
	}
	finance := core.NewFinanceEngine(ledger, inventory, growth)

	svc := app.NewAppService(ingestor, finance, ledger, inventory)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	handler := webAdapter.NewHandler(svc, os.Getenv("ALLOWED_ORIGINS"), logger)

	logger.Info().Str("port", port).Msg("server starting")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logger.Fatal().Err(err).Msg("server")
	}
}
