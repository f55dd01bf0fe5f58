package main

import (
	"bufio"
	"context"
	"os"
	"time"

	"zuno-agent/internal/adapters/cli"
	"zuno-agent/internal/adapters/repl"
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

// With no arguments the app runs the interactive shop-floor REPL; with a
// subcommand it runs one-shot and exits. The in-memory backend is the default
// here: a terminal session is its own ephemeral shop unless STORE_BACKEND
// points at postgres.
func main() {
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().Level(zerolog.WarnLevel)

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
	} else {
		ledger = memory.NewLedger()
		inventory = memory.NewInventory()
		if err := seed.Apply(ctx, ledger, inventory, true); err != nil {
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

	if len(os.Args) > 1 {
		cli.Run(ctx, svc, os.Args[1:])
		return
	}

	repl.Run(ctx, svc, bufio.NewReader(os.Stdin))
}
