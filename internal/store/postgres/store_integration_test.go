package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"zuno-agent/internal/core"
	"zuno-agent/internal/store/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("Failed to ensure schema: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE TABLE transactions, inventory_items RESTART IDENTITY`); err != nil {
		t.Fatalf("Failed to clean test database: %v", err)
	}
	return pool
}

func TestPostgresLedger_AppendAndFilter(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ledger := postgres.NewLedger(pool)
	ctx := context.Background()

	sale := core.TransactionRecord{
		Item: "Chini (Sugar)", Quantity: 2, UnitPrice: decimal.NewFromInt(40),
		Kind: core.Sale, Category: core.CategoryInventory, Status: core.StatusPaid,
		Counterparty: core.WalkInCounterparty, CreatedAt: time.Now(),
		Provenance: core.Provenance{CaptureRef: "capture://it-1", IntentProof: "do kilo chini"},
	}
	credit := core.TransactionRecord{
		Item: "Aata (Flour)", Quantity: 5, UnitPrice: decimal.NewFromInt(35),
		Kind: core.Credit, Category: core.CategoryUdhaar, Status: core.StatusPending,
		Counterparty: "Ramesh Bhai", CreatedAt: time.Now(),
	}

	id1, err := ledger.Append(ctx, sale)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	id2, err := ledger.Append(ctx, credit)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id2 <= id1 {
		t.Errorf("ids must be monotonic: %d then %d", id1, id2)
	}

	all, err := ledger.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != id2 {
		t.Fatalf("expected 2 records, most recent first, got %+v", all)
	}
	if !all[1].UnitPrice.Equal(decimal.NewFromInt(40)) {
		t.Errorf("unit price roundtrip failed: %s", all[1].UnitPrice)
	}
	if all[1].Provenance.IntentProof != "do kilo chini" {
		t.Errorf("provenance roundtrip failed: %+v", all[1].Provenance)
	}

	byKind, err := ledger.Filter(ctx, core.TransactionFilter{Kind: core.Credit})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(byKind) != 1 || byKind[0].Kind != core.Credit {
		t.Errorf("kind filter failed: %+v", byKind)
	}

	bySearch, err := ledger.Filter(ctx, core.TransactionFilter{Search: "ramesh"})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(bySearch) != 1 {
		t.Errorf("search filter failed: %+v", bySearch)
	}
}

func TestPostgresLedger_MarkPaid(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ledger := postgres.NewLedger(pool)
	ctx := context.Background()

	id, err := ledger.Append(ctx, core.TransactionRecord{
		Item: "Aata (Flour)", Quantity: 5, UnitPrice: decimal.NewFromInt(35),
		Kind: core.Credit, Category: core.CategoryUdhaar, Status: core.StatusPending,
		Counterparty: "Ramesh Bhai", CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := ledger.MarkPaid(ctx, id); err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	records, _ := ledger.List(ctx)
	if records[0].Status != core.StatusPaid {
		t.Errorf("expected Paid, got %s", records[0].Status)
	}

	if err := ledger.MarkPaid(ctx, id+1000); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresInventory_AdjustAndNegativeStock(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	inv := postgres.NewInventory(pool)
	ctx := context.Background()

	if err := inv.Put(ctx, core.InventoryItem{
		Item: "Doodh (Milk)", StockOnHand: 5, ReorderThreshold: 10, UnitCost: decimal.NewFromInt(18),
	}); err != nil {
		t.Fatalf("put: %v", err)
	}

	known, err := inv.Adjust(ctx, "Doodh (Milk)", -8)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if !known {
		t.Fatal("expected known item")
	}

	it, err := inv.Get(ctx, "Doodh (Milk)")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if it.StockOnHand != -3 {
		t.Errorf("expected stock -3, got %d", it.StockOnHand)
	}

	known, err = inv.Adjust(ctx, "Namkeen", 1)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if known {
		t.Error("unknown item must report false")
	}

	if _, err := inv.Get(ctx, "Namkeen"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
