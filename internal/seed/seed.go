// Package seed loads the demo catalog and opening ledger used in development
// and tests. Inventory items exist only through seeding: ingestion never
// creates catalog entries.
package seed

import (
	"context"
	"fmt"
	"time"

	"zuno-agent/internal/core"

	"github.com/shopspring/decimal"
)

// Catalog is the shop's item master: starting stock, reorder thresholds, and
// unit costs for inventory valuation.
func Catalog() []core.InventoryItem {
	return []core.InventoryItem{
		{Item: "Chini (Sugar)", StockOnHand: 50, ReorderThreshold: 10, UnitCost: decimal.NewFromInt(35)},
		{Item: "Doodh (Milk)", StockOnHand: 5, ReorderThreshold: 10, UnitCost: decimal.NewFromInt(18)},
		{Item: "Aata (Flour)", StockOnHand: 100, ReorderThreshold: 20, UnitCost: decimal.NewFromInt(30)},
		{Item: "Chai Patti (Tea)", StockOnHand: 2, ReorderThreshold: 5, UnitCost: decimal.NewFromInt(120)},
	}
}

// DemoLedger is a small opening history so fresh installs show a populated
// dashboard. Timestamps are spread over the days before now so the growth
// comparison has something to chew on.
func DemoLedger(now time.Time) []core.TransactionRecord {
	day := 24 * time.Hour
	return []core.TransactionRecord{
		{
			Item: "Chini (Sugar)", Quantity: 2, UnitPrice: decimal.NewFromInt(40),
			Kind: core.Sale, Category: core.CategoryInventory, Status: core.StatusPaid,
			Counterparty: core.WalkInCounterparty, CreatedAt: now.Add(-4 * day),
			Provenance: core.Provenance{CaptureRef: "capture://seed-001", IntentProof: "Ek kilo chini bechi cash mein"},
		},
		{
			Item: "Aata (Flour)", Quantity: 5, UnitPrice: decimal.NewFromInt(35),
			Kind: core.Credit, Category: core.CategoryUdhaar, Status: core.StatusPending,
			Counterparty: "Ramesh Bhai", CreatedAt: now.Add(-3 * day),
			Provenance: core.Provenance{CaptureRef: "capture://seed-002", IntentProof: "Ramesh ko 5 kilo aata udhaar diya"},
		},
		{
			Item: "Chai Patti (Tea)", Quantity: 1, UnitPrice: decimal.NewFromInt(150),
			Kind: core.Purchase, Category: core.CategoryInventory, Status: core.StatusPaid,
			Counterparty: "Supplier Alpha", CreatedAt: now.Add(-2 * day),
			Provenance: core.Provenance{CaptureRef: "capture://seed-003", IntentProof: "Supplier se chai patti kharidi"},
		},
		{
			Item: "Doodh (Milk)", Quantity: 10, UnitPrice: decimal.NewFromInt(20),
			Kind: core.Sale, Category: core.CategoryInventory, Status: core.StatusPaid,
			Counterparty: core.WalkInCounterparty, CreatedAt: now.Add(-1 * day),
			Provenance: core.Provenance{CaptureRef: "capture://seed-004", IntentProof: "10 packet doodh becha"},
		},
	}
}

// Apply provisions the catalog and, when withHistory is set, appends the
// demo ledger.
func Apply(ctx context.Context, ledger core.LedgerStore, inventory core.InventoryStore, withHistory bool) error {
	for _, it := range Catalog() {
		if err := inventory.Put(ctx, it); err != nil {
			return fmt.Errorf("seed item %s: %w", it.Item, err)
		}
	}
	if !withHistory {
		return nil
	}
	for _, rec := range DemoLedger(time.Now()) {
		if _, err := ledger.Append(ctx, rec); err != nil {
			return fmt.Errorf("seed transaction for %s: %w", rec.Item, err)
		}
	}
	return nil
}
