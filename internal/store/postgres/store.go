// Package postgres is the durable store backend. It implements the same
// store interfaces as the memory backend so it can be swapped in without
// touching the ingestion or aggregation logic.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"zuno-agent/internal/core"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the ledger and inventory tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS transactions (
			id            BIGSERIAL PRIMARY KEY,
			item          TEXT NOT NULL,
			quantity      BIGINT NOT NULL,
			unit_price    NUMERIC(14,4) NOT NULL,
			kind          TEXT NOT NULL,
			category      TEXT NOT NULL,
			status        TEXT NOT NULL,
			counterparty  TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			capture_ref   TEXT NOT NULL DEFAULT '',
			intent_proof  TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS inventory_items (
			item              TEXT PRIMARY KEY,
			stock_on_hand     BIGINT NOT NULL,
			reorder_threshold BIGINT NOT NULL,
			unit_cost         NUMERIC(14,4) NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Ledger implements core.LedgerStore on top of Postgres. Id assignment is
// serialized by the BIGSERIAL sequence; ids are unique and never reused.
type Ledger struct {
	pool *pgxpool.Pool
}

func NewLedger(pool *pgxpool.Pool) *Ledger {
	return &Ledger{pool: pool}
}

func (l *Ledger) Append(ctx context.Context, rec core.TransactionRecord) (int64, error) {
	var id int64
	err := l.pool.QueryRow(ctx, `
		INSERT INTO transactions
			(item, quantity, unit_price, kind, category, status, counterparty, created_at, capture_ref, intent_proof)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, rec.Item, rec.Quantity, rec.UnitPrice, string(rec.Kind), string(rec.Category),
		string(rec.Status), rec.Counterparty, rec.CreatedAt,
		rec.Provenance.CaptureRef, rec.Provenance.IntentProof).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return id, nil
}

const selectColumns = `id, item, quantity, unit_price, kind, category, status, counterparty, created_at, capture_ref, intent_proof`

func (l *Ledger) List(ctx context.Context) ([]core.TransactionRecord, error) {
	return l.Filter(ctx, core.TransactionFilter{})
}

func (l *Ledger) Filter(ctx context.Context, f core.TransactionFilter) ([]core.TransactionRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM transactions WHERE ($1 = '' OR kind = $1)
		AND ($2 = '' OR item ILIKE '%' || $2 || '%' OR counterparty ILIKE '%' || $2 || '%')
		ORDER BY id DESC`
	rows, err := l.pool.Query(ctx, query, string(f.Kind), f.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var records []core.TransactionRecord
	for rows.Next() {
		var r core.TransactionRecord
		if err := rows.Scan(&r.ID, &r.Item, &r.Quantity, &r.UnitPrice,
			&r.Kind, &r.Category, &r.Status, &r.Counterparty, &r.CreatedAt,
			&r.Provenance.CaptureRef, &r.Provenance.IntentProof); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (l *Ledger) MarkPaid(ctx context.Context, id int64) error {
	tag, err := l.pool.Exec(ctx,
		`UPDATE transactions SET status = $1 WHERE id = $2`,
		string(core.StatusPaid), id)
	if err != nil {
		return fmt.Errorf("failed to settle transaction %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

// Inventory implements core.InventoryStore on top of Postgres. Adjustments
// are single atomic UPDATEs, so concurrent deltas on the same item serialize
// at the row level with no lost updates.
type Inventory struct {
	pool *pgxpool.Pool
}

func NewInventory(pool *pgxpool.Pool) *Inventory {
	return &Inventory{pool: pool}
}

func (v *Inventory) Get(ctx context.Context, item string) (*core.InventoryItem, error) {
	var it core.InventoryItem
	err := v.pool.QueryRow(ctx, `
		SELECT item, stock_on_hand, reorder_threshold, unit_cost
		FROM inventory_items WHERE item = $1
	`, item).Scan(&it.Item, &it.StockOnHand, &it.ReorderThreshold, &it.UnitCost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch item %s: %w", item, err)
	}
	return &it, nil
}

func (v *Inventory) Adjust(ctx context.Context, item string, delta int64) (bool, error) {
	tag, err := v.pool.Exec(ctx,
		`UPDATE inventory_items SET stock_on_hand = stock_on_hand + $1 WHERE item = $2`,
		delta, item)
	if err != nil {
		return false, fmt.Errorf("failed to adjust stock for %s: %w", item, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (v *Inventory) List(ctx context.Context) ([]core.InventoryItem, error) {
	rows, err := v.pool.Query(ctx, `
		SELECT item, stock_on_hand, reorder_threshold, unit_cost
		FROM inventory_items ORDER BY item
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var items []core.InventoryItem
	for rows.Next() {
		var it core.InventoryItem
		if err := rows.Scan(&it.Item, &it.StockOnHand, &it.ReorderThreshold, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (v *Inventory) Put(ctx context.Context, item core.InventoryItem) error {
	_, err := v.pool.Exec(ctx, `
		INSERT INTO inventory_items (item, stock_on_hand, reorder_threshold, unit_cost)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (item) DO UPDATE SET
			stock_on_hand = EXCLUDED.stock_on_hand,
			reorder_threshold = EXCLUDED.reorder_threshold,
			unit_cost = EXCLUDED.unit_cost
	`, item.Item, item.StockOnHand, item.ReorderThreshold, item.UnitCost)
	if err != nil {
		return fmt.Errorf("failed to upsert item %s: %w", item.Item, err)
	}
	return nil
}
