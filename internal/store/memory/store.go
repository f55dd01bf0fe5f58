// Package memory is the default in-process store backend. It keeps the full
// ledger and inventory in memory, matching the ephemeral single-shop scope.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"zuno-agent/internal/core"
)

// Ledger implements core.LedgerStore. A single mutex serializes the
// "read next id, append record" sequence so ids are never duplicated or
// reused under concurrent submissions.
type Ledger struct {
	mu      sync.Mutex
	records []core.TransactionRecord
	nextID  int64
}

func NewLedger() *Ledger {
	return &Ledger{nextID: 1}
}

func (l *Ledger) Append(_ context.Context, rec core.TransactionRecord) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec.ID = l.nextID
	l.nextID++
	l.records = append(l.records, rec)
	return rec.ID, nil
}

func (l *Ledger) List(ctx context.Context) ([]core.TransactionRecord, error) {
	return l.Filter(ctx, core.TransactionFilter{})
}

func (l *Ledger) Filter(_ context.Context, f core.TransactionFilter) ([]core.TransactionRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	search := strings.ToLower(f.Search)
	out := make([]core.TransactionRecord, 0, len(l.records))
	// Insertion order is id order; walk backwards for most-recent-first.
	for i := len(l.records) - 1; i >= 0; i-- {
		r := l.records[i]
		if f.Kind != "" && r.Kind != f.Kind {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Item), search) &&
			!strings.Contains(strings.ToLower(r.Counterparty), search) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (l *Ledger) MarkPaid(_ context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.records {
		if l.records[i].ID == id {
			l.records[i].Status = core.StatusPaid
			return nil
		}
	}
	return core.ErrNotFound
}

// Inventory implements core.InventoryStore with a mutex around every stock
// mutation so concurrent adjustments to the same item never lose updates.
type Inventory struct {
	mu    sync.Mutex
	items map[string]core.InventoryItem
}

func NewInventory() *Inventory {
	return &Inventory{items: make(map[string]core.InventoryItem)}
}

func (v *Inventory) Get(_ context.Context, item string) (*core.InventoryItem, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	it, ok := v.items[item]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &it, nil
}

func (v *Inventory) Adjust(_ context.Context, item string, delta int64) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	it, ok := v.items[item]
	if !ok {
		return false, nil
	}
	it.StockOnHand += delta
	v.items[item] = it
	return true, nil
}

func (v *Inventory) List(_ context.Context) ([]core.InventoryItem, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]core.InventoryItem, 0, len(v.items))
	for _, it := range v.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Item < out[j].Item })
	return out, nil
}

func (v *Inventory) Put(_ context.Context, item core.InventoryItem) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.items[item.Item] = item
	return nil
}
