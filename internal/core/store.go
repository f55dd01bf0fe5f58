package core

import (
	"context"
	"errors"
)

// ErrNotFound is returned by store lookups for unknown records or items.
var ErrNotFound = errors.New("not found")

// TransactionFilter narrows a ledger query. Zero value matches everything.
type TransactionFilter struct {
	Kind   TransactionKind // empty string matches all kinds
	Search string          // case-insensitive substring over item and counterparty
}

// LedgerStore is the append-only transaction ledger, the single source of
// truth. Implementations must serialize id assignment so that ids are unique,
// monotonically increasing, and never reused. Records are never removed; the
// only permitted mutation is the Pending -> Paid status transition.
type LedgerStore interface {
	// Append assigns the next id, stamps it on the record, and stores it.
	Append(ctx context.Context, rec TransactionRecord) (int64, error)

	// List returns all records, most recent first.
	List(ctx context.Context) ([]TransactionRecord, error)

	// Filter returns matching records, most recent first.
	Filter(ctx context.Context, f TransactionFilter) ([]TransactionRecord, error)

	// MarkPaid transitions a Pending record to Paid. Settling an
	// already-paid record is a no-op. Unknown ids return ErrNotFound.
	MarkPaid(ctx context.Context, id int64) error
}

// InventoryStore tracks running stock balances per catalog item. Items are
// provisioned via Put (seed/catalog data) only; ingestion never creates them.
type InventoryStore interface {
	// Get returns the item, or ErrNotFound.
	Get(ctx context.Context, item string) (*InventoryItem, error)

	// Adjust applies delta to the item's stock if the item exists and
	// reports whether it did. An unknown item is not an error. No floor is
	// enforced: stock may go negative.
	Adjust(ctx context.Context, item string, delta int64) (bool, error)

	// List returns all items ordered by name.
	List(ctx context.Context) ([]InventoryItem, error)

	// Put creates or replaces a catalog item.
	Put(ctx context.Context, item InventoryItem) error
}

// IntentClassifier decides whether free-form text carries financial intent.
// A (nil, nil) return means "no transaction detected" — the safe default for
// ambiguous or conversational input. Implementations must be stateless and
// safe for concurrent use.
type IntentClassifier interface {
	Classify(ctx context.Context, text string) (*TransactionCandidate, error)
}
