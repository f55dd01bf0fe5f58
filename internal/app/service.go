package app

import (
	"context"
	"io"
)

// ApplicationService is the single interface all adapters (REPL, CLI, Web)
// call. It decouples presentation from the ingestion and aggregation core.
// Implementations must contain no display logic of any kind.
type ApplicationService interface {
	// SubmitUtterance runs one raw utterance through the ingestion
	// pipeline. Accepted is false whenever no ledger record resulted; the
	// call never fails on classification problems.
	SubmitUtterance(ctx context.Context, text string) (*SubmitResult, error)

	// ListTransactions returns ledger records, most recent first,
	// optionally narrowed by kind and a free-text search.
	ListTransactions(ctx context.Context, q TransactionQuery) (*TransactionListResult, error)

	// GetFinancialSnapshot recomputes the derived financial state from the
	// full ledger and inventory.
	GetFinancialSnapshot(ctx context.Context) (*SnapshotResult, error)

	// ListInventory returns all catalog items with their low-stock flags.
	ListInventory(ctx context.Context) (*InventoryResult, error)

	// SettleCredit marks a pending Udhaar record as paid.
	SettleCredit(ctx context.Context, id int64) error

	// ExportLedgerCSV writes the tabular ledger export to w.
	ExportLedgerCSV(ctx context.Context, w io.Writer) error

	// ExportLedgerXLSX writes the ledger as an Excel workbook to w.
	ExportLedgerXLSX(ctx context.Context, w io.Writer) error
}
