package app

import "zuno-agent/internal/core"

// TransactionQuery narrows ListTransactions. Zero value returns everything.
type TransactionQuery struct {
	Kind   string // "Sale", "Purchase", "Credit", or empty for all
	Search string // substring over item and counterparty
}

// SubmitResult is returned by SubmitUtterance.
type SubmitResult struct {
	Accepted bool                    `json:"accepted"`
	Record   *core.TransactionRecord `json:"record,omitempty"`
}

// TransactionListResult is returned by ListTransactions.
type TransactionListResult struct {
	Transactions []core.TransactionRecord `json:"transactions"`
}

// SnapshotResult is returned by GetFinancialSnapshot.
type SnapshotResult struct {
	Snapshot *core.FinancialSnapshot `json:"snapshot"`
}

// InventoryLine is one catalog item plus its derived low-stock signal.
type InventoryLine struct {
	core.InventoryItem
	LowStock bool `json:"low_stock"`
}

// InventoryResult is returned by ListInventory.
type InventoryResult struct {
	Items []InventoryLine `json:"items"`
}
