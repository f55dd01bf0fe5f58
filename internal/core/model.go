package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	Sale     TransactionKind = "Sale"
	Purchase TransactionKind = "Purchase"
	Credit   TransactionKind = "Credit"
)

type Category string

const (
	CategoryInventory Category = "Inventory"
	CategoryUdhaar    Category = "Udhaar"
)

// Category is derived from the kind: deferred-payment sales (Udhaar) live in
// the credit ledger, everything else is inventory movement.
func (k TransactionKind) Category() Category {
	if k == Credit {
		return CategoryUdhaar
	}
	return CategoryInventory
}

type TransactionStatus string

const (
	StatusPaid    TransactionStatus = "Paid"
	StatusPending TransactionStatus = "Pending"
)

// PaymentMode is how the counterparty settles, as extracted from the
// utterance. Cash means money changed hands now (a Sale), Credit means
// Udhaar, Purchase means the shop bought stock from a supplier.
type PaymentMode string

const (
	PayCash     PaymentMode = "Cash"
	PayCredit   PaymentMode = "Credit"
	PayPurchase PaymentMode = "Purchase"
)

// Kind maps the payment mode to the ledger transaction kind.
func (m PaymentMode) Kind() TransactionKind {
	switch m {
	case PayCredit:
		return Credit
	case PayPurchase:
		return Purchase
	default:
		return Sale
	}
}

// WalkInCounterparty is recorded when the utterance names no customer.
const WalkInCounterparty = "Walk-in"

// Provenance is the audit trail back to the utterance that produced a record.
type Provenance struct {
	CaptureRef  string `json:"capture_ref,omitempty"`
	IntentProof string `json:"intent_proof,omitempty"`
}

// TransactionRecord is a single ledger entry. Once appended it is immutable
// apart from the Status transition Pending -> Paid.
type TransactionRecord struct {
	ID           int64             `json:"id"`
	Item         string            `json:"item"`
	Quantity     int64             `json:"quantity"`
	UnitPrice    decimal.Decimal   `json:"unit_price"`
	Kind         TransactionKind   `json:"kind"`
	Category     Category          `json:"category"`
	Status       TransactionStatus `json:"status"`
	Counterparty string            `json:"counterparty"`
	CreatedAt    time.Time         `json:"created_at"`
	Provenance   Provenance        `json:"provenance"`
}

// Total is the monetary value of the record: quantity x unit price.
func (r TransactionRecord) Total() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(r.Quantity))
}

// InventoryItem is the running stock balance for one catalog item.
// StockOnHand may go negative: recorded sales exceeding recorded stock are a
// stock-out signal for downstream consumers, not an error.
type InventoryItem struct {
	Item             string          `json:"item"`
	StockOnHand      int64           `json:"stock_on_hand"`
	ReorderThreshold int64           `json:"reorder_threshold"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
}

// LowStock reports whether the item is at or below its reorder threshold.
func (i InventoryItem) LowStock() bool {
	return i.StockOnHand <= i.ReorderThreshold
}

// Value is the stock valuation for this item: on-hand quantity x unit cost.
func (i InventoryItem) Value() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(i.StockOnHand))
}

// FinancialSnapshot is derived from the full ledger plus the inventory
// balances. It is recomputed on every read and never cached across writes.
type FinancialSnapshot struct {
	Score            int             `json:"score"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	CostOfGoodsSold  decimal.Decimal `json:"cogs"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	TrappedCapital   decimal.Decimal `json:"trapped_capital"`
	InventoryValue   decimal.Decimal `json:"inventory_value"`
	DisposableIncome decimal.Decimal `json:"disposable_income"`
	GrowthRate       decimal.Decimal `json:"growth_rate"`
}
