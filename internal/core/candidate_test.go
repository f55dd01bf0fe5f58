package core_test

import (
	"testing"
	"time"

	"zuno-agent/internal/core"

	"github.com/shopspring/decimal"
)

func TestCandidate_TotalDerivesUnitPrice(t *testing.T) {
	// "2 kilo chini 80 rupaye ki" — the utterance states a total, not a unit price.
	c := core.TransactionCandidate{
		Item:     "Chini (Sugar)",
		Quantity: 2,
		Total:    decimal.NewFromInt(80),
		Mode:     core.PayCredit,
	}
	c.Normalize()
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if !c.UnitPrice.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected derived unit price 40, got %s", c.UnitPrice)
	}
}

func TestCandidate_NormalizationAndValidation(t *testing.T) {
	tests := []struct {
		name      string
		candidate core.TransactionCandidate
		expectErr bool
	}{
		{
			name: "happy path cash sale",
			candidate: core.TransactionCandidate{
				Item: "Bread", Quantity: 1, UnitPrice: decimal.NewFromInt(30), Mode: core.PayCash,
			},
		},
		{
			name: "missing item",
			candidate: core.TransactionCandidate{
				Item: "   ", Quantity: 1, UnitPrice: decimal.NewFromInt(30), Mode: core.PayCash,
			},
			expectErr: true,
		},
		{
			name: "zero quantity",
			candidate: core.TransactionCandidate{
				Item: "Bread", Quantity: 0, UnitPrice: decimal.NewFromInt(30), Mode: core.PayCash,
			},
			expectErr: true,
		},
		{
			name: "negative quantity",
			candidate: core.TransactionCandidate{
				Item: "Bread", Quantity: -2, UnitPrice: decimal.NewFromInt(30), Mode: core.PayCash,
			},
			expectErr: true,
		},
		{
			name: "negative unit price",
			candidate: core.TransactionCandidate{
				Item: "Bread", Quantity: 1, UnitPrice: decimal.NewFromInt(-5), Mode: core.PayCash,
			},
			expectErr: true,
		},
		{
			name: "unknown payment mode",
			candidate: core.TransactionCandidate{
				Item: "Bread", Quantity: 1, UnitPrice: decimal.NewFromInt(30), Mode: "Barter",
			},
			expectErr: true,
		},
		{
			name: "empty mode defaults to cash",
			candidate: core.TransactionCandidate{
				Item: "Bread", Quantity: 1, UnitPrice: decimal.NewFromInt(30),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.candidate
			c.Normalize()
			err := c.Validate()
			if tt.expectErr && err == nil {
				t.Errorf("expected validation error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestCandidate_NormalizeDefaultsCounterparty(t *testing.T) {
	c := core.TransactionCandidate{Item: "Bread", Quantity: 1, UnitPrice: decimal.NewFromInt(30)}
	c.Normalize()
	if c.Counterparty != core.WalkInCounterparty {
		t.Errorf("expected %q, got %q", core.WalkInCounterparty, c.Counterparty)
	}
}

func TestCandidate_Record(t *testing.T) {
	now := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		mode       core.PaymentMode
		kind       core.TransactionKind
		category   core.Category
		status     core.TransactionStatus
		stockDelta int64
	}{
		{core.PayCash, core.Sale, core.CategoryInventory, core.StatusPaid, -3},
		{core.PayCredit, core.Credit, core.CategoryUdhaar, core.StatusPending, -3},
		{core.PayPurchase, core.Purchase, core.CategoryInventory, core.StatusPaid, 3},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			c := core.TransactionCandidate{
				Item: "Chini (Sugar)", Quantity: 3,
				UnitPrice: decimal.NewFromInt(40), Mode: tt.mode,
				Counterparty: "Ramesh",
			}
			rec := c.Record(now, core.Provenance{IntentProof: "test"})
			if rec.Kind != tt.kind {
				t.Errorf("kind: expected %s, got %s", tt.kind, rec.Kind)
			}
			if rec.Category != tt.category {
				t.Errorf("category: expected %s, got %s", tt.category, rec.Category)
			}
			if rec.Status != tt.status {
				t.Errorf("status: expected %s, got %s", tt.status, rec.Status)
			}
			if !rec.CreatedAt.Equal(now) {
				t.Errorf("created at: expected %s, got %s", now, rec.CreatedAt)
			}
			if got := c.StockDelta(); got != tt.stockDelta {
				t.Errorf("stock delta: expected %d, got %d", tt.stockDelta, got)
			}
			if !rec.Total().Equal(decimal.NewFromInt(120)) {
				t.Errorf("total: expected 120, got %s", rec.Total())
			}
		})
	}
}

func TestIntentExtraction_Candidate(t *testing.T) {
	if c := (core.IntentExtraction{IsTransaction: false, Item: "noise"}).Candidate(); c != nil {
		t.Errorf("expected nil candidate for non-transaction, got %+v", c)
	}

	e := core.IntentExtraction{
		IsTransaction: true,
		Item:          "Chini",
		Quantity:      2,
		Total:         80,
		PaymentMode:   "Credit",
		Counterparty:  "Ramesh",
	}
	c := e.Candidate()
	if c == nil {
		t.Fatal("expected candidate, got nil")
	}
	c.Normalize()
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if !c.UnitPrice.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected unit price 40, got %s", c.UnitPrice)
	}
}
