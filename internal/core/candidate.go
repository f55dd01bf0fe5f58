package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// IntentExtraction is the raw structured output of the language backend.
// Every field is present in the response schema; when IsTransaction is false
// the remaining fields are ignored entirely.
type IntentExtraction struct {
	IsTransaction bool    `json:"is_transaction" jsonschema_description:"True only when the utterance describes an actual financial transaction. False for small talk, weather, gossip, or anything ambiguous."`
	Item          string  `json:"item" jsonschema_description:"The goods involved, e.g. 'Chini' or 'Bread'. Empty when is_transaction is false."`
	Quantity      float64 `json:"quantity" jsonschema_description:"Number of units involved. 0 when is_transaction is false."`
	UnitPrice     float64 `json:"unit_price" jsonschema_description:"Price per single unit. If the utterance only states a total, leave this 0 and fill total instead."`
	Total         float64 `json:"total" jsonschema_description:"Total amount stated in the utterance, when the price was given as a total rather than per unit. 0 otherwise."`
	PaymentMode   string  `json:"payment_mode" jsonschema:"enum=Cash,enum=Credit,enum=Purchase" jsonschema_description:"Cash for an immediate sale (nagad), Credit for udhaar owed by a named customer, Purchase when the shop bought stock from a supplier."`
	Counterparty  string  `json:"counterparty" jsonschema_description:"The customer or supplier named in the utterance, empty if none."`
	IntentProof   string  `json:"intent_proof" jsonschema_description:"The phrase from the utterance that justified the extraction, normalized."`
}

// Candidate converts the extraction into a transaction candidate, or nil when
// the backend found no financial intent.
func (e IntentExtraction) Candidate() *TransactionCandidate {
	if !e.IsTransaction {
		return nil
	}
	return &TransactionCandidate{
		Item:         e.Item,
		Quantity:     int64(e.Quantity),
		UnitPrice:    decimal.NewFromFloat(e.UnitPrice),
		Total:        decimal.NewFromFloat(e.Total),
		Mode:         PaymentMode(e.PaymentMode),
		Counterparty: e.Counterparty,
		IntentProof:  e.IntentProof,
	}
}

// TransactionCandidate is a classified utterance awaiting ledger ingestion.
type TransactionCandidate struct {
	Item         string
	Quantity     int64
	UnitPrice    decimal.Decimal
	Total        decimal.Decimal
	Mode         PaymentMode
	Counterparty string
	IntentProof  string
}

// Normalize cleans up backend output before validation. Utterances commonly
// state totals rather than unit prices ("2 kilo 80 rupaye ki"); the unit
// price is derived by division in that case.
func (c *TransactionCandidate) Normalize() {
	c.Item = strings.TrimSpace(c.Item)
	c.Counterparty = strings.TrimSpace(c.Counterparty)
	c.IntentProof = strings.TrimSpace(c.IntentProof)

	if c.Counterparty == "" {
		c.Counterparty = WalkInCounterparty
	}
	if c.Mode == "" {
		c.Mode = PayCash
	}
	if c.UnitPrice.IsZero() && c.Total.IsPositive() && c.Quantity > 0 {
		c.UnitPrice = c.Total.Div(decimal.NewFromInt(c.Quantity))
	}
}

// Validate rejects candidates the ledger cannot accept. A rejected candidate
// is discarded the same way a non-transaction utterance is.
func (c *TransactionCandidate) Validate() error {
	if c.Item == "" {
		return errors.New("candidate must name an item")
	}
	if c.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", c.Quantity)
	}
	if c.UnitPrice.IsNegative() {
		return fmt.Errorf("unit price cannot be negative, got %s", c.UnitPrice)
	}
	switch c.Mode {
	case PayCash, PayCredit, PayPurchase:
	default:
		return fmt.Errorf("unknown payment mode %q", c.Mode)
	}
	return nil
}

// Record builds the ledger record for this candidate. Credit transactions
// start Pending; cash movement is Paid on arrival.
func (c *TransactionCandidate) Record(now time.Time, prov Provenance) TransactionRecord {
	kind := c.Mode.Kind()
	status := StatusPaid
	if kind == Credit {
		status = StatusPending
	}
	return TransactionRecord{
		Item:         c.Item,
		Quantity:     c.Quantity,
		UnitPrice:    c.UnitPrice,
		Kind:         kind,
		Category:     kind.Category(),
		Status:       status,
		Counterparty: c.Counterparty,
		CreatedAt:    now,
		Provenance:   prov,
	}
}

// StockDelta is the inventory effect of the candidate under the sign policy:
// goods leave the shop on Sale and Credit, stock is replenished on Purchase.
func (c *TransactionCandidate) StockDelta() int64 {
	if c.Mode.Kind() == Purchase {
		return c.Quantity
	}
	return -c.Quantity
}
