package core

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Score bounds. The score starts at the floor and earns a bounded bonus from
// revenue volume and the cash-transaction ratio.
const (
	ScoreFloor   = 300
	ScoreCeiling = 900
)

// GrowthPolicy computes the period-over-period revenue growth figure for the
// snapshot. It is a named hook so the placeholder used when no history exists
// can be swapped for a real time-bucketed comparison without touching the
// engine.
type GrowthPolicy interface {
	GrowthRate(now time.Time, records []TransactionRecord) decimal.Decimal
}

// FixedGrowth always reports the same rate. Used when no transaction history
// is available to compare periods.
type FixedGrowth struct {
	Rate decimal.Decimal
}

func (p FixedGrowth) GrowthRate(time.Time, []TransactionRecord) decimal.Decimal {
	return p.Rate
}

// TrailingPeriodGrowth compares Sale revenue in the trailing period against
// the period before it, as a percentage delta. When the prior period has no
// revenue there is nothing to compare against and Fallback is reported.
type TrailingPeriodGrowth struct {
	Period   time.Duration
	Fallback decimal.Decimal
}

func (p TrailingPeriodGrowth) GrowthRate(now time.Time, records []TransactionRecord) decimal.Decimal {
	period := p.Period
	if period <= 0 {
		period = 30 * 24 * time.Hour
	}
	cutoff := now.Add(-period)
	prevCutoff := now.Add(-2 * period)

	current, previous := decimal.Zero, decimal.Zero
	for _, r := range records {
		if r.Kind != Sale {
			continue
		}
		switch {
		case !r.CreatedAt.Before(cutoff):
			current = current.Add(r.Total())
		case !r.CreatedAt.Before(prevCutoff):
			previous = previous.Add(r.Total())
		}
	}
	if previous.IsZero() {
		return p.Fallback
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(1)
}

// FinanceEngine derives the financial snapshot from the full ledger and the
// current inventory balances. It holds no state of its own: every call scans
// both stores, so the result is always consistent with the latest writes.
type FinanceEngine struct {
	ledger    LedgerStore
	inventory InventoryStore
	growth    GrowthPolicy
	now       func() time.Time
}

func NewFinanceEngine(ledger LedgerStore, inventory InventoryStore, growth GrowthPolicy) *FinanceEngine {
	return &FinanceEngine{
		ledger:    ledger,
		inventory: inventory,
		growth:    growth,
		now:       time.Now,
	}
}

// Snapshot recomputes the full financial picture. O(records + items), no side
// effects, safe to call repeatedly.
func (e *FinanceEngine) Snapshot(ctx context.Context) (*FinancialSnapshot, error) {
	records, err := e.ledger.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan ledger: %w", err)
	}
	items, err := e.inventory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan inventory: %w", err)
	}

	revenue, cogs, trapped := decimal.Zero, decimal.Zero, decimal.Zero
	saleCount := 0
	for _, r := range records {
		switch r.Kind {
		case Sale:
			revenue = revenue.Add(r.Total())
			saleCount++
		case Purchase:
			cogs = cogs.Add(r.Total())
		case Credit:
			trapped = trapped.Add(r.Total())
		}
	}

	inventoryValue := decimal.Zero
	for _, it := range items {
		inventoryValue = inventoryValue.Add(it.Value())
	}

	cashRatio := decimal.Zero
	if len(records) > 0 {
		cashRatio = decimal.NewFromInt(int64(saleCount)).Div(decimal.NewFromInt(int64(len(records))))
	}

	return &FinancialSnapshot{
		Score:            creditScore(revenue, cashRatio),
		TotalRevenue:     revenue,
		CostOfGoodsSold:  cogs,
		NetProfit:        revenue.Sub(cogs),
		TrappedCapital:   trapped,
		InventoryValue:   inventoryValue,
		DisposableIncome: revenue.Sub(trapped),
		GrowthRate:       e.growth.GrowthRate(e.now(), records),
	}, nil
}

// creditScore is the floor plus a bounded bonus: revenue scaled down by 100,
// plus up to 200 points for a high cash-transaction ratio. The bonus is
// capped so the score never leaves [ScoreFloor, ScoreCeiling], and it is
// monotone in both revenue and cash ratio.
func creditScore(revenue, cashRatio decimal.Decimal) int {
	bonus := revenue.Div(decimal.NewFromInt(100)).
		Add(cashRatio.Mul(decimal.NewFromInt(200)))
	maxBonus := decimal.NewFromInt(ScoreCeiling - ScoreFloor)
	if bonus.GreaterThan(maxBonus) {
		bonus = maxBonus
	}
	if bonus.IsNegative() {
		bonus = decimal.Zero
	}
	score := ScoreFloor + int(bonus.Round(0).IntPart())
	if score > ScoreCeiling {
		score = ScoreCeiling
	}
	if score < ScoreFloor {
		score = ScoreFloor
	}
	return score
}
