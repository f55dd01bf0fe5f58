package app

import (
	"context"
	"fmt"
	"io"

	"zuno-agent/internal/core"
)

type appService struct {
	ingestor  *core.Ingestor
	finance   *core.FinanceEngine
	ledger    core.LedgerStore
	inventory core.InventoryStore
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	ingestor *core.Ingestor,
	finance *core.FinanceEngine,
	ledger core.LedgerStore,
	inventory core.InventoryStore,
) ApplicationService {
	return &appService{
		ingestor:  ingestor,
		finance:   finance,
		ledger:    ledger,
		inventory: inventory,
	}
}

func (s *appService) SubmitUtterance(ctx context.Context, text string) (*SubmitResult, error) {
	res, err := s.ingestor.Submit(ctx, text)
	if err != nil {
		return nil, err
	}
	return &SubmitResult{Accepted: res.Accepted, Record: res.Record}, nil
}

func (s *appService) ListTransactions(ctx context.Context, q TransactionQuery) (*TransactionListResult, error) {
	filter := core.TransactionFilter{
		Kind:   core.TransactionKind(q.Kind),
		Search: q.Search,
	}
	records, err := s.ledger.Filter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return &TransactionListResult{Transactions: records}, nil
}

func (s *appService) GetFinancialSnapshot(ctx context.Context) (*SnapshotResult, error) {
	snap, err := s.finance.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &SnapshotResult{Snapshot: snap}, nil
}

func (s *appService) ListInventory(ctx context.Context) (*InventoryResult, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	lines := make([]InventoryLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, InventoryLine{InventoryItem: it, LowStock: it.LowStock()})
	}
	return &InventoryResult{Items: lines}, nil
}

func (s *appService) SettleCredit(ctx context.Context, id int64) error {
	return s.ingestor.SettleCredit(ctx, id)
}

func (s *appService) ExportLedgerCSV(ctx context.Context, w io.Writer) error {
	records, err := s.ledger.List(ctx)
	if err != nil {
		return fmt.Errorf("export ledger: %w", err)
	}
	return core.WriteLedgerCSV(w, records)
}

func (s *appService) ExportLedgerXLSX(ctx context.Context, w io.Writer) error {
	records, err := s.ledger.List(ctx)
	if err != nil {
		return fmt.Errorf("export ledger: %w", err)
	}
	return core.WriteLedgerXLSX(w, records)
}
