package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// IngestResult is what a caller gets back for one utterance. Accepted is
// false whenever no ledger record resulted, regardless of the reason.
type IngestResult struct {
	Accepted bool
	Record   *TransactionRecord
}

// Ingestor orchestrates classifier -> ledger append -> inventory adjustment
// for one utterance. Classification runs without holding any store lock; the
// stores serialize their own mutations. There is no transactional guarantee
// across the two stores: a ledger record stands even when the inventory
// adjustment is skipped or fails.
type Ingestor struct {
	classifier IntentClassifier
	ledger     LedgerStore
	inventory  InventoryStore
	log        zerolog.Logger
	now        func() time.Time
}

func NewIngestor(classifier IntentClassifier, ledger LedgerStore, inventory InventoryStore, log zerolog.Logger) *Ingestor {
	return &Ingestor{
		classifier: classifier,
		ledger:     ledger,
		inventory:  inventory,
		log:        log,
		now:        time.Now,
	}
}

// Submit runs the full ingestion pipeline for one raw utterance.
//
// It never fails loudly: classifier backend errors, malformed extractions,
// and unknown inventory items all degrade to "nothing happened" and are
// logged rather than surfaced. The returned error is reserved for ledger
// append failures — the one step that must not be silently dropped.
func (g *Ingestor) Submit(ctx context.Context, text string) (*IngestResult, error) {
	candidate, err := g.classifier.Classify(ctx, text)
	if err != nil {
		// Fails closed: a broken backend is treated as "no intent".
		g.log.Warn().Err(err).Msg("classifier failed, utterance discarded")
		return &IngestResult{Accepted: false}, nil
	}
	if candidate == nil {
		g.log.Debug().Str("text", text).Msg("no financial intent")
		return &IngestResult{Accepted: false}, nil
	}

	candidate.Normalize()
	if err := candidate.Validate(); err != nil {
		g.log.Warn().Err(err).Str("text", text).Msg("candidate rejected, utterance discarded")
		return &IngestResult{Accepted: false}, nil
	}

	proof := candidate.IntentProof
	if proof == "" {
		proof = text
	}
	rec := candidate.Record(g.now(), Provenance{
		CaptureRef:  fmt.Sprintf("capture://%s", uuid.NewString()),
		IntentProof: proof,
	})

	id, err := g.ledger.Append(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("ledger append: %w", err)
	}
	rec.ID = id

	// Best effort: unknown items post to the ledger but leave inventory
	// untouched, and a failed adjustment never rolls the ledger back.
	known, err := g.inventory.Adjust(ctx, rec.Item, candidate.StockDelta())
	switch {
	case err != nil:
		g.log.Error().Err(err).Int64("tx_id", id).Str("item", rec.Item).
			Msg("inventory adjustment failed, ledger record stands")
	case !known:
		g.log.Debug().Int64("tx_id", id).Str("item", rec.Item).
			Msg("item not in catalog, inventory untouched")
	}

	g.log.Info().
		Int64("tx_id", id).
		Str("item", rec.Item).
		Int64("qty", rec.Quantity).
		Str("kind", string(rec.Kind)).
		Str("total", rec.Total().StringFixed(2)).
		Msg("transaction recorded")

	return &IngestResult{Accepted: true, Record: &rec}, nil
}

// SettleCredit transitions a pending Udhaar record to Paid.
func (g *Ingestor) SettleCredit(ctx context.Context, id int64) error {
	if err := g.ledger.MarkPaid(ctx, id); err != nil {
		return fmt.Errorf("settle credit %d: %w", id, err)
	}
	g.log.Info().Int64("tx_id", id).Msg("credit settled")
	return nil
}
