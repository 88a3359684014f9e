package repair

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/adapter"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/domain"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/ledger"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/logger"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/messaging"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/store"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/store/schema"
)

// Config holds repair service tuning
type Config struct {
	// RequestDelay is the pause between per-record ledger fetches, keeping the
	// repair loop under provider rate limits
	RequestDelay time.Duration
}

// Service backfills vote rows whose podium links were lost to a partial decode.
// Repairs re-read the authoritative event straight from the transaction receipt
// rather than trusting whatever the projection has.
type Service struct {
	config    Config
	ledger    ledger.Reader
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
}

// Result summarizes one RepairAll pass
type Result struct {
	Checked  int
	Repaired int
	// Unrepairable lists tx hashes whose events could not be re-fetched or
	// re-resolved; their rows are left untouched
	Unrepairable []string
}

// NewService creates a repair service. publisher may be nil.
func NewService(config Config, ledgerReader ledger.Reader, st store.Store, publisher messaging.Publisher, clock adapter.Clock) *Service {
	if config.RequestDelay == 0 {
		config.RequestDelay = 200 * time.Millisecond
	}
	return &Service{
		config:    config,
		ledger:    ledgerReader,
		store:     st,
		publisher: publisher,
		clock:     clock,
	}
}

// FindCorruptedRecords returns vote rows missing one or more podium links
func (s *Service) FindCorruptedRecords(ctx context.Context) ([]schema.Vote, error) {
	votes, err := s.store.GetCorruptedVotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query corrupted votes: %w", err)
	}
	return votes, nil
}

// Repair re-fetches the vote's transaction from the ledger and restores the
// missing podium links. Returns true when the row was updated, false when the
// record could not be repaired (the row is left as-is in that case).
func (s *Service) Repair(ctx context.Context, vote *schema.Vote) (bool, error) {
	event, err := s.ledger.GetTransactionVoteEvent(ctx, vote.TxHash)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotInTransaction) {
			return false, nil
		}
		return false, fmt.Errorf("failed to re-fetch transaction event: %w", err)
	}

	if !event.Valid() {
		return false, nil
	}

	brands, err := s.store.GetBrandsByOnLedgerIDs(ctx, event.BrandIDs)
	if err != nil {
		return false, fmt.Errorf("failed to resolve brands: %w", err)
	}
	b1, ok1 := brands[event.BrandIDs[0]]
	b2, ok2 := brands[event.BrandIDs[1]]
	b3, ok3 := brands[event.BrandIDs[2]]
	if !ok1 || !ok2 || !ok3 {
		return false, nil
	}

	if err := s.store.RepairVoteBrands(ctx, vote.TxHash, b1.ID, b2.ID, b3.ID, event.CostWei, event.DayBucket); err != nil {
		return false, fmt.Errorf("failed to update vote row: %w", err)
	}

	logger.InfoCtx(ctx, "Repaired vote",
		zap.String("tx_hash", vote.TxHash),
		zap.Int64s("brand_ids", event.BrandIDs))

	if s.publisher != nil {
		if err := s.publisher.PublishEvent(ctx, &domain.ProjectionEvent{
			Kind:      domain.ProjectionEventVoteRepaired,
			TxHash:    vote.TxHash,
			FID:       event.FID,
			BrandIDs:  event.BrandIDs,
			Timestamp: event.Timestamp,
		}); err != nil {
			logger.WarnCtx(ctx, "Failed to publish repair event",
				zap.String("tx_hash", vote.TxHash),
				zap.Error(err))
		}
	}

	return true, nil
}

// RepairAll repairs every corrupted record sequentially with a fixed delay
// between ledger fetches. Per-record failures are recorded and the loop
// continues; only the initial query can fail the pass.
func (s *Service) RepairAll(ctx context.Context) (*Result, error) {
	votes, err := s.FindCorruptedRecords(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{Checked: len(votes)}
	for i := range votes {
		vote := &votes[i]
		if i > 0 {
			s.clock.Sleep(s.config.RequestDelay)
		}

		repaired, err := s.Repair(ctx, vote)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("tx_hash", vote.TxHash))
			result.Unrepairable = append(result.Unrepairable, vote.TxHash)
			continue
		}
		if !repaired {
			result.Unrepairable = append(result.Unrepairable, vote.TxHash)
			continue
		}
		result.Repaired++
	}

	logger.InfoCtx(ctx, "Repair pass finished",
		zap.Int("checked", result.Checked),
		zap.Int("repaired", result.Repaired),
		zap.Int("unrepairable", len(result.Unrepairable)))

	return result, nil
}
