package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/logger"
)

// AnalyzeReport summarizes the drift between the ledger and the projection
// without mutating anything.
type AnalyzeReport struct {
	ReportID       string    `json:"reportID"`
	GeneratedAt    time.Time `json:"generatedAt"`
	LedgerVotes    int       `json:"ledgerVotes"`
	ProjectedVotes int64     `json:"projectedVotes"`
	// MissingTxHashes are ledger votes with no projection row
	MissingTxHashes []string `json:"missingTxHashes"`
	// OrphanedCount counts projection rows with no matching ledger vote
	OrphanedCount int `json:"orphanedCount"`
	// CorruptedVotes counts projection rows with an incomplete podium triple
	CorruptedVotes int `json:"corruptedVotes"`
}

// Analyze compares the full ledger history against the projection and reports
// missing and corrupted records. Read-only; Repair and Sync do the fixing.
func (c *Coordinator) Analyze(ctx context.Context) (*AnalyzeReport, error) {
	report := &AnalyzeReport{
		ReportID:    uuid.NewString(),
		GeneratedAt: c.clock.Now(),
	}

	events, err := c.ledger.GetVoteEvents(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger votes: %w", err)
	}
	report.LedgerVotes = len(events)

	txHashes := make([]string, 0, len(events))
	for _, e := range events {
		txHashes = append(txHashes, e.TxHash)
	}

	existing, err := c.store.GetExistingTxHashes(ctx, txHashes)
	if err != nil {
		return nil, fmt.Errorf("failed to look up projected votes: %w", err)
	}

	for _, e := range events {
		if _, ok := existing[e.TxHash]; !ok {
			report.MissingTxHashes = append(report.MissingTxHashes, e.TxHash)
		}
	}

	report.ProjectedVotes, err = c.store.CountVotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count projected votes: %w", err)
	}
	report.OrphanedCount = int(report.ProjectedVotes) - len(existing)

	corrupted, err := c.store.GetCorruptedVotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up corrupted votes: %w", err)
	}
	report.CorruptedVotes = len(corrupted)

	logger.InfoCtx(ctx, "Analyze report generated",
		zap.String("report_id", report.ReportID),
		zap.Int("ledger_votes", report.LedgerVotes),
		zap.Int64("projected_votes", report.ProjectedVotes),
		zap.Int("missing", len(report.MissingTxHashes)),
		zap.Int("orphaned", report.OrphanedCount),
		zap.Int("corrupted", report.CorruptedVotes))

	return report, nil
}
