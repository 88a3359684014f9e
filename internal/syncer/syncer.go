package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/adapter"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/domain"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/ledger"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/logger"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/messaging"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/store"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/store/schema"
)

// Options selects what one reconciliation pass covers. WindowHours = 0 means
// full resync over all ledger history; otherwise only events newer than
// now - WindowHours are considered. Callers deliberately pass a window wider
// than their schedule interval to tolerate clock drift and scheduler gaps.
type Options struct {
	WindowHours     int
	SyncPowerLevels bool
	SyncVotes       bool
	DryRun          bool
}

// Config holds coordinator tuning
type Config struct {
	// BatchSize bounds how many events are processed per worker-pool batch
	BatchSize int
	// WorkerPoolSize bounds intra-batch concurrency
	WorkerPoolSize int
	// SeasonTwoStartDay is the first day bucket of the season-two scoring regime
	SeasonTwoStartDay int64
}

// RankEnqueuer is the slice of the ranking aggregator the coordinator needs
type RankEnqueuer interface {
	Enqueue(brandID int64)
}

// Coordinator drives one reconciliation pass: fetch ledger events, deduplicate
// against the projection, bootstrap missing linked entities, write new rows,
// feed the downstream aggregates.
type Coordinator struct {
	config    Config
	ledger    ledger.Reader
	store     store.Store
	ranks     RankEnqueuer
	publisher messaging.Publisher
	clock     adapter.Clock
}

// New creates a sync coordinator. publisher may be nil when no broker is wired
// (operator CLI runs); ranks may be nil likewise.
func New(config Config, ledgerReader ledger.Reader, st store.Store, ranks RankEnqueuer, publisher messaging.Publisher, clock adapter.Clock) *Coordinator {
	if config.BatchSize == 0 {
		config.BatchSize = 50
	}
	if config.WorkerPoolSize == 0 {
		config.WorkerPoolSize = 10
	}
	return &Coordinator{
		config:    config,
		ledger:    ledgerReader,
		store:     st,
		ranks:     ranks,
		publisher: publisher,
		clock:     clock,
	}
}

// Sync runs one reconciliation pass and returns its stats. It never returns an
// error: per-item failures are accumulated in the stats and connectivity
// failures abort the remaining work for that sync type with Fatal set, leaving
// the next scheduled run to retry via its window overlap.
func (c *Coordinator) Sync(ctx context.Context, opts Options) *domain.SyncStats {
	stats := &domain.SyncStats{
		RunID:     ulid.MustNewDefault(c.clock.Now()).String(),
		StartedAt: c.clock.Now(),
	}

	var since time.Time
	if opts.WindowHours > 0 {
		since = c.clock.Now().Add(-time.Duration(opts.WindowHours) * time.Hour)
	}

	logger.InfoCtx(ctx, "Starting sync run",
		zap.String("run_id", stats.RunID),
		zap.Int("window_hours", opts.WindowHours),
		zap.Bool("power_levels", opts.SyncPowerLevels),
		zap.Bool("votes", opts.SyncVotes),
		zap.Bool("dry_run", opts.DryRun))

	if opts.SyncPowerLevels {
		c.syncPowerLevels(ctx, since, opts.DryRun, stats)
	}
	if opts.SyncVotes {
		c.syncVotes(ctx, since, opts.DryRun, stats)
	}

	stats.FinishedAt = c.clock.Now()

	logger.InfoCtx(ctx, "Sync run finished",
		zap.String("run_id", stats.RunID),
		zap.Int("checked_votes", stats.CheckedVotes),
		zap.Int("inserted_votes", stats.InsertedVotes),
		zap.Int("updated_powers", stats.UpdatedPowers),
		zap.Int("created_users", stats.CreatedUsers),
		zap.Int("errors", len(stats.Errors)),
		zap.Bool("fatal", stats.Fatal))

	return stats
}

// syncPowerLevels reconciles mirrored power levels. Only mismatches are
// written; a matching level is an idempotent no-op.
func (c *Coordinator) syncPowerLevels(ctx context.Context, since time.Time, dryRun bool, stats *domain.SyncStats) {
	events, err := c.ledger.GetPowerLevelEvents(ctx, since)
	if err != nil {
		stats.Fatal = true
		stats.AddError(fmt.Sprintf("power-level fetch failed: %v", err))
		return
	}

	// Events are ascending, so the last value per fid is the current one
	latest := make(map[int64]domain.PowerLevelEvent)
	for _, e := range events {
		latest[e.FID] = e
	}
	stats.CheckedPowers = len(latest)
	if len(latest) == 0 {
		return
	}

	fids := make([]int64, 0, len(latest))
	for fid := range latest {
		fids = append(fids, fid)
	}

	users, err := c.store.GetUsersByFIDs(ctx, fids)
	if err != nil {
		stats.Fatal = true
		stats.AddError(fmt.Sprintf("user lookup failed: %v", err))
		return
	}

	for fid, event := range latest {
		user, ok := users[fid]
		if !ok {
			// Power-up arrived before any vote: bootstrap the user so the
			// level isn't lost
			created, err := c.bootstrapUser(ctx, fid, event.PowerLevel, dryRun)
			if err != nil {
				stats.AddError(fmt.Sprintf("fid %d: bootstrap failed: %v", fid, err))
				continue
			}
			users[fid] = created
			stats.CreatedUsers++
			stats.UpdatedPowers++
			continue
		}

		if user.PowerLevel == event.PowerLevel {
			continue
		}

		if !dryRun {
			if err := c.store.UpdateUserPowerLevel(ctx, user.ID, event.PowerLevel); err != nil {
				stats.AddError(fmt.Sprintf("fid %d: power-level update failed: %v", fid, err))
				continue
			}
			c.publish(ctx, &domain.ProjectionEvent{
				Kind:      domain.ProjectionEventPowerLevelUpdated,
				FID:       fid,
				TxHash:    event.TxHash,
				Timestamp: event.Timestamp,
			})
		}
		stats.UpdatedPowers++
	}
}

// insertableVote pairs a ledger event with its resolved projection links.
type insertableVote struct {
	event  domain.VoteEvent
	user   *schema.User
	brand1 *schema.Brand
	brand2 *schema.Brand
	brand3 *schema.Brand
}

// syncVotes reconciles podium votes. Dedup, validation and user bootstrap run
// sequentially in ledger order; the resulting inserts run on a bounded worker
// pool per batch, with cross-batch ordering preserved.
func (c *Coordinator) syncVotes(ctx context.Context, since time.Time, dryRun bool, stats *domain.SyncStats) {
	events, err := c.ledger.GetVoteEvents(ctx, since)
	if err != nil {
		stats.Fatal = true
		stats.AddError(fmt.Sprintf("vote fetch failed: %v", err))
		return
	}
	stats.CheckedVotes = len(events)
	if len(events) == 0 {
		return
	}

	txHashes := make([]string, 0, len(events))
	for _, e := range events {
		txHashes = append(txHashes, e.TxHash)
	}

	existing, err := c.store.GetExistingTxHashes(ctx, txHashes)
	if err != nil {
		stats.Fatal = true
		stats.AddError(fmt.Sprintf("dedup lookup failed: %v", err))
		return
	}

	brandIDSet := make(map[int64]struct{})
	fidSet := make(map[int64]struct{})
	for _, e := range events {
		if _, dup := existing[e.TxHash]; dup {
			continue
		}
		fidSet[e.FID] = struct{}{}
		for _, id := range e.BrandIDs {
			brandIDSet[id] = struct{}{}
		}
	}

	brandIDs := make([]int64, 0, len(brandIDSet))
	for id := range brandIDSet {
		brandIDs = append(brandIDs, id)
	}
	brands, err := c.store.GetBrandsByOnLedgerIDs(ctx, brandIDs)
	if err != nil {
		stats.Fatal = true
		stats.AddError(fmt.Sprintf("brand lookup failed: %v", err))
		return
	}

	fids := make([]int64, 0, len(fidSet))
	for fid := range fidSet {
		fids = append(fids, fid)
	}
	users, err := c.store.GetUsersByFIDs(ctx, fids)
	if err != nil {
		stats.Fatal = true
		stats.AddError(fmt.Sprintf("user lookup failed: %v", err))
		return
	}

	// Sequential pre-pass in ledger order: skip duplicates, validate the
	// podium triple, bootstrap unseen users. A vote whose triple doesn't
	// resolve to exactly 3 known brands is skipped whole - never partially
	// inserted.
	var mu sync.Mutex
	insertable := make([]insertableVote, 0, len(events))
	for _, event := range events {
		if _, dup := existing[event.TxHash]; dup {
			continue
		}

		if !event.Valid() {
			stats.AddError(fmt.Sprintf("tx %s: %v", event.TxHash, domain.ErrMalformedEvent))
			continue
		}

		b1, ok1 := brands[event.BrandIDs[0]]
		b2, ok2 := brands[event.BrandIDs[1]]
		b3, ok3 := brands[event.BrandIDs[2]]
		if !ok1 || !ok2 || !ok3 {
			stats.AddError(fmt.Sprintf("tx %s: %v (triple %v)", event.TxHash, domain.ErrBrandNotFound, event.BrandIDs))
			continue
		}

		user, ok := users[event.FID]
		if !ok {
			created, err := c.bootstrapUser(ctx, event.FID, 0, dryRun)
			if err != nil {
				stats.AddError(fmt.Sprintf("tx %s: bootstrap fid %d failed: %v", event.TxHash, event.FID, err))
				continue
			}
			users[event.FID] = created
			user = created
			stats.CreatedUsers++
		}

		insertable = append(insertable, insertableVote{
			event:  event,
			user:   user,
			brand1: b1,
			brand2: b2,
			brand3: b3,
		})
	}

	if dryRun {
		stats.InsertedVotes = len(insertable)
		return
	}

	// Batched inserts with bounded intra-batch concurrency. Batches run in
	// ledger order so downstream day-bucket and streak derivations stay
	// deterministic.
	for start := 0; start < len(insertable); start += c.config.BatchSize {
		end := min(start+c.config.BatchSize, len(insertable))

		pool := pond.NewPool(c.config.WorkerPoolSize, pond.WithContext(ctx))
		for _, item := range insertable[start:end] {
			pool.Submit(func() {
				inserted, err := c.projectVote(ctx, item)
				if err != nil {
					mu.Lock()
					stats.AddError(fmt.Sprintf("tx %s: %v", item.event.TxHash, err))
					mu.Unlock()
					return
				}
				if !inserted {
					return
				}
				mu.Lock()
				stats.InsertedVotes++
				mu.Unlock()
			})
		}
		pool.StopAndWait()
	}
}

// projectVote writes one vote row and feeds the downstream aggregates. The
// aggregate credits are tied to the insert actually landing: when the row
// already exists the dedup snapshot was stale (an overlapping run got there
// first) and crediting again would double-count.
func (c *Coordinator) projectVote(ctx context.Context, item insertableVote) (bool, error) {
	event := item.event

	rawPayload, err := json.Marshal(event)
	if err != nil {
		return false, fmt.Errorf("failed to marshal raw payload: %w", err)
	}

	b1, b2, b3 := item.brand1.ID, item.brand2.ID, item.brand3.ID
	vote := &schema.Vote{
		TxHash:       event.TxHash,
		UserID:       item.user.ID,
		Brand1ID:     &b1,
		Brand2ID:     &b2,
		Brand3ID:     &b3,
		Date:         event.Timestamp.UTC(),
		DayBucket:    event.DayBucket,
		CostPaid:     event.CostWei,
		PointsEarned: domain.BaselineVotePoints,
		Season:       int(domain.SeasonForDayBucket(event.DayBucket, c.config.SeasonTwoStartDay)),
		RawPayload:   rawPayload,
	}

	inserted, err := c.store.CreateVote(ctx, vote)
	if err != nil {
		return false, err
	}
	if !inserted {
		logger.DebugCtx(ctx, "Vote already projected by a concurrent run",
			zap.String("tx_hash", event.TxHash))
		return false, nil
	}

	if err := c.store.ApplyVoteAggregates(ctx, item.user.ID, domain.BaselineVotePoints); err != nil {
		return false, err
	}

	if err := c.store.ApplyPodiumScores(ctx, b1, b2, b3); err != nil {
		return false, err
	}

	if c.ranks != nil {
		c.ranks.Enqueue(b1)
		c.ranks.Enqueue(b2)
		c.ranks.Enqueue(b3)
	}

	c.publish(ctx, &domain.ProjectionEvent{
		Kind:      domain.ProjectionEventVoteProjected,
		TxHash:    event.TxHash,
		FID:       event.FID,
		BrandIDs:  event.BrandIDs,
		Timestamp: event.Timestamp,
	})

	return true, nil
}

// bootstrapUser creates a placeholder projection user with zeroed aggregates.
// Display fields are filled in later by the profile flow.
func (c *Coordinator) bootstrapUser(ctx context.Context, fid int64, powerLevel int, dryRun bool) (*schema.User, error) {
	user := &schema.User{
		FID:        fid,
		PowerLevel: powerLevel,
	}
	if dryRun {
		return user, nil
	}

	if err := c.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	logger.DebugCtx(ctx, "Bootstrapped placeholder user", zap.Int64("fid", fid))
	return user, nil
}

// publish emits a projection change event. Publish failures are logged, not
// propagated - the projection write already succeeded.
func (c *Coordinator) publish(ctx context.Context, event *domain.ProjectionEvent) {
	if c.publisher == nil {
		return
	}

	event.EventID = ulid.MustNewDefault(c.clock.Now()).String()
	if err := c.publisher.PublishEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish projection event",
			zap.String("kind", event.Kind),
			zap.Error(err))
	}
}
