package ledger

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/adapter"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/domain"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/logger"
)

// Reader is the read-only client against the external event ledger.
//
//go:generate mockgen -source=reader.go -destination=../mocks/ledger.go -package=mocks -mock_names=Reader=MockLedgerReader
type Reader interface {
	// GetVoteEvents returns decoded vote events with timestamp >= since,
	// ordered ascending by (block, txIndex). A zero since means full history.
	GetVoteEvents(ctx context.Context, since time.Time) ([]domain.VoteEvent, error)

	// GetPowerLevelEvents returns decoded power-level events with
	// timestamp >= since, ordered ascending. A zero since means full history.
	GetPowerLevelEvents(ctx context.Context, since time.Time) ([]domain.PowerLevelEvent, error)

	// GetTransactionVoteEvent fetches the raw receipt of a specific
	// transaction and decodes its vote event, bypassing the block-range query
	// API. Used by the repair path when the original decode was incomplete.
	GetTransactionVoteEvent(ctx context.Context, txHash string) (*domain.VoteEvent, error)

	// Close closes the underlying connection
	Close()
}

// Config holds ledger reader configuration
type Config struct {
	// ContractAddress is the voting contract emitting the events
	ContractAddress string
	// StartBlock is the contract deployment block, the floor of full queries
	StartBlock uint64
	// SecondsPerBlock is the chain's block-time estimate, used to translate a
	// time window into a block range
	SecondsPerBlock uint64
	// ChunkSize is the initial block span per FilterLogs call
	ChunkSize uint64
}

type ethereumReader struct {
	config Config
	client adapter.EthClient
	clock  adapter.Clock
}

// NewReader creates a ledger reader backed by an Ethereum RPC client
func NewReader(config Config, client adapter.EthClient, clock adapter.Clock) Reader {
	if config.SecondsPerBlock == 0 {
		config.SecondsPerBlock = 2
	}
	if config.ChunkSize == 0 {
		config.ChunkSize = 100000
	}
	return &ethereumReader{config: config, client: client, clock: clock}
}

// GetVoteEvents returns decoded vote events with timestamp >= since
func (r *ethereumReader) GetVoteEvents(ctx context.Context, since time.Time) ([]domain.VoteEvent, error) {
	logs, err := r.fetchLogs(ctx, voteCastEventSignature, since)
	if err != nil {
		return nil, err
	}

	timestamps := newHeaderTimestampCache(r.client)
	events := make([]domain.VoteEvent, 0, len(logs))
	for _, vLog := range logs {
		ts, err := timestamps.get(ctx, vLog.BlockNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve block timestamp: %w", err)
		}
		if !since.IsZero() && ts.Before(since) {
			continue
		}

		event, err := decodeVoteLog(vLog, ts)
		if err != nil {
			// Malformed log in our own contract's stream: skip, the repair
			// path can still reach it via the receipt later
			logger.WarnCtx(ctx, "Skipping undecodable vote log",
				zap.String("tx_hash", vLog.TxHash.Hex()),
				zap.Error(err))
			continue
		}
		events = append(events, *event)
	}

	sortVoteEventsAscending(events)
	return events, nil
}

// GetPowerLevelEvents returns decoded power-level events with timestamp >= since
func (r *ethereumReader) GetPowerLevelEvents(ctx context.Context, since time.Time) ([]domain.PowerLevelEvent, error) {
	logs, err := r.fetchLogs(ctx, powerLevelUpEventSignature, since)
	if err != nil {
		return nil, err
	}

	timestamps := newHeaderTimestampCache(r.client)
	events := make([]domain.PowerLevelEvent, 0, len(logs))
	for _, vLog := range logs {
		ts, err := timestamps.get(ctx, vLog.BlockNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve block timestamp: %w", err)
		}
		if !since.IsZero() && ts.Before(since) {
			continue
		}

		event, err := decodePowerLevelLog(vLog, ts)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping undecodable power-level log",
				zap.String("tx_hash", vLog.TxHash.Hex()),
				zap.Error(err))
			continue
		}
		events = append(events, *event)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].BlockNumber < events[j].BlockNumber
	})
	return events, nil
}

// GetTransactionVoteEvent fetches and decodes the vote event of one transaction
func (r *ethereumReader) GetTransactionVoteEvent(ctx context.Context, txHash string) (*domain.VoteEvent, error) {
	receipt, err := r.client.TransactionReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction receipt: %w", err)
	}

	contractAddr := common.HexToAddress(r.config.ContractAddress)
	for _, vLog := range receipt.Logs {
		if vLog.Address != contractAddr {
			continue
		}
		if len(vLog.Topics) == 0 || vLog.Topics[0] != voteCastEventSignature {
			continue
		}

		header, err := r.client.HeaderByNumber(ctx, new(big.Int).SetUint64(vLog.BlockNumber))
		if err != nil {
			return nil, fmt.Errorf("failed to get block header: %w", err)
		}

		return decodeVoteLog(*vLog, r.clock.Unix(int64(header.Time), 0)) //nolint:gosec,G115 // header.Time is a uint64 from geth which is safe to cast
	}

	return nil, domain.ErrEventNotInTransaction
}

// Close closes the underlying connection
func (r *ethereumReader) Close() {
	r.client.Close()
}

// fetchLogs retrieves all logs for one event signature since the given time,
// chunking the block range to stay under provider result limits. Chunks are
// halved on too-many-results responses; transient RPC failures are retried
// with exponential backoff.
func (r *ethereumReader) fetchLogs(ctx context.Context, signature common.Hash, since time.Time) ([]types.Log, error) {
	latestHeader, err := r.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest header: %w", err)
	}
	toBlock := latestHeader.Number.Uint64()

	fromBlock := r.windowStartBlock(since, toBlock)
	contractAddr := common.HexToAddress(r.config.ContractAddress)

	var allLogs []types.Log
	currentFrom := fromBlock
	chunkSize := r.config.ChunkSize

	for currentFrom <= toBlock {
		currentTo := currentFrom + chunkSize - 1
		if currentTo > toBlock {
			currentTo = toBlock
		}

		query := ethereum.FilterQuery{
			FromBlock: new(big.Int).SetUint64(currentFrom),
			ToBlock:   new(big.Int).SetUint64(currentTo),
			Addresses: []common.Address{contractAddr},
			Topics:    [][]common.Hash{{signature}},
		}

		logs, err := r.filterLogsWithRetry(ctx, query)
		if err != nil {
			if isTooManyResultsError(err) && chunkSize > 1 {
				chunkSize = chunkSize / 2
				logger.WarnCtx(ctx, "Too many results, reducing chunk size",
					zap.Uint64("new_chunk_size", chunkSize),
					zap.Uint64("from_block", currentFrom))
				continue
			}
			return nil, fmt.Errorf("failed to get logs for range %d-%d: %w", currentFrom, currentTo, err)
		}

		allLogs = append(allLogs, logs...)
		currentFrom = currentTo + 1
	}

	return allLogs, nil
}

// filterLogsWithRetry wraps one FilterLogs call with exponential backoff for
// transient RPC failures. Too-many-results errors are returned immediately so
// the caller can shrink the chunk instead of retrying the same oversized query.
func (r *ethereumReader) filterLogsWithRetry(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 2 * time.Minute

	var logs []types.Log
	operation := func() error {
		var err error
		logs, err = r.client.FilterLogs(ctx, query)
		if err != nil {
			if isTooManyResultsError(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}
	return logs, nil
}

// windowStartBlock translates a time window into a starting block using the
// configured block-time estimate. The estimate only needs to over-cover: the
// decoded timestamps are filtered precisely afterwards.
func (r *ethereumReader) windowStartBlock(since time.Time, latestBlock uint64) uint64 {
	if since.IsZero() {
		return r.config.StartBlock
	}

	elapsed := r.clock.Since(since)
	if elapsed <= 0 {
		return latestBlock
	}

	blocks := uint64(elapsed.Seconds()) / r.config.SecondsPerBlock
	if blocks >= latestBlock || latestBlock-blocks < r.config.StartBlock {
		return r.config.StartBlock
	}
	return latestBlock - blocks
}

// isTooManyResultsError checks if the error is a provider result-size limit
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "query returned more than 10000 results") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum")
}

// headerTimestampCache memoizes block header timestamps within one fetch so a
// batch of same-block logs costs a single header lookup.
type headerTimestampCache struct {
	client adapter.EthClient
	byNum  map[uint64]time.Time
}

func newHeaderTimestampCache(client adapter.EthClient) *headerTimestampCache {
	return &headerTimestampCache{client: client, byNum: make(map[uint64]time.Time)}
}

func (c *headerTimestampCache) get(ctx context.Context, blockNumber uint64) (time.Time, error) {
	if ts, ok := c.byNum[blockNumber]; ok {
		return ts, nil
	}

	header, err := c.client.HeaderByNumber(ctx, new(big.Int).SetUint64(blockNumber))
	if err != nil {
		return time.Time{}, err
	}

	ts := time.Unix(int64(header.Time), 0).UTC() //nolint:gosec,G115 // header.Time is a uint64 from geth which is safe to cast
	c.byNum[blockNumber] = ts
	return ts, nil
}

// sortVoteEventsAscending orders events by (block, txIndex) so day-bucket and
// most-recent-vote derivations downstream are deterministic.
func sortVoteEventsAscending(events []domain.VoteEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].BlockNumber != events[j].BlockNumber {
			return events[i].BlockNumber < events[j].BlockNumber
		}
		return events[i].TxIndex < events[j].TxIndex
	})
}
