package ledger

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/domain"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/logger"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/mocks"
)

const testContract = "0x00000000000000000000000000000000000000aa"

func setupReaderTest(t *testing.T) (*mocks.MockEthClient, *mocks.MockClock, Reader) {
	err := logger.Initialize(logger.Config{Debug: true})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	client := mocks.NewMockEthClient(ctrl)
	clock := mocks.NewMockClock(ctrl)

	reader := NewReader(Config{
		ContractAddress: testContract,
		StartBlock:      0,
		SecondsPerBlock: 2,
		ChunkSize:       100000,
	}, client, clock)

	return client, clock, reader
}

func headerFor(block int64, ts uint64) *types.Header {
	return &types.Header{Number: big.NewInt(block), Time: ts}
}

func TestGetVoteEvents_FullHistoryAscending(t *testing.T) {
	client, _, reader := setupReaderTest(t)
	ctx := context.Background()

	// Logs arrive out of order; the reader must sort by (block, txIndex)
	late := buildVoteLog(common.HexToAddress("0x1"), 100, 2, [3]int64{1, 2, 3}, 10)
	late.BlockNumber = 950
	late.TxIndex = 0
	late.TxHash = common.HexToHash("0x1a7e")

	early := buildVoteLog(common.HexToAddress("0x1"), 100, 1, [3]int64{1, 2, 3}, 10)
	early.BlockNumber = 900
	early.TxIndex = 3
	early.TxHash = common.HexToHash("0xea51")

	client.EXPECT().HeaderByNumber(gomock.Any(), gomock.Nil()).Return(headerFor(1000, 0), nil)
	client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).Return([]types.Log{late, early}, nil)
	client.EXPECT().HeaderByNumber(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, number *big.Int) (*types.Header, error) {
			return headerFor(number.Int64(), uint64(1700000000+number.Int64())), nil
		}).AnyTimes()

	events, err := reader.GetVoteEvents(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint64(900), events[0].BlockNumber)
	assert.Equal(t, uint64(950), events[1].BlockNumber)
}

func TestGetVoteEvents_SkipsUndecodableLogs(t *testing.T) {
	client, _, reader := setupReaderTest(t)
	ctx := context.Background()

	good := buildVoteLog(common.HexToAddress("0x1"), 100, 1, [3]int64{1, 2, 3}, 10)
	good.BlockNumber = 900

	bad := buildVoteLog(common.HexToAddress("0x1"), 100, 1, [3]int64{1, 2, 3}, 10)
	bad.BlockNumber = 901
	bad.Data = bad.Data[:32] // truncated

	client.EXPECT().HeaderByNumber(gomock.Any(), gomock.Nil()).Return(headerFor(1000, 0), nil)
	client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).Return([]types.Log{good, bad}, nil)
	client.EXPECT().HeaderByNumber(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, number *big.Int) (*types.Header, error) {
			return headerFor(number.Int64(), 1700000000), nil
		}).AnyTimes()

	events, err := reader.GetVoteEvents(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(900), events[0].BlockNumber)
}

func TestGetVoteEvents_TimestampWindowFilter(t *testing.T) {
	client, clock, reader := setupReaderTest(t)
	ctx := context.Background()

	since := time.Unix(1700000000, 0).UTC()

	inWindow := buildVoteLog(common.HexToAddress("0x1"), 100, 1, [3]int64{1, 2, 3}, 10)
	inWindow.BlockNumber = 990

	tooOld := buildVoteLog(common.HexToAddress("0x1"), 100, 1, [3]int64{1, 2, 3}, 10)
	tooOld.BlockNumber = 980

	clock.EXPECT().Since(since).Return(48 * time.Hour)
	client.EXPECT().HeaderByNumber(gomock.Any(), gomock.Nil()).Return(headerFor(1000, 0), nil)
	client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).Return([]types.Log{inWindow, tooOld}, nil)
	client.EXPECT().HeaderByNumber(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, number *big.Int) (*types.Header, error) {
			if number.Int64() == 990 {
				return headerFor(990, 1700000100), nil
			}
			return headerFor(number.Int64(), 1600000000), nil
		}).AnyTimes()

	events, err := reader.GetVoteEvents(ctx, since)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(990), events[0].BlockNumber)
}

func TestGetPowerLevelEvents(t *testing.T) {
	client, _, reader := setupReaderTest(t)
	ctx := context.Background()

	vLog := types.Log{
		Topics: []common.Hash{
			powerLevelUpEventSignature,
			common.BigToHash(big.NewInt(42)),
		},
		Data:        word(5),
		BlockNumber: 700,
		TxHash:      common.HexToHash("0x9"),
	}

	client.EXPECT().HeaderByNumber(gomock.Any(), gomock.Nil()).Return(headerFor(1000, 0), nil)
	client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).Return([]types.Log{vLog}, nil)
	client.EXPECT().HeaderByNumber(gomock.Any(), gomock.Any()).Return(headerFor(700, 1700000000), nil)

	events, err := reader.GetPowerLevelEvents(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(42), events[0].FID)
	assert.Equal(t, 5, events[0].PowerLevel)
}

func TestGetTransactionVoteEvent(t *testing.T) {
	client, clock, reader := setupReaderTest(t)
	ctx := context.Background()

	txHash := "0x00000000000000000000000000000000000000000000000000000000000000cc"

	vLog := buildVoteLog(common.HexToAddress("0x1"), 100, 7, [3]int64{1, 2, 3}, 10)
	vLog.Address = common.HexToAddress(testContract)
	vLog.BlockNumber = 900

	unrelated := types.Log{
		Address: common.HexToAddress("0xdead"),
		Topics:  []common.Hash{common.HexToHash("0x1")},
	}

	receipt := &types.Receipt{Logs: []*types.Log{&unrelated, &vLog}}

	client.EXPECT().TransactionReceipt(gomock.Any(), common.HexToHash(txHash)).Return(receipt, nil)
	client.EXPECT().HeaderByNumber(gomock.Any(), gomock.Any()).Return(headerFor(900, 1700000000), nil)
	clock.EXPECT().Unix(int64(1700000000), int64(0)).Return(time.Unix(1700000000, 0))

	event, err := reader.GetTransactionVoteEvent(ctx, txHash)
	require.NoError(t, err)
	assert.Equal(t, int64(100), event.FID)
	assert.Equal(t, int64(7), event.DayBucket)
}

func TestGetTransactionVoteEvent_NoVoteInTransaction(t *testing.T) {
	client, _, reader := setupReaderTest(t)
	ctx := context.Background()

	receipt := &types.Receipt{Logs: []*types.Log{}}
	client.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(receipt, nil)

	_, err := reader.GetTransactionVoteEvent(ctx, "0xcc")
	assert.ErrorIs(t, err, domain.ErrEventNotInTransaction)
}

func TestIsTooManyResultsError(t *testing.T) {
	assert.True(t, isTooManyResultsError(errors.New("query returned more than 10000 results")))
	assert.True(t, isTooManyResultsError(errors.New("too many results")))
	assert.False(t, isTooManyResultsError(errors.New("connection refused")))
	assert.False(t, isTooManyResultsError(nil))
}

func TestWindowStartBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	clock := mocks.NewMockClock(ctrl)

	r := &ethereumReader{
		config: Config{StartBlock: 100, SecondsPerBlock: 2},
		clock:  clock,
	}

	// Zero since means full history from the deployment block
	assert.Equal(t, uint64(100), r.windowStartBlock(time.Time{}, 10000))

	// 1 hour window at 2s blocks = 1800 blocks back
	since := time.Unix(1700000000, 0)
	clock.EXPECT().Since(since).Return(time.Hour)
	assert.Equal(t, uint64(10000-1800), r.windowStartBlock(since, 10000))

	// Window reaching past deployment clamps to the start block
	clock.EXPECT().Since(since).Return(10000 * time.Hour)
	assert.Equal(t, uint64(100), r.windowStartBlock(since, 10000))
}
