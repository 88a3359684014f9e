package ledger

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/domain"
)

var (
	// VoteCast(address indexed voter, uint256 indexed fid, uint256 dayBucket, uint256[3] brandIds, uint256 cost)
	voteCastEventSignature = crypto.Keccak256Hash([]byte("VoteCast(address,uint256,uint256,uint256[3],uint256)"))

	// PowerLevelUp(uint256 indexed fid, uint256 newLevel)
	powerLevelUpEventSignature = crypto.Keccak256Hash([]byte("PowerLevelUp(uint256,uint256)"))
)

const (
	// VoteCast data layout: dayBucket + 3 brand ids + cost, one word each
	voteCastDataWords = 5
	wordSize          = 32
)

// decodeVoteLog parses a VoteCast log into a domain event. The block timestamp
// is resolved by the caller since logs don't carry it.
func decodeVoteLog(vLog types.Log, timestamp time.Time) (*domain.VoteEvent, error) {
	if len(vLog.Topics) != 3 {
		return nil, fmt.Errorf("%w: expected 3 topics, got %d", domain.ErrMalformedEvent, len(vLog.Topics))
	}
	if len(vLog.Data) < voteCastDataWords*wordSize {
		return nil, fmt.Errorf("%w: insufficient data (%d bytes)", domain.ErrMalformedEvent, len(vLog.Data))
	}

	brandIDs := make([]int64, 0, domain.PodiumSize)
	for i := 1; i <= domain.PodiumSize; i++ {
		id := new(big.Int).SetBytes(vLog.Data[i*wordSize : (i+1)*wordSize])
		if !id.IsInt64() {
			return nil, fmt.Errorf("%w: brand id out of range", domain.ErrMalformedEvent)
		}
		brandIDs = append(brandIDs, id.Int64())
	}

	fid := new(big.Int).SetBytes(vLog.Topics[2].Bytes())
	if !fid.IsInt64() || fid.Int64() <= 0 {
		return nil, fmt.Errorf("%w: invalid fid", domain.ErrMalformedEvent)
	}

	dayBucket := new(big.Int).SetBytes(vLog.Data[0:wordSize])
	if !dayBucket.IsInt64() {
		return nil, fmt.Errorf("%w: day bucket out of range", domain.ErrMalformedEvent)
	}
	cost := new(big.Int).SetBytes(vLog.Data[(domain.PodiumSize+1)*wordSize : voteCastDataWords*wordSize])

	return &domain.VoteEvent{
		VoterAddress: common.BytesToAddress(vLog.Topics[1].Bytes()).Hex(),
		FID:          fid.Int64(),
		DayBucket:    dayBucket.Int64(),
		BrandIDs:     brandIDs,
		CostWei:      cost.String(),
		BlockNumber:  vLog.BlockNumber,
		TxHash:       vLog.TxHash.Hex(),
		TxIndex:      uint64(vLog.TxIndex),
		Timestamp:    timestamp,
	}, nil
}

// decodePowerLevelLog parses a PowerLevelUp log into a domain event.
func decodePowerLevelLog(vLog types.Log, timestamp time.Time) (*domain.PowerLevelEvent, error) {
	if len(vLog.Topics) != 2 {
		return nil, fmt.Errorf("%w: expected 2 topics, got %d", domain.ErrMalformedEvent, len(vLog.Topics))
	}
	if len(vLog.Data) < wordSize {
		return nil, fmt.Errorf("%w: insufficient data (%d bytes)", domain.ErrMalformedEvent, len(vLog.Data))
	}

	fid := new(big.Int).SetBytes(vLog.Topics[1].Bytes())
	if !fid.IsInt64() || fid.Int64() <= 0 {
		return nil, fmt.Errorf("%w: invalid fid", domain.ErrMalformedEvent)
	}

	level := new(big.Int).SetBytes(vLog.Data[0:wordSize])
	if !level.IsInt64() {
		return nil, fmt.Errorf("%w: power level out of range", domain.ErrMalformedEvent)
	}

	return &domain.PowerLevelEvent{
		FID:         fid.Int64(),
		PowerLevel:  int(level.Int64()),
		BlockNumber: vLog.BlockNumber,
		TxHash:      vLog.TxHash.Hex(),
		Timestamp:   timestamp,
	}, nil
}
