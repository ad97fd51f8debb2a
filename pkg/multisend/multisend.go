package multisend

import (
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/safeops-labs/safetx-go/pkg/types"
)

// MultiSendMethodSignature is the batch-dispatch entry point; its keccak256
// prefix is the 4-byte selector 8d80ff0a.
const MultiSendMethodSignature = "multiSend(bytes)"

// ErrEmptyBatch is returned for a batch with zero entries. The dispatch
// contract's behavior on an empty payload is undefined, so it is rejected
// here instead.
var ErrEmptyBatch = errors.New("empty batch")

// The dispatch contract reads each length word as uint256, but calldata of
// this size cannot exist on any real chain. Guards the conversion into the
// length word.
const maxEntryDataLen = math.MaxUint32

var multiSendSelector = crypto.Keccak256([]byte(MultiSendMethodSignature))[:4]

// MultiSendSelector returns the 4-byte function selector for multiSend.
func MultiSendSelector() []byte {
	out := make([]byte, 4)
	copy(out, multiSendSelector)
	return out
}

// EncodeEntry packs one sub-call into the MultiSend wire layout:
//
//	operation (1) ++ to (20) ++ value (32) ++ dataLength (32) ++ data
//
// Integers are big-endian with no padding between fields.
func EncodeEntry(entry types.CallEntry) ([]byte, error) {
	op, err := entry.Operation.Uint8()
	if err != nil {
		return nil, err
	}
	if uint64(len(entry.Data)) > maxEntryDataLen {
		return nil, errors.Wrapf(types.ErrMalformedCallData, "entry data is %d bytes", len(entry.Data))
	}

	value := entry.Value.Bytes32()

	out := make([]byte, 0, 1+20+32+32+len(entry.Data))
	out = append(out, op)
	out = append(out, entry.To.Bytes()...)
	out = append(out, value[:]...)
	out = append(out, lengthWord(len(entry.Data))...)
	out = append(out, entry.Data...)
	return out, nil
}

// EncodeBatch concatenates the packed entries in caller order (the dispatch
// contract replays them in this order, so it is never sorted) and wraps the
// result as the single dynamic-bytes argument of multiSend:
//
//	selector ++ offset (32, fixed 0x20) ++ length (32) ++ entries
func EncodeBatch(entries []types.CallEntry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyBatch
	}

	var inner []byte
	for i, entry := range entries {
		encoded, err := EncodeEntry(entry)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		inner = append(inner, encoded...)
	}

	out := make([]byte, 0, 4+32+32+len(inner))
	out = append(out, MultiSendSelector()...)
	out = append(out, lengthWord(32)...)
	out = append(out, lengthWord(len(inner))...)
	out = append(out, inner...)
	return out, nil
}

func lengthWord(n int) []byte {
	return common.LeftPadBytes(new(big.Int).SetInt64(int64(n)).Bytes(), 32)
}
