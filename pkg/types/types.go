package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// ErrMalformedCallData is returned when call data bytes do not have the shape
// an encoder or decoder requires.
var ErrMalformedCallData = errors.New("malformed call data")

// Operation selects the execution context of a Safe call: a regular CALL into
// the target, or a DELEGATECALL that runs the target's code in the Safe's own
// storage context.
type Operation uint8

const (
	OperationCall         Operation = 0
	OperationDelegateCall Operation = 1
)

func (o Operation) String() string {
	switch o {
	case OperationCall:
		return "call"
	case OperationDelegateCall:
		return "delegatecall"
	default:
		return fmt.Sprintf("operation(%d)", uint8(o))
	}
}

// Uint8 returns the Solidity enum value the Safe contract expects.
func (o Operation) Uint8() (uint8, error) {
	switch o {
	case OperationCall, OperationDelegateCall:
		return uint8(o), nil
	default:
		return 0, fmt.Errorf("unsupported operation: %d", uint8(o))
	}
}

// CallEntry is one atomic sub-call inside a MultiSend batch.
type CallEntry struct {
	To        common.Address
	Value     Amount
	Data      []byte
	Operation Operation
}

// SafeTx is the Safe signing struct. The field order matches the SafeTx
// typehash declaration; gas fields, gas token and refund receiver default to
// zero, which is what every transaction built by this module uses.
type SafeTx struct {
	To             common.Address
	Value          Amount
	Data           []byte
	Operation      Operation
	SafeTxGas      Amount
	BaseGas        Amount
	GasPrice       Amount
	GasToken       common.Address
	RefundReceiver common.Address
	Nonce          uint64
}

// SigningDigest is the 32-byte EIP-712 digest owners sign off-chain or
// pre-approve on-chain via approveHash.
type SigningDigest [32]byte

func (d SigningDigest) Hex() string {
	return hexutil.Encode(d[:])
}

func (d SigningDigest) Bytes() []byte {
	return d[:]
}
