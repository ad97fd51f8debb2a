package calldata

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/safeops-labs/safetx-go/pkg/types"
)

// TransferMethodSignature is the canonical ERC20 transfer signature; its
// keccak256 prefix is the 4-byte selector a9059cbb.
const TransferMethodSignature = "transfer(address,uint256)"

const transferDataLength = 4 + 32 + 32

var (
	transferSelector = crypto.Keccak256([]byte(TransferMethodSignature))[:4]
	transferArgs     abi.Arguments
)

func init() {
	addressType, _ := abi.NewType("address", "", nil)
	uint256Type, _ := abi.NewType("uint256", "", nil)
	transferArgs = abi.Arguments{{Type: addressType}, {Type: uint256Type}}
}

// TransferSelector returns the 4-byte function selector for ERC20 transfer.
func TransferSelector() []byte {
	out := make([]byte, 4)
	copy(out, transferSelector)
	return out
}

// EncodeTransfer encodes an ERC20 transfer(recipient, amount) call: the
// 4-byte selector followed by each argument left-padded to a 32-byte word in
// declaration order. Amounts wider than 32 bytes are unrepresentable as
// types.Amount, so encoding itself cannot overflow.
func EncodeTransfer(recipient common.Address, amount types.Amount) ([]byte, error) {
	encoded, err := transferArgs.Pack(recipient, amount.Big())
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack transfer arguments")
	}
	return append(TransferSelector(), encoded...), nil
}

// EncodeTransferFromBig validates amount and encodes the transfer call. It
// fails with types.ErrAmountOverflow for negative or over-wide amounts.
func EncodeTransferFromBig(recipient common.Address, amount *big.Int) ([]byte, error) {
	a, err := types.AmountFromBig(amount)
	if err != nil {
		return nil, err
	}
	return EncodeTransfer(recipient, a)
}

// DecodeTransfer recovers the recipient and amount from transfer call data.
// It fails with types.ErrMalformedCallData if the selector or length does not
// match the transfer layout.
func DecodeTransfer(data []byte) (common.Address, types.Amount, error) {
	if len(data) != transferDataLength {
		return common.Address{}, types.Amount{}, errors.Wrapf(types.ErrMalformedCallData, "transfer data must be %d bytes, got %d", transferDataLength, len(data))
	}
	if !bytes.Equal(data[:4], transferSelector) {
		return common.Address{}, types.Amount{}, errors.Wrapf(types.ErrMalformedCallData, "unexpected selector %x", data[:4])
	}

	values, err := transferArgs.Unpack(data[4:])
	if err != nil {
		return common.Address{}, types.Amount{}, errors.Wrap(types.ErrMalformedCallData, err.Error())
	}
	recipient, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, types.Amount{}, errors.Wrap(types.ErrMalformedCallData, "first argument is not an address")
	}
	rawAmount, ok := values[1].(*big.Int)
	if !ok {
		return common.Address{}, types.Amount{}, errors.Wrap(types.ErrMalformedCallData, "second argument is not a uint256")
	}

	amount, err := types.AmountFromBig(rawAmount)
	if err != nil {
		return common.Address{}, types.Amount{}, err
	}
	return recipient, amount, nil
}
