package calldata

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/safeops-labs/safetx-go/pkg/types"
)

func TestTransferSelector(t *testing.T) {
	require.Equal(t, "a9059cbb", hex.EncodeToString(TransferSelector()))
}

func TestEncodeTransfer(t *testing.T) {
	recipient := common.BytesToAddress(repeatByte(0x12, 20))
	amount, err := types.AmountFromDecimalString("42449330000")
	require.NoError(t, err)

	data, err := EncodeTransfer(recipient, amount)
	require.NoError(t, err)

	// selector (4) + recipient word (32) + amount word (32)
	require.Len(t, data, 68)
	require.Equal(t,
		"a9059cbb"+
			"0000000000000000000000001212121212121212121212121212121212121212"+
			"00000000000000000000000000000000000000000000000000000009e22d5f50",
		hex.EncodeToString(data))
}

func TestEncodeTransfer_ZeroAmount(t *testing.T) {
	data, err := EncodeTransfer(types.ZeroAddress, types.Amount{})
	require.NoError(t, err)
	require.Len(t, data, 68)
	// Both argument words are all zeros.
	require.Equal(t, make([]byte, 64), data[4:])
}

func TestEncodeTransferFromBig_Overflow(t *testing.T) {
	recipient := common.HexToAddress("0x1234567890123456789012345678901234567890")

	_, err := EncodeTransferFromBig(recipient, new(big.Int).Lsh(big.NewInt(1), 256))
	require.ErrorIs(t, err, types.ErrAmountOverflow)

	_, err = EncodeTransferFromBig(recipient, big.NewInt(-1))
	require.ErrorIs(t, err, types.ErrAmountOverflow)
}

func TestDecodeTransfer_RoundTrip(t *testing.T) {
	recipient := common.HexToAddress("0x0987654321098765432109876543210987654321")
	amount, err := types.AmountFromDecimalString("187969927611870000000000")
	require.NoError(t, err)

	data, err := EncodeTransfer(recipient, amount)
	require.NoError(t, err)

	gotRecipient, gotAmount, err := DecodeTransfer(data)
	require.NoError(t, err)
	require.Equal(t, recipient, gotRecipient)
	require.Equal(t, amount.String(), gotAmount.String())
}

func TestDecodeTransfer_Malformed(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated", []byte{0xa9, 0x05, 0x9c, 0xbb, 0x00}},
		{"wrong selector", append([]byte{0xde, 0xad, 0xbe, 0xef}, make([]byte, 64)...)},
		{"extra bytes", append(mustEncode(), 0x00)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := DecodeTransfer(tc.data)
			require.ErrorIs(t, err, types.ErrMalformedCallData)
		})
	}
}

func mustEncode() []byte {
	data, err := EncodeTransfer(common.Address{}, types.AmountFromUint64(1))
	if err != nil {
		panic(err)
	}
	return data
}

func repeatByte(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}
