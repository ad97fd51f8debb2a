package types

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// ErrInvalidAddress is returned when a textual address does not decode to
// exactly 20 bytes of hex.
var ErrInvalidAddress = errors.New("invalid address")

// ZeroAddress is the all-zero sentinel ("no gas token", "no refund receiver").
var ZeroAddress = common.Address{}

// ParseAddress decodes a hex address with or without a 0x prefix,
// case-insensitive. Unlike common.HexToAddress it rejects inputs that are not
// exactly 20 bytes instead of silently truncating or left-padding them.
func ParseAddress(s string) (common.Address, error) {
	h := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(h) != common.AddressLength*2 {
		return common.Address{}, errors.Wrapf(ErrInvalidAddress, "%q: expected %d hex characters, got %d", s, common.AddressLength*2, len(h))
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return common.Address{}, errors.Wrapf(ErrInvalidAddress, "%q: not valid hex", s)
	}
	return common.BytesToAddress(b), nil
}

// ChecksumAddress renders addr in its canonical EIP-55 mixed-case form.
func ChecksumAddress(addr common.Address) string {
	return addr.Hex()
}
