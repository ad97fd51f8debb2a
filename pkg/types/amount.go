package types

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// ErrAmountOverflow is returned when a value is negative or does not fit in
// 256 bits.
var ErrAmountOverflow = errors.New("amount overflows 256 bits")

// Amount is a non-negative token quantity in its smallest indivisible unit,
// bounded to 256 bits. The zero value is a valid zero amount.
type Amount struct {
	v uint256.Int
}

func AmountFromUint64(u uint64) Amount {
	var a Amount
	a.v.SetUint64(u)
	return a
}

// AmountFromBig converts b, rejecting negative values and values wider than
// 32 bytes.
func AmountFromBig(b *big.Int) (Amount, error) {
	if b == nil {
		return Amount{}, nil
	}
	if b.Sign() < 0 {
		return Amount{}, errors.Wrapf(ErrAmountOverflow, "negative value %s", b)
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return Amount{}, errors.Wrapf(ErrAmountOverflow, "value %s is wider than 32 bytes", b)
	}
	return Amount{v: *v}, nil
}

// AmountFromDecimalString parses a base-10 integer string.
func AmountFromDecimalString(s string) (Amount, error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, errors.Wrapf(ErrAmountOverflow, "%q is not a base-10 integer", s)
	}
	return AmountFromBig(b)
}

// Bytes32 returns the value as a left-padded 32-byte big-endian word.
func (a Amount) Bytes32() [32]byte {
	return a.v.Bytes32()
}

func (a Amount) Big() *big.Int {
	return a.v.ToBig()
}

func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

func (a Amount) String() string {
	return a.v.Dec()
}
