package units

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"

	"github.com/safeops-labs/safetx-go/pkg/types"
)

// Decimal places of the common Ethereum units.
const (
	WeiDecimals  = 18
	GweiDecimals = 9
)

// ErrInvalidNumber is returned when a value string is not a plain decimal
// number.
var ErrInvalidNumber = errors.New("invalid decimal number")

// ToSmallestUnit converts a human-readable decimal string to the token's
// smallest unit by scaling with 10^decimals. Thousands separators (commas)
// are tolerated, arithmetic is exact, and fractional dust below one smallest
// unit is truncated. Negative values are rejected with types.ErrAmountOverflow.
func ToSmallestUnit(value string, decimals int) (types.Amount, error) {
	v := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if v == "" {
		return types.Amount{}, errors.Wrap(ErrInvalidNumber, "empty value")
	}
	if strings.HasPrefix(v, "-") {
		return types.Amount{}, errors.Wrapf(types.ErrAmountOverflow, "negative value %q", value)
	}
	if decimals < 0 {
		return types.Amount{}, errors.Wrapf(ErrInvalidNumber, "negative decimals %d", decimals)
	}

	intPart := v
	fracPart := ""
	if i := strings.IndexByte(v, '.'); i >= 0 {
		intPart, fracPart = v[:i], v[i+1:]
	}
	if intPart == "" && fracPart == "" {
		return types.Amount{}, errors.Wrapf(ErrInvalidNumber, "%q", value)
	}
	if !digitsOnly(intPart) || !digitsOnly(fracPart) {
		return types.Amount{}, errors.Wrapf(ErrInvalidNumber, "%q", value)
	}

	// Scale the fraction to exactly `decimals` digits; anything beyond that
	// is below one smallest unit and is dropped.
	if len(fracPart) > decimals {
		fracPart = fracPart[:decimals]
	}
	fracPart += strings.Repeat("0", decimals-len(fracPart))

	digits := intPart + fracPart
	if digits == "" {
		return types.Amount{}, nil
	}
	scaled, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return types.Amount{}, errors.Wrapf(ErrInvalidNumber, "%q", value)
	}
	return types.AmountFromBig(scaled)
}

// EthToWei converts an ETH amount to wei.
func EthToWei(value string) (types.Amount, error) {
	return ToSmallestUnit(value, WeiDecimals)
}

// EthToGwei converts an ETH amount to gwei.
func EthToGwei(value string) (types.Amount, error) {
	return ToSmallestUnit(value, GweiDecimals)
}

// GweiToWei converts a gwei amount to wei.
func GweiToWei(value string) (types.Amount, error) {
	return ToSmallestUnit(value, GweiDecimals)
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
