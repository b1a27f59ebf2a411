// Package units converts between raw, the indivisible ledger unit, and
// XRB, the display unit. One XRB is 10^30 raw. All arithmetic is exact.
package units

import (
	"strings"

	"github.com/holiman/uint256"

	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

const (
	// Decimals is the number of raw digits behind the XRB decimal point.
	Decimals = 30

	// SupplyBits bounds every amount: balances on the ledger are 128-bit.
	SupplyBits = 128
)

// RawPerXRB is 10^30.
//
//nolint:gochecknoglobals // Constant big value
var RawPerXRB = uint256.MustFromDecimal("1000000000000000000000000000000")

// ParseRaw parses a non-negative integer raw amount.
func ParseRaw(raw string) (*uint256.Int, error) {
	if !isDigits(raw) {
		return nil, invalid(raw)
	}
	v, err := uint256.FromDecimal(raw)
	if err != nil || v.BitLen() > SupplyBits {
		return nil, invalid(raw)
	}
	return v, nil
}

// ParseXRB parses a decimal XRB amount into raw. Trailing fractional
// zeros are ignored; anything finer than one raw is rejected rather than
// rounded.
func ParseXRB(xrb string) (*uint256.Int, error) {
	intPart, fracPart, hasDot := strings.Cut(xrb, ".")
	if intPart == "" && fracPart == "" {
		return nil, invalid(xrb)
	}
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) || (hasDot && fracPart != "" && !isDigits(fracPart)) {
		return nil, invalid(xrb)
	}
	fracPart = strings.TrimRight(fracPart, "0")
	if len(fracPart) > Decimals {
		return nil, walleterr.WithDetails(walleterr.ErrInvalidAmount, map[string]string{
			"amount": xrb,
			"reason": "finer than one raw",
		})
	}

	whole, err := uint256.FromDecimal(intPart)
	if err != nil {
		return nil, invalid(xrb)
	}
	result, overflow := new(uint256.Int).MulOverflow(whole, RawPerXRB)
	if overflow {
		return nil, invalid(xrb)
	}

	if fracPart != "" {
		frac, err := uint256.FromDecimal(fracPart + strings.Repeat("0", Decimals-len(fracPart)))
		if err != nil {
			return nil, invalid(xrb)
		}
		if _, overflow := result.AddOverflow(result, frac); overflow {
			return nil, invalid(xrb)
		}
	}

	if result.BitLen() > SupplyBits {
		return nil, invalid(xrb)
	}
	return result, nil
}

// FormatXRB renders a raw amount in XRB with trailing fractional zeros
// removed: 10^30 formats as "1", 15*10^29 as "1.5".
func FormatXRB(raw *uint256.Int) string {
	if raw == nil {
		return "0"
	}

	whole, frac := new(uint256.Int), new(uint256.Int)
	whole.DivMod(raw, RawPerXRB, frac)

	if frac.IsZero() {
		return whole.Dec()
	}

	digits := frac.Dec()
	digits = strings.Repeat("0", Decimals-len(digits)) + digits
	return whole.Dec() + "." + strings.TrimRight(digits, "0")
}

// RawToXRB converts a raw amount string to XRB.
func RawToXRB(raw string) (string, error) {
	v, err := ParseRaw(raw)
	if err != nil {
		return "", err
	}
	return FormatXRB(v), nil
}

// XRBToRaw converts an XRB amount string to raw.
func XRBToRaw(xrb string) (string, error) {
	v, err := ParseXRB(xrb)
	if err != nil {
		return "", err
	}
	return v.Dec(), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func invalid(amount string) error {
	return walleterr.WithDetails(walleterr.ErrInvalidAmount, map[string]string{"amount": amount})
}
