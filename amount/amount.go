// Package amount converts token amounts between human decimal form and
// smallest-unit integers. Arithmetic never passes through floats; the only
// float produced is the final ratio used for threshold comparison.
package amount

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Parse converts a human-units decimal string ("0.001") into the token's
// smallest unit. Precision beyond the token's decimals is truncated.
func Parse(human string, decimals int) (*big.Int, error) {
	d, err := decimal.NewFromString(human)
	if err != nil {
		return nil, fmt.Errorf("unparseable amount %q: %s", human, err)
	}
	if d.Sign() < 0 {
		return nil, fmt.Errorf("negative amount %q", human)
	}
	return d.Shift(int32(decimals)).BigInt(), nil
}

// Format renders a smallest-unit amount as a human-units decimal string.
func Format(units *big.Int, decimals int) string {
	if units == nil {
		return ""
	}
	return decimal.NewFromBigInt(units, -int32(decimals)).String()
}

// String renders a smallest-unit amount as a plain integer decimal string,
// empty for nil.
func String(units *big.Int) string {
	if units == nil {
		return ""
	}
	return units.String()
}

// Ratio returns part/whole as a float, for percentage-style comparisons.
// A nil or zero whole yields 0.
func Ratio(part, whole *big.Int) float64 {
	if part == nil || whole == nil || whole.Sign() == 0 {
		return 0
	}
	r, _ := new(big.Float).Quo(new(big.Float).SetInt(part), new(big.Float).SetInt(whole)).Float64()
	return r
}
