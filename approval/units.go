package approval

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/holiman/uint256"
)

var decimalRe = regexp.MustCompile(`^\d+(\.\d+)?$`)

// CalcTokenAmount scales a raw on-chain amount down by decimals and returns
// an exact decimal string without trailing zeros.
func CalcTokenAmount(raw *big.Int, decimals uint8) string {
	if raw == nil {
		return ""
	}
	neg := raw.Sign() < 0
	digits := new(big.Int).Abs(raw).String()
	d := int(decimals)
	if d > 0 {
		if len(digits) <= d {
			digits = strings.Repeat("0", d-len(digits)+1) + digits
		}
		intPart, frac := digits[:len(digits)-d], strings.TrimRight(digits[len(digits)-d:], "0")
		digits = intPart
		if frac != "" {
			digits += "." + frac
		}
	}
	if neg {
		return "-" + digits
	}
	return digits
}

// ToBaseUnits scales a plain decimal string up by decimals. Amounts with
// more fractional digits than decimals, or that do not fit in a uint256,
// are rejected.
func ToBaseUnits(amount string, decimals uint8) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("amount is required")
	}
	if strings.HasPrefix(amount, "-") {
		return nil, fmt.Errorf("amount must not be negative")
	}
	if !decimalRe.MatchString(amount) {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	r, ok := new(big.Rat).SetString(amount)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))
	if !r.IsInt() {
		return nil, fmt.Errorf("amount %s has more than %d decimals", amount, decimals)
	}
	if _, overflow := uint256.FromBig(r.Num()); overflow {
		return nil, fmt.Errorf("amount %s is too large", amount)
	}
	return new(big.Int).Set(r.Num()), nil
}

// SameAmount reports whether two decimal strings hold the same value.
// Strings that do not parse are compared as written.
func SameAmount(a, b string) bool {
	ra, okA := new(big.Rat).SetString(a)
	rb, okB := new(big.Rat).SetString(b)
	if !okA || !okB || !decimalRe.MatchString(a) || !decimalRe.MatchString(b) {
		return a == b
	}
	return ra.Cmp(rb) == 0
}
