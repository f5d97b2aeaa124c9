package common

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

var one = big.NewInt(1)

// decimalAmount is the plain decimal notation accepted for amounts. big.Rat
// alone would also take fractions, hex and digit separators.
var decimalAmount = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Pow10 returns 10^decimals as a new big int.
func Pow10(decimals uint64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), new(big.Int).SetUint64(decimals), nil)
}

// ToBaseUnits converts a human decimal amount to its integer base unit
// representation using the asset's decimals.
// Example:
// - ToBaseUnits("1.5", 3) = 1500
// - ToBaseUnits("0.0001", 18) = 100000000000000
// Digits beyond the asset precision are rounded half away from zero.
func ToBaseUnits(amount string, decimals uint64) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("invalid amount: empty string")
	}
	if !decimalAmount.MatchString(amount) {
		return nil, fmt.Errorf("invalid amount: %q is not a decimal number", amount)
	}
	r, ok := new(big.Rat).SetString(amount)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %q is not a decimal number", amount)
	}
	r.Mul(r, new(big.Rat).SetInt(Pow10(decimals)))
	return roundRat(r), nil
}

func roundRat(r *big.Rat) *big.Int {
	num := r.Num()
	den := r.Denom()
	q, m := new(big.Int).QuoRem(num, den, new(big.Int))
	m.Abs(m).Lsh(m, 1)
	if m.Cmp(den) >= 0 {
		if num.Sign() < 0 {
			q.Sub(q, one)
		} else {
			q.Add(q, one)
		}
	}
	return q
}

// FromBaseUnits converts an integer base unit amount to a decimal string
// with exactly `decimals` fractional digits.
// Example:
// - FromBaseUnits(1500, 3) = "1.500"
// - FromBaseUnits(1500, 0) = "1500"
func FromBaseUnits(base *big.Int, decimals uint64) string {
	if base == nil {
		base = big.NewInt(0)
	}
	return new(big.Rat).SetFrac(base, Pow10(decimals)).FloatString(int(decimals))
}

// FormatUnits is FromBaseUnits without trailing fractional zeros, the way
// native coin balances are displayed:
// - FormatUnits(1500000000000000000, 18) = "1.5"
// - FormatUnits(0, 18) = "0"
func FormatUnits(base *big.Int, decimals uint64) string {
	s := FromBaseUnits(base, decimals)
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimRight(strings.TrimRight(s, "0"), ".")
}

// ParseTokenID parses an NFT token id given in base 10 or as 0x prefixed
// hex. A leading zero does not switch to octal.
func ParseTokenID(str string) (*big.Int, error) {
	str = strings.TrimSpace(str)
	base := 10
	if strings.HasPrefix(str, "0x") || strings.HasPrefix(str, "0X") {
		str, base = str[2:], 16
	}
	result, success := new(big.Int).SetString(str, base)
	if !success || strings.Contains(str, "_") {
		return nil, fmt.Errorf("token id must be a base 10 or 0x prefixed hex integer")
	}
	if result.Sign() < 0 {
		return nil, fmt.Errorf("token id can't be negative")
	}
	return result, nil
}
