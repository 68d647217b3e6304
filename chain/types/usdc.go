package types

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/peermart/peermart-go/build"
)

// USDC is an amount of the intermediary stablecoin in minor units.
type USDC BigInt

func NewUSDC(minor uint64) USDC {
	return USDC(NewInt(minor))
}

// Minor returns the amount in minor units, zero for an unset value.
func (u USDC) Minor() *big.Int {
	if u.Int == nil {
		return big.NewInt(0)
	}
	return u.Int
}

func (u USDC) String() string {
	return FormatUnits(u.Minor(), build.StablecoinDecimals) + " USDC"
}

func (u USDC) Unitless() string {
	return FormatUnits(u.Minor(), build.StablecoinDecimals)
}

func (u USDC) IsZero() bool {
	return u.Int == nil || u.Int.Sign() == 0
}

// ParseUSDC scales a decimal whole-unit amount ("12.5", "12.5 USDC") to minor units.
func ParseUSDC(s string) (USDC, error) {
	suffix := strings.TrimLeft(s, "-.1234567890")
	s = s[:len(s)-len(suffix)]
	switch strings.ToLower(strings.TrimSpace(suffix)) {
	case "", "usdc":
	default:
		return USDC{}, fmt.Errorf("unrecognized suffix: %q", suffix)
	}

	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return USDC{}, fmt.Errorf("failed to parse %q as a decimal number", s)
	}
	if r.Sign() < 0 {
		return USDC{}, fmt.Errorf("negative amount: %q", s)
	}

	r = r.Mul(r, big.NewRat(build.StablecoinPrecision, 1))
	if !r.IsInt() {
		return USDC{}, fmt.Errorf("invalid USDC value %q: more than %d decimal places", s, build.StablecoinDecimals)
	}

	return USDC{r.Num()}, nil
}

func MustParseUSDC(s string) USDC {
	v, err := ParseUSDC(s)
	if err != nil {
		panic(err)
	}
	return v
}

// FormatUnits renders v scaled down by 10^decimals, trimming trailing zeros.
func FormatUnits(v *big.Int, decimals int) string {
	if v == nil {
		return "0"
	}
	den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	r := new(big.Rat).SetFrac(v, den)
	s := r.FloatString(decimals)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
