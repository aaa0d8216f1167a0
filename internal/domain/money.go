package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

// weiPerEther is the number of wei in one ether (10^18).
var weiPerEther = new(big.Int).SetUint64(params.Ether)

// ParseEther converts a decimal ether string (e.g. "1.5", "0.000001") into
// wei. The conversion is exact: more than 18 fractional digits is an error,
// not a rounding.
func ParseEther(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return nil, fmt.Errorf("negative amount: %s", s)
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > 18 {
		return nil, fmt.Errorf("amount %s has more than 18 decimal places", s)
	}

	whole, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %s", s)
	}
	wei := new(big.Int).Mul(whole, weiPerEther)

	if fracPart != "" {
		// Right-pad the fraction to 18 digits so "5" means 0.5 ether
		frac, ok := new(big.Int).SetString(fracPart+strings.Repeat("0", 18-len(fracPart)), 10)
		if !ok {
			return nil, fmt.Errorf("invalid amount: %s", s)
		}
		wei.Add(wei, frac)
	}

	return wei, nil
}

// FormatEther converts wei into a decimal ether string with trailing zeros
// trimmed. FormatEther(ParseEther(x)) round-trips without loss.
func FormatEther(wei *big.Int) string {
	if wei == nil || wei.Sign() == 0 {
		return "0"
	}

	whole, frac := new(big.Int).QuoRem(wei, weiPerEther, new(big.Int))
	if frac.Sign() == 0 {
		return whole.String()
	}

	digits := strings.TrimRight(fmt.Sprintf("%018s", frac.String()), "0")
	return whole.String() + "." + digits
}
