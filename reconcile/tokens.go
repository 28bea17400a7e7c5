package reconcile

import (
	"strconv"
	"strings"

	"charm-approve-tui/approval"
)

// TokensText is the headline of the confirmation screen: an amount for
// fungible tokens, the collection name for NFTs.
func TokensText(standard approval.Standard, amount, symbol, name string) string {
	switch standard {
	case approval.ERC20:
		return numberText(amount) + " " + symbol
	case approval.ERC721, approval.ERC1155:
		return name
	default:
		return ""
	}
}

// numberText coerces a decimal string the way a loose numeric cast would:
// blank is zero, garbage is NaN, trailing zeros go away.
func numberText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "0"
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
