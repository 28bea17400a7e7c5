package helpers

import (
	"fmt"
	"image/color"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/gamut"
)

var ethAddrRe = regexp.MustCompile("^0x[0-9a-fA-F]{40}$")

// ShortenAddr shortens an Ethereum address for display
func ShortenAddr(addr string) string {
	if len(addr) < 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// IsValidEthAddress checks if a string is a valid Ethereum address
func IsValidEthAddress(s string) bool {
	return ethAddrRe.MatchString(s)
}

// FormatNative formats wei in the chain's native currency
func FormatNative(wei *big.Int, symbol string) string {
	if wei == nil {
		return "0 " + symbol
	}
	eth := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(1e18))
	return eth.Text('f', 6) + " " + symbol
}

// ShortHex trims long calldata for display
func ShortHex(data []byte, max int) string {
	s := fmt.Sprintf("0x%x", data)
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

// ParseNonce parses a user-entered nonce. Blank means "no custom nonce".
func ParseNonce(s string) (*uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("nonce must be a whole number")
	}
	return &n, nil
}

// LoadedAt formats the loaded timestamp
func LoadedAt(t time.Time, loading bool) string {
	if loading {
		return "loading…"
	}
	if t.IsZero() {
		return "never"
	}
	return t.Format("15:04:05")
}

// FadeString creates a gradient colored string
func FadeString(s string, firstColor string, lastColor string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return ""
	}
	blends := gamut.Blends(lipgloss.Color(firstColor), lipgloss.Color(lastColor), len(runes))
	return rainbow(lipgloss.NewStyle(), runes, blends)
}

func rainbow(baseStyle lipgloss.Style, runes []rune, colors []color.Color) string {
	var sb strings.Builder
	for i, c := range runes {
		col, _ := colorful.MakeColor(colors[i%len(colors)])
		sb.WriteString(baseStyle.Foreground(lipgloss.Color(col.Hex())).Render(string(c)))
	}
	return sb.String()
}

// Max returns the maximum of two integers
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Min returns the minimum of two integers
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
