package helpers

import (
	"math/big"
	"strings"
	"testing"
	"time"
)

func TestShortenAddr(t *testing.T) {
	if got := ShortenAddr("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"); got != "0xd8dA…6045" {
		t.Errorf("unexpected short address %s", got)
	}
	if got := ShortenAddr("0x12"); got != "0x12" {
		t.Errorf("short input should pass through, got %s", got)
	}
}

func TestIsValidEthAddress(t *testing.T) {
	if !IsValidEthAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045") {
		t.Error("expected valid address")
	}
	for _, bad := range []string{"", "0x12", "d8dA6BF26964aF9D7eEd9e03E53415D37aA96045", "0xZZdA6BF26964aF9D7eEd9e03E53415D37aA96045"} {
		if IsValidEthAddress(bad) {
			t.Errorf("expected %q to be invalid", bad)
		}
	}
}

func TestFormatNative(t *testing.T) {
	wei, _ := new(big.Int).SetString("1500000000000000000", 10)
	if got := FormatNative(wei, "ETH"); got != "1.500000 ETH" {
		t.Errorf("unexpected %s", got)
	}
	if got := FormatNative(nil, "MATIC"); got != "0 MATIC" {
		t.Errorf("unexpected %s", got)
	}
}

func TestParseNonce(t *testing.T) {
	n, err := ParseNonce(" 12 ")
	if err != nil || n == nil || *n != 12 {
		t.Errorf("expected 12, got %v, %v", n, err)
	}
	n, err = ParseNonce("")
	if err != nil || n != nil {
		t.Errorf("blank should be no nonce, got %v, %v", n, err)
	}
	if _, err := ParseNonce("-1"); err == nil {
		t.Error("expected error for negative nonce")
	}
}

func TestShortHex(t *testing.T) {
	if got := ShortHex([]byte{0x09, 0x5e, 0xa7, 0xb3}, 0); got != "0x095ea7b3" {
		t.Errorf("unexpected %s", got)
	}
	if got := ShortHex([]byte{0x09, 0x5e, 0xa7, 0xb3}, 6); got != "0x095e…" {
		t.Errorf("unexpected %s", got)
	}
}

func TestLoadedAt(t *testing.T) {
	if LoadedAt(time.Time{}, true) != "loading…" {
		t.Error("expected loading")
	}
	if LoadedAt(time.Time{}, false) != "never" {
		t.Error("expected never")
	}
}

func TestFadeString(t *testing.T) {
	out := FadeString("0xd8dA…6045", "#F25D94", "#EDFF82")
	if !strings.Contains(out, "…") {
		t.Error("multi-byte runes must survive the gradient")
	}
	if FadeString("", "#F25D94", "#EDFF82") != "" {
		t.Error("empty input should render empty")
	}
}
