package approval

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

var spender = common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D")

func TestDecodeApprove(t *testing.T) {
	data, err := EncodeApprove(spender, big.NewInt(25_000_000))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(data[:4], common.FromHex("0x095ea7b3")) {
		t.Fatalf("unexpected selector %x", data[:4])
	}

	a, err := DecodeApproval(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a.Method != "approve" || a.Spender != spender || a.Value.Cmp(big.NewInt(25_000_000)) != 0 {
		t.Errorf("unexpected approval %+v", a)
	}
}

func TestDecodeSetApprovalForAll(t *testing.T) {
	data, err := EncodeSetApprovalForAll(spender, true)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(data[:4], common.FromHex("0xa22cb465")) {
		t.Fatalf("unexpected selector %x", data[:4])
	}
	a, err := DecodeApproval(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a.Method != "setApprovalForAll" || !a.Approved || a.Spender != spender {
		t.Errorf("unexpected approval %+v", a)
	}
}

func TestDecodeRejectsOtherCalls(t *testing.T) {
	transfer := common.FromHex("0xa9059cbb")
	if _, err := DecodeApproval(append(transfer, make([]byte, 64)...)); err != ErrNotApproval {
		t.Errorf("expected ErrNotApproval, got %v", err)
	}
	if _, err := DecodeApproval([]byte{0x09}); err != ErrNotApproval {
		t.Errorf("expected ErrNotApproval for short data, got %v", err)
	}
}

func TestCustomTxParamsData(t *testing.T) {
	data, _ := EncodeApprove(spender, big.NewInt(10_000_000))

	custom, err := CustomTxParamsData(data, "5.5", 6)
	if err != nil {
		t.Fatalf("custom: %v", err)
	}
	a, err := DecodeApproval(custom)
	if err != nil {
		t.Fatalf("decode custom: %v", err)
	}
	if a.Spender != spender {
		t.Errorf("spender changed to %s", a.Spender.Hex())
	}
	if a.Value.Cmp(big.NewInt(5_500_000)) != 0 {
		t.Errorf("expected 5500000, got %s", a.Value)
	}

	t.Run("too many decimals", func(t *testing.T) {
		if _, err := CustomTxParamsData(data, "0.0000001", 6); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("nft approvals pass through", func(t *testing.T) {
		nft, _ := EncodeSetApprovalForAll(spender, true)
		out, err := CustomTxParamsData(nft, "1", 0)
		if err != nil || !bytes.Equal(out, nft) {
			t.Errorf("expected unchanged calldata, got %x, %v", out, err)
		}
	})
}

func TestCalcTokenAmount(t *testing.T) {
	cases := []struct {
		raw      string
		decimals uint8
		want     string
	}{
		{"25000000", 6, "25"},
		{"1500000", 6, "1.5"},
		{"1", 18, "0.000000000000000001"},
		{"0", 18, "0"},
		{"42", 0, "42"},
		{"-1500", 3, "-1.5"},
	}
	for _, tc := range cases {
		raw, _ := new(big.Int).SetString(tc.raw, 10)
		if got := CalcTokenAmount(raw, tc.decimals); got != tc.want {
			t.Errorf("CalcTokenAmount(%s, %d) = %s, want %s", tc.raw, tc.decimals, got, tc.want)
		}
	}
	if got := CalcTokenAmount(nil, 6); got != "" {
		t.Errorf("nil amount should be blank, got %q", got)
	}
}

func TestToBaseUnits(t *testing.T) {
	got, err := ToBaseUnits("1.25", 18)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, _ := new(big.Int).SetString("1250000000000000000", 10)
	if got.Cmp(want) != 0 {
		t.Errorf("expected %s, got %s", want, got)
	}

	for _, bad := range []string{"", "abc", "-1", "1/2", "0x10", "1e80", ".5", "5.", "+1", "1 000"} {
		if _, err := ToBaseUnits(bad, 6); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}

	t.Run("uint256 bound", func(t *testing.T) {
		max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

		got, err := ToBaseUnits(max.String(), 0)
		if err != nil || got.Cmp(max) != 0 {
			t.Errorf("2^256-1 should be accepted, got %v, %v", got, err)
		}
		got, err = ToBaseUnits("115792089237316195423570985008687907853269984665640564039457.584007913129639935", 18)
		if err != nil || got.Cmp(max) != 0 {
			t.Errorf("2^256-1 base units should be accepted, got %v, %v", got, err)
		}

		over := new(big.Int).Add(max, big.NewInt(1))
		if _, err := ToBaseUnits(over.String(), 0); err == nil {
			t.Error("2^256 should be rejected")
		}
		if _, err := ToBaseUnits("115792089237316195423570985008687907853269984665640564039457.584007913129639936", 18); err == nil {
			t.Error("2^256 base units should be rejected")
		}
	})
}

func TestCustomTxParamsDataRejectsOverflow(t *testing.T) {
	data, _ := EncodeApprove(spender, big.NewInt(1))
	for _, amt := range []string{
		"115792089237316195423570985008687907853269984665640564039457.584007913129639936",
		"100000000000000000000000000000000000000000000000000000000000000000000000000000000",
	} {
		if out, err := CustomTxParamsData(data, amt, 18); err == nil {
			a, _ := DecodeApproval(out)
			t.Errorf("%s encoded as %s instead of failing", amt, a.Value)
		}
	}

	max := "115792089237316195423570985008687907853269984665640564039457.584007913129639935"
	out, err := CustomTxParamsData(data, max, 18)
	if err != nil {
		t.Fatalf("max amount: %v", err)
	}
	a, err := DecodeApproval(out)
	if err != nil {
		t.Fatal(err)
	}
	if a.Value.BitLen() != 256 {
		t.Errorf("expected the full uint256 range, got %s", a.Value)
	}
}

func TestSameAmount(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"1000", "1000", true},
		{"1000.0", "1000", true},
		{"0.50", "0.5", true},
		{"1000.1", "1000", false},
		{"", "", true},
		{"", "0", false},
		{"1/2", "0.5", false},
	}
	for _, tc := range cases {
		if got := SameAmount(tc.a, tc.b); got != tc.want {
			t.Errorf("SameAmount(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestEIP681(t *testing.T) {
	token := common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")

	data, _ := EncodeApprove(spender, big.NewInt(100))
	uri, err := EIP681(token, big.NewInt(1), data)
	if err != nil {
		t.Fatalf("eip681: %v", err)
	}
	want := "ethereum:" + token.Hex() + "@1/approve?address=" + spender.Hex() + "&uint256=100"
	if uri != want {
		t.Errorf("expected %s, got %s", want, uri)
	}

	nft, _ := EncodeSetApprovalForAll(spender, false)
	uri, err = EIP681(token, nil, nft)
	if err != nil {
		t.Fatalf("eip681: %v", err)
	}
	if !strings.HasSuffix(uri, "/setApprovalForAll?address="+spender.Hex()+"&bool=false") || strings.Contains(uri, "@") {
		t.Errorf("unexpected uri %s", uri)
	}
}
