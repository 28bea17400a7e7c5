package main

import (
	"math/big"
	"path/filepath"
	"strings"
	"testing"

	"charm-approve-tui/approval"
	"charm-approve-tui/config"
	"charm-approve-tui/rpc"
	"charm-approve-tui/store"
	"charm-approve-tui/views/nft"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	testOwner   = "0x1111111111111111111111111111111111111111"
	testToken   = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	testSpender = "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"
)

func newTestModel(t *testing.T) *model {
	t.Helper()
	t.Setenv("ETH_RPC_URL", "")

	data, err := approval.EncodeApprove(common.HexToAddress(testSpender), big.NewInt(1_000_000_000))
	if err != nil {
		t.Fatal(err)
	}
	req := &config.ApprovalRequest{
		ID:     "req-1",
		Origin: "https://app.example",
		TxParams: config.TxParams{
			From: testOwner,
			To:   testToken,
			Data: hexutil.Encode(data),
			Gas:  "0xea60",
		},
	}
	cfg := config.Config{
		Subjects: map[string]config.Subject{
			"https://app.example": {Name: "Example App"},
		},
	}
	m := newModel(cfg, filepath.Join(t.TempDir(), "config.json"), req, config.PageConfirmApprove)
	return &m
}

func usdcDetails(amount string) rpc.AssetDetails {
	return rpc.AssetDetails{
		Standard:     approval.ERC20,
		AssetAddress: common.HexToAddress(testToken).Hex(),
		Name:         "USD Coin",
		Symbol:       "USDC",
		Decimals:     6,
		UserBalance:  "2500",
		ToAddress:    common.HexToAddress(testSpender).Hex(),
		TokenAmount:  amount,
	}
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestNewModel(t *testing.T) {
	m := newTestModel(t)

	if got := store.Select(m.store, store.CurrentPage); got != config.PageConfirmApprove {
		t.Errorf("unexpected start page %s", got)
	}
	if m.spender != common.HexToAddress(testSpender) {
		t.Errorf("spender not decoded: %s", m.spender.Hex())
	}
	if m.gasLimit != 60000 {
		t.Errorf("unexpected gas limit %d", m.gasLimit)
	}
	if got := store.Select(m.store, store.SubjectMetadata("https://app.example")); got.Name != "Example App" {
		t.Errorf("subject metadata not loaded: %+v", got)
	}

	t.Run("confirm page without request falls back home", func(t *testing.T) {
		t.Setenv("ETH_RPC_URL", "")
		m := newModel(config.Config{}, filepath.Join(t.TempDir(), "c.json"), nil, config.PageConfirmApprove)
		if got := store.Select(m.store, store.CurrentPage); got != config.PageHome {
			t.Errorf("expected home, got %s", got)
		}
	})
}

func TestCustomAmountSurvivesRefresh(t *testing.T) {
	m := newTestModel(t)

	m.Update(assetDetailsMsg{d: usdcDetails("1000")})
	if got := m.rec.Form().CustomAmount; got != "1000" {
		t.Fatalf("expected the first suggestion to be taken, got %q", got)
	}

	m.rec.SetCustomAmount("5")
	m.Update(assetDetailsMsg{d: usdcDetails("2000")})

	if got := m.rec.Form().CustomAmount; got != "5" {
		t.Errorf("user edit was clobbered: %q", got)
	}
	if got := m.rec.Upstream().SuggestedAmount; got != "2000" {
		t.Errorf("expected upstream 2000, got %q", got)
	}

	data, custom, err := m.approvalData()
	if err != nil || !custom {
		t.Fatalf("expected custom calldata, err=%v custom=%v", err, custom)
	}
	a, err := approval.DecodeApproval(data)
	if err != nil {
		t.Fatal(err)
	}
	if a.Value.Cmp(big.NewInt(5_000_000)) != 0 {
		t.Errorf("unexpected encoded amount %s", a.Value)
	}
}

func TestFailedRefreshKeepsDetails(t *testing.T) {
	m := newTestModel(t)
	m.Update(assetDetailsMsg{d: usdcDetails("1000")})
	m.Update(assetDetailsMsg{d: rpc.AssetDetails{ErrMessage: "boom"}})

	if m.details.Symbol != "USDC" {
		t.Errorf("details were dropped: %+v", m.details)
	}
	if m.details.ErrMessage != "boom" {
		t.Errorf("error not surfaced: %q", m.details.ErrMessage)
	}
}

func TestContractCheckLastRequestWins(t *testing.T) {
	m := newTestModel(t)
	a := "0x00000000000000000000000000000000000000aa"
	b := "0x00000000000000000000000000000000000000bb"

	ta := m.rec.Contract.Begin(a)
	tb := m.rec.Contract.Begin(b)

	m.Update(classifyResultMsg{ticket: tb, isContract: false})
	m.Update(classifyResultMsg{ticket: ta, isContract: true})

	if m.rec.Upstream().IsContractAddress {
		t.Error("the stale answer for the earlier address must be dropped")
	}

	tc := m.rec.Contract.Begin(a)
	m.Update(classifyResultMsg{ticket: tc, isContract: true})
	if !m.rec.Upstream().IsContractAddress {
		t.Error("current answer should apply")
	}
}

func TestNonceWarningFollowsStore(t *testing.T) {
	m := newTestModel(t)
	m.store.Dispatch(store.SetUseNonceField{Enabled: true})

	m.Update(nextNonceMsg{nonce: 5})
	m.store.Dispatch(store.UpdateCustomNonce{Value: "7"})
	m.Update(storeChangedMsg{state: m.store.State()})

	if got := m.rec.Form().Warning; got != "Nonce is higher than suggested nonce of 5" {
		t.Fatalf("unexpected warning %q", got)
	}

	m.Update(nextNonceMsg{nonce: 7})
	m.Update(storeChangedMsg{state: m.store.State()})
	if got := m.rec.Form().Warning; got != "" {
		t.Errorf("warning should clear once the suggestion catches up, got %q", got)
	}
}

func TestEditPermissionModal(t *testing.T) {
	m := newTestModel(t)
	m.Update(assetDetailsMsg{d: usdcDetails("1000")})

	m.Update(runes("e"))
	if got := store.Select(m.store, store.CurrentModal); got != store.ModalEditApprovalPermission {
		t.Fatalf("expected permission modal, got %q", got)
	}
	if !m.textInputActive() {
		t.Error("open modal should hold back hotkeys")
	}

	tempLimitChoice = limitCustom
	tempCustomLimit = " 42 "
	m.applyModal()

	if got := store.Select(m.store, store.CurrentModal); got != store.ModalNone {
		t.Errorf("modal should close, got %q", got)
	}
	if got := m.rec.Form().CustomAmount; got != "42" {
		t.Errorf("unexpected custom amount %q", got)
	}
	if !m.rec.Diverged() {
		t.Error("expected a diverged amount")
	}

	m.openModal(store.ModalEditApprovalPermission)
	if tempLimitChoice != limitCustom || tempCustomLimit != "42" {
		t.Errorf("form should reopen with the custom limit, got %q %q", tempLimitChoice, tempCustomLimit)
	}
	tempLimitChoice = limitProposed
	m.applyModal()
	if m.rec.Diverged() {
		t.Error("choosing the proposed limit should reset the custom amount")
	}
}

func TestPermissionModalRejectsUnencodableLimit(t *testing.T) {
	m := newTestModel(t)
	m.Update(assetDetailsMsg{d: usdcDetails("1000")})

	bad := []string{
		"115792089237316195423570985008687907853269984665640564039457584007913129.639936",
		"1e80",
		"1/2",
		"0x10",
	}
	for _, v := range bad {
		if err := validateCustomLimit(limitCustom, v, 6); err == nil {
			t.Errorf("validator accepted %q", v)
		}
	}
	if err := validateCustomLimit(limitCustom, "115792089237316195423570985008687907853269984665640564039457584007913129.639935", 6); err != nil {
		t.Errorf("the largest uint256 amount should pass: %v", err)
	}
	if err := validateCustomLimit(limitProposed, "1/2", 6); err != nil {
		t.Errorf("custom input is ignored for the proposed limit: %v", err)
	}

	m.openModal(store.ModalEditApprovalPermission)
	tempLimitChoice = limitCustom
	tempCustomLimit = bad[0]
	m.applyModal()

	if got := store.Select(m.store, store.CurrentModal); got != store.ModalEditApprovalPermission {
		t.Errorf("modal should stay open on a rejected limit, got %q", got)
	}
	if m.rec.Diverged() {
		t.Errorf("rejected limit was stored: %q", m.rec.Form().CustomAmount)
	}
	data, custom, err := m.approvalData()
	if err != nil || custom {
		t.Fatalf("expected the request calldata, custom=%v err=%v", custom, err)
	}
	a, _ := approval.DecodeApproval(data)
	if a.Value.Cmp(big.NewInt(1_000_000_000)) != 0 {
		t.Errorf("unexpected encoded amount %s", a.Value)
	}
}

func TestSameValuedLimitIsNotCustom(t *testing.T) {
	m := newTestModel(t)
	m.Update(assetDetailsMsg{d: usdcDetails("1000")})

	m.openModal(store.ModalEditApprovalPermission)
	tempLimitChoice = limitCustom
	tempCustomLimit = "1000.0"
	m.applyModal()

	if _, custom, _ := m.approvalData(); custom {
		t.Error("1000.0 is the proposed amount and should not be labelled custom")
	}
}

func TestDetailsAfterRejectIgnored(t *testing.T) {
	m := newTestModel(t)
	m.Update(key(tea.KeyEsc))
	if m.request != nil {
		t.Fatal("request should be dropped")
	}

	_, cmd := m.Update(assetDetailsMsg{d: usdcDetails("1000")})
	if cmd != nil {
		t.Error("no contract check should start for a dropped request")
	}
	if m.details.Known() {
		t.Errorf("late details were applied: %+v", m.details)
	}
	if got := m.rec.Upstream().SuggestedAmount; got != "" {
		t.Errorf("late amount reached the reconciler: %q", got)
	}
}

func TestEscClosesModal(t *testing.T) {
	m := newTestModel(t)
	m.store.Dispatch(store.SetUseNonceField{Enabled: true})

	m.Update(runes("n"))
	if got := store.Select(m.store, store.CurrentModal); got != store.ModalCustomizeNonce {
		t.Fatalf("expected nonce modal, got %q", got)
	}
	m.Update(key(tea.KeyEsc))
	if got := store.Select(m.store, store.CurrentModal); got != store.ModalNone {
		t.Errorf("esc should close the modal, got %q", got)
	}
	if got := store.Select(m.store, store.CurrentPage); got != config.PageConfirmApprove {
		t.Errorf("esc in a modal must not reject, page is %s", got)
	}
}

func TestNonceModalBlankResets(t *testing.T) {
	m := newTestModel(t)
	m.store.Dispatch(store.SetUseNonceField{Enabled: true})
	m.store.Dispatch(store.UpdateCustomNonce{Value: "9"})

	m.openModal(store.ModalCustomizeNonce)
	if tempNonceValue != "9" {
		t.Errorf("form should start from the current value, got %q", tempNonceValue)
	}
	tempNonceValue = "  "
	m.applyModal()

	if got := store.Select(m.store, store.CustomNonce); got != nil {
		t.Errorf("blank should clear the custom nonce, got %d", *got)
	}
}

func TestConfirmPackagesApproval(t *testing.T) {
	m := newTestModel(t)
	m.Update(assetDetailsMsg{d: usdcDetails("1000")})

	m.Update(key(tea.KeyRight))
	_, cmd := m.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("confirm should package the approval")
	}
	msg, ok := cmd().(packageApprovalMsg)
	if !ok {
		t.Fatalf("unexpected message %T", msg)
	}
	if msg.err != nil {
		t.Fatal(msg.err)
	}
	want := "ethereum:" + common.HexToAddress(testToken).Hex() + "/approve?address=" + common.HexToAddress(testSpender).Hex() + "&uint256=1000000000"
	if msg.uri != want {
		t.Errorf("got %s\nwant %s", msg.uri, want)
	}

	m.Update(msg)
	if !m.showQR || m.qrURI != want {
		t.Errorf("QR panel not showing the URI")
	}
	if !strings.Contains(m.View(), "EIP-681") {
		t.Error("QR panel missing from the view")
	}
}

func TestRejectReturnsHome(t *testing.T) {
	m := newTestModel(t)
	m.Update(key(tea.KeyEsc))

	if got := store.Select(m.store, store.CurrentPage); got != config.PageHome {
		t.Errorf("expected home, got %s", got)
	}
	if m.request != nil {
		t.Error("rejected request should be dropped")
	}
}

func TestNFTCancelReturnsToOverview(t *testing.T) {
	m := newTestModel(t)
	m.store.Dispatch(store.Navigate{Page: config.PageCreateNFT})

	m.Update(nft.CancelMsg{})
	if got := store.Select(m.store, store.CurrentPage); got != config.PageHome {
		t.Errorf("expected home, got %s", got)
	}
}

func TestLoadingView(t *testing.T) {
	m := newTestModel(t)
	if !strings.Contains(m.View(), "Loading approval details") {
		t.Error("expected the loading screen before any details")
	}

	m.Update(assetDetailsMsg{d: rpc.AssetDetails{ErrMessage: "No RPC client (set ETH_RPC_URL)."}})
	if !strings.Contains(m.View(), "No RPC client") {
		t.Error("expected the error under the loading screen")
	}

	m.Update(assetDetailsMsg{d: usdcDetails("1000")})
	if !strings.Contains(m.View(), "1000 USDC") {
		t.Error("expected the approval screen")
	}
}
