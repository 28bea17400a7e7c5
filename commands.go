package main

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"charm-approve-tui/approval"
	"charm-approve-tui/config"
	"charm-approve-tui/helpers"
	"charm-approve-tui/reconcile"
	"charm-approve-tui/rpc"
	"charm-approve-tui/store"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

// connectRPC establishes an RPC connection to the Ethereum node
func connectRPC(url string) tea.Cmd {
	return func() tea.Msg {
		result := rpc.Connect(url)
		return rpcConnectedMsg{client: result.Client, chainID: result.ChainID, err: result.Error}
	}
}

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// loadAssetDetails reads the token and decodes the approval
func loadAssetDetails(b rpc.Backend, token, owner common.Address, data []byte) tea.Cmd {
	return func() tea.Msg {
		return assetDetailsMsg{d: rpc.LoadAssetDetails(b, token, owner, data)}
	}
}

// pollAfter schedules the next refresh
func pollAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

// classifyAddress checks whether the ticket's address has code
func classifyAddress(b rpc.Backend, t reconcile.Ticket) tea.Cmd {
	return func() tea.Msg {
		if b == nil {
			return classifyResultMsg{ticket: t, err: fmt.Errorf("no RPC client")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer cancel()
		isContract, err := rpc.ReadAddressAsContract(ctx, b, common.HexToAddress(t.Address))
		return classifyResultMsg{ticket: t, isContract: isContract, err: err}
	}
}

// requestNextNonce asks the node for the sender's next nonce
func requestNextNonce(b rpc.Backend, from common.Address) tea.Cmd {
	return func() tea.Msg {
		if b == nil {
			return nextNonceMsg{err: fmt.Errorf("no RPC client")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer cancel()
		n, err := rpc.NextNonce(ctx, b, from)
		return nextNonceMsg{nonce: n, err: err}
	}
}

// estimateFee asks the node for a fee estimate
func estimateFee(b rpc.Backend, from, to common.Address, data []byte, gasLimit uint64) tea.Cmd {
	return func() tea.Msg {
		fee, err := rpc.EstimateFee(b, from, to, data, gasLimit)
		return feeMsg{fee: fee, err: err}
	}
}

// waitForStore blocks until the store publishes a new state
func waitForStore(ch <-chan store.State) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return storeChangedMsg{state: st}
	}
}

// packageApproval builds the EIP-681 URI the mobile wallet signs
func packageApproval(token common.Address, chainID *big.Int, data []byte, custom bool) tea.Cmd {
	return func() tea.Msg {
		uri, err := approval.EIP681(token, chainID, data)
		return packageApprovalMsg{uri: uri, custom: custom, err: err}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text, what string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(text)
		if err == nil {
			return clipboardCopiedMsg{what: what}
		}
		return nil
	}
}

// clearClipboard waits 2 seconds then clears the copy feedback
func clearClipboard() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return clearClipboardMsg{}
	})
}

// -------------------- MODEL HELPERS --------------------

// addLog adds a message to the log viewport
func (m *model) addLog(logType, message string) {
	if !m.logEnabled || !m.logReady || m.logger == nil {
		return
	}

	// Use the logger to write messages
	switch logType {
	case "info":
		m.logger.Info(message)
	case "success":
		m.logger.Info("✓", "msg", message)
	case "error":
		m.logger.Error(message)
	case "warning":
		m.logger.Warn(message)
	case "debug":
		m.logger.Debug(message)
	default:
		m.logger.Print(message)
	}

	// Update viewport content
	m.updateLogViewport()
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if !m.logReady || m.logBuffer == nil {
		return
	}

	content := m.logBuffer.String()
	m.logViewport.SetContent(content)
	// Scroll to bottom to show latest entries
	m.logViewport.GotoBottom()
}

// chainReads starts every read the approval screen depends on
func (m *model) chainReads() tea.Cmd {
	if m.request == nil || m.client == nil {
		return nil
	}
	cmds := []tea.Cmd{
		loadAssetDetails(m.client, m.token, m.from, m.calldata),
		requestNextNonce(m.client, m.from),
		estimateFee(m.client, m.from, m.token, m.calldata, m.gasLimit),
	}
	if cmd := m.maybeClassify(m.spender.Hex()); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// maybeClassify starts a contract check when the spender changed
func (m *model) maybeClassify(addr string) tea.Cmd {
	if m.client == nil || addr == "" || addr == (common.Address{}).Hex() {
		return nil
	}
	if !m.rec.Contract.NeedsCheck(addr) {
		return nil
	}
	t := m.rec.Contract.Begin(addr)
	m.addLog("debug", fmt.Sprintf("Checking whether `%s` is a contract (#%d)", helpers.ShortenAddr(addr), t.Seq))
	return classifyAddress(m.client, t)
}

// approvalData is the calldata to sign: the request's own, or re-encoded
// with the custom limit when the user diverged from the suggestion. On error
// the request's calldata is returned.
func (m *model) approvalData() ([]byte, bool, error) {
	if m.details.Standard != approval.ERC20 || !m.rec.Diverged() {
		return m.calldata, false, nil
	}
	data, err := approval.CustomTxParamsData(m.calldata, m.rec.Form().CustomAmount, m.details.Decimals)
	if err != nil {
		return m.calldata, false, err
	}
	return data, true, nil
}

// textInputActive returns true if any text input is currently active
func (m *model) textInputActive() bool {
	if m.modalForm != nil && store.Select(m.store, store.CurrentModal) != store.ModalNone {
		return true
	}
	if store.Select(m.store, store.CurrentPage) == config.PageCreateNFT && m.nftForm.Editing() {
		return true
	}
	return false
}
