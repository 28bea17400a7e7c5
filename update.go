package main

import (
	"fmt"
	"strings"

	"charm-approve-tui/approval"
	"charm-approve-tui/config"
	"charm-approve-tui/helpers"
	"charm-approve-tui/rpc"
	"charm-approve-tui/store"
	"charm-approve-tui/views/approve"
	"charm-approve-tui/views/home"
	logview "charm-approve-tui/views/log"
	"charm-approve-tui/views/nft"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// -------------------- TEMP FORM STORAGE --------------------
// Temporary form field storage (package-level to avoid pointer-to-copy issues)
var (
	tempLimitChoice string
	tempCustomLimit string
	tempNonceValue  string
)

const (
	limitProposed = "proposed"
	limitCustom   = "custom"
)

func (m *model) createPermissionForm() {
	form := m.rec.Form()
	proposed := m.rec.Upstream().SuggestedAmount

	tempLimitChoice = limitProposed
	tempCustomLimit = ""
	if m.rec.Diverged() {
		tempLimitChoice = limitCustom
		tempCustomLimit = form.CustomAmount
	}
	decimals := m.details.Decimals

	m.modalForm = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Edit permission").
				Description("Only enter a number that you're comfortable with the spender accessing now or in the future.").
				Options(
					huh.NewOption(fmt.Sprintf("Proposed limit (%s %s)", proposed, m.details.Symbol), limitProposed),
					huh.NewOption("Custom spend limit", limitCustom),
				).
				Value(&tempLimitChoice),

			huh.NewInput().
				Title("Custom spend limit").
				Description(fmt.Sprintf("Balance: %s %s", m.details.UserBalance, m.details.Symbol)).
				Value(&tempCustomLimit).
				Placeholder(proposed).
				Validate(func(s string) error {
					return validateCustomLimit(tempLimitChoice, s, decimals)
				}),
		),
	).WithTheme(huh.ThemeCatppuccin())

	// Initialize the form
	m.modalForm.Init()
}

func (m *model) createNonceForm() {
	tempNonceValue = store.Select(m.store, store.CustomNonceValue)

	desc := "Leave blank to use the suggested nonce."
	if next := store.Select(m.store, store.NextSuggestedNonce); next != nil {
		desc = fmt.Sprintf("Suggested nonce: %d. Leave blank to use it.", *next)
	}

	m.modalForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Customize nonce").
				Description(desc).
				Value(&tempNonceValue).
				Placeholder("0").
				Validate(func(s string) error {
					_, err := helpers.ParseNonce(s)
					return err
				}),
		),
	).WithTheme(huh.ThemeCatppuccin())

	// Initialize the form
	m.modalForm.Init()
}

// validateCustomLimit checks a custom spend limit against what approve can encode
func validateCustomLimit(choice, amount string, decimals uint8) error {
	if choice != limitCustom {
		return nil
	}
	_, err := approval.ToBaseUnits(amount, decimals)
	return err
}

// openModal shows a modal through the store
func (m *model) openModal(name string) {
	switch name {
	case store.ModalEditApprovalPermission:
		m.createPermissionForm()
	case store.ModalCustomizeNonce:
		m.createNonceForm()
	default:
		return
	}
	m.store.Dispatch(store.ShowModal{Name: name})
}

func (m *model) closeModal() {
	m.modalForm = nil
	m.store.Dispatch(store.HideModal{})
}

// applyModal writes a completed modal back into the form state
func (m *model) applyModal() tea.Cmd {
	var cmd tea.Cmd
	switch store.Select(m.store, store.CurrentModal) {
	case store.ModalEditApprovalPermission:
		if tempLimitChoice == limitProposed {
			m.rec.ClearCustomAmount()
			m.addLog("info", "Spend limit reset to the proposed amount")
		} else {
			if err := validateCustomLimit(tempLimitChoice, tempCustomLimit, m.details.Decimals); err != nil {
				m.addLog("error", "Custom spend limit rejected: "+err.Error())
				return nil
			}
			m.rec.SetCustomAmount(strings.TrimSpace(tempCustomLimit))
			m.addLog("info", fmt.Sprintf("Custom spend limit set to `%s %s`", m.rec.Form().CustomAmount, m.details.Symbol))
		}
	case store.ModalCustomizeNonce:
		v := strings.TrimSpace(tempNonceValue)
		m.store.Dispatch(store.UpdateCustomNonce{Value: v})
		if v == "" {
			m.addLog("info", "Custom nonce cleared, refetching suggested nonce")
			if m.client != nil {
				cmd = requestNextNonce(m.client, m.from)
			}
		} else {
			m.addLog("info", "Custom nonce set to "+v)
		}
	}
	m.closeModal()
	return cmd
}

// goHome navigates home with a fresh menu
func (m *model) goHome() {
	m.homeForm = home.CreateForm(m.request != nil)
	m.store.Dispatch(store.Navigate{Page: config.PageHome})
}

// reject drops the pending request
func (m *model) reject() {
	if m.request != nil {
		m.addLog("warning", fmt.Sprintf("Rejected approval request `%s` from %s", m.request.ID, m.request.Origin))
	}
	m.request = nil
	m.showQR = false
	m.focused = approve.FocusReject
	m.goHome()
}

// confirm packages the approval for signing
func (m *model) confirm() tea.Cmd {
	if !m.details.Known() {
		m.addLog("warning", "Asset details are not loaded yet")
		return nil
	}
	data, custom, err := m.approvalData()
	if err != nil {
		m.addLog("error", "Custom limit could not be encoded: "+err.Error())
	}
	m.showQR = true
	m.packaging = true
	m.qrURI = ""
	m.qrErr = ""
	m.addLog("info", "Packaging approval for signing")
	return packageApproval(m.token, store.Select(m.store, store.CurrentChainID), data, custom)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case logInitMsg:
		if !m.logEnabled {
			return m, nil
		}
		// Create logger that writes to our buffer
		m.logger = logview.NewLogger(m.logBuffer)
		m.logReady = true
		m.addLog("info", "Logger enabled")
		return m, nil

	case rpcConnectedMsg:
		m.rpcConnecting = false
		if msg.err != nil {
			// Connection failed
			m.client = nil
			m.rpcConnected = false
			m.addLog("error", fmt.Sprintf("RPC connection failed: `%s`", msg.err.Error()))
			if m.request != nil {
				return m, loadAssetDetails(nil, m.token, m.from, m.calldata)
			}
			return m, nil
		}
		// Connection successful
		m.client = msg.client
		m.clientURL = msg.client.URL
		m.rpcConnected = true
		m.store.Dispatch(store.SetChain{ChainID: msg.chainID})
		m.addLog("success", fmt.Sprintf("RPC connected to `%s` (chain %s)", msg.client.URL, msg.chainID))
		return m, tea.Batch(m.chainReads(), pollAfter(m.cfg.PollInterval()))

	case pollTickMsg:
		if m.client == nil {
			return m, nil
		}
		cmds := []tea.Cmd{pollAfter(m.cfg.PollInterval())}
		if m.request != nil {
			cmds = append(cmds,
				loadAssetDetails(m.client, m.token, m.from, m.calldata),
				requestNextNonce(m.client, m.from),
			)
		}
		return m, tea.Batch(cmds...)

	case assetDetailsMsg:
		if m.request == nil {
			// request was rejected while the read was in flight
			return m, nil
		}
		return m, m.onAssetDetails(msg.d)

	case classifyResultMsg:
		if !m.rec.Contract.Resolve(msg.ticket, msg.isContract, msg.err) {
			m.addLog("debug", fmt.Sprintf("Dropped stale contract check #%d for `%s`", msg.ticket.Seq, helpers.ShortenAddr(msg.ticket.Address)))
			return m, nil
		}
		if msg.err != nil {
			m.addLog("error", "Contract check failed: "+msg.err.Error())
		} else if msg.isContract {
			m.addLog("warning", fmt.Sprintf("Spender `%s` is a contract", helpers.ShortenAddr(msg.ticket.Address)))
		}
		return m, nil

	case nextNonceMsg:
		if msg.err != nil {
			m.addLog("error", "Next nonce unavailable: "+msg.err.Error())
			return m, nil
		}
		n := msg.nonce
		m.store.Dispatch(store.SetNextNonce{Nonce: &n})
		return m, nil

	case storeChangedMsg:
		next := store.NextSuggestedNonce(msg.state)
		custom := store.CustomNonce(msg.state)
		if m.rec.OnNonceChanged(next, custom) {
			if w := m.rec.Form().Warning; w != "" {
				m.addLog("warning", w)
			}
		}
		return m, waitForStore(m.storeCh)

	case feeMsg:
		if msg.err != nil {
			m.feeErr = "Unavailable"
			m.addLog("error", "Fee estimate failed: "+msg.err.Error())
			return m, nil
		}
		m.fee = msg.fee
		m.feeErr = ""
		return m, nil

	case packageApprovalMsg:
		m.packaging = false
		if msg.err != nil {
			m.qrErr = msg.err.Error()
			m.addLog("error", "Approval packaging failed: "+msg.err.Error())
			return m, nil
		}
		m.qrURI = msg.uri
		m.qrCustom = msg.custom
		if msg.custom {
			m.addLog("success", "Approval packaged with custom spend limit (EIP-681)")
		} else {
			m.addLog("success", "Approval packaged (EIP-681)")
		}
		return m, nil

	case clipboardCopiedMsg:
		m.copiedMsg = "Copied " + msg.what + "!"
		m.addLog("info", "Copied "+msg.what+" to clipboard")
		return m, clearClipboard()

	case clearClipboardMsg:
		m.copiedMsg = ""
		return m, nil

	case nft.CancelMsg:
		target := store.Select(m.store, store.MostRecentOverviewPage)
		if target == config.PageHome {
			m.goHome()
		} else {
			m.store.Dispatch(store.Navigate{Page: target})
		}
		return m, nil

	case nft.MediaSelectedMsg:
		m.addLog("info", "Selected media "+msg.Path)
		return m, nil

	case nft.ContinueMsg:
		m.addLog("info", fmt.Sprintf("Create NFT `%s` with %d attributes (minting is not available)", msg.Name, len(msg.Attributes)))
		return m, nil

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.nftForm.SetWidth(msg.Width)

		// Only initialize viewport if log is enabled
		if m.logEnabled {
			// Width accounts for border and padding
			m.logViewport.Width = helpers.Max(0, msg.Width-6)
			if m.logReady {
				m.updateLogViewport()
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		var cmds []tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		// Update log spinner too if log is enabled but not ready
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m.handleInput(msg)
}

// onAssetDetails folds a fresh read into the screen. The decoded amount is
// the upstream suggestion.
func (m *model) onAssetDetails(d rpc.AssetDetails) tea.Cmd {
	wasLoading := m.loading
	m.loading = false

	if !d.Known() && m.details.Known() {
		// keep what we had, surface the error
		m.details.ErrMessage = d.ErrMessage
		m.addLog("error", "Asset refresh failed: "+d.ErrMessage)
		return nil
	}
	m.details = d

	if d.ErrMessage != "" {
		m.addLog("error", d.ErrMessage)
	} else if wasLoading {
		m.addLog("success", fmt.Sprintf("Loaded %s %s (%s)", d.Standard, d.Symbol, helpers.ShortenAddr(d.AssetAddress)))
	}

	if d.Standard == approval.ERC20 && d.TokenAmount != "" {
		before := m.rec.Upstream().SuggestedAmount
		m.rec.OnUpstreamAmountChanged(d.TokenAmount)
		if before != "" && before != d.TokenAmount {
			m.addLog("info", fmt.Sprintf("Suggested amount changed from %s to %s", before, d.TokenAmount))
		}
	}

	return m.maybeClassify(d.ToAddress)
}

// handleInput routes keys and form messages to the active screen
func (m *model) handleInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	page := store.Select(m.store, store.CurrentPage)

	// Modal forms get everything while open
	if m.modalForm != nil && store.Select(m.store, store.CurrentModal) != store.ModalNone {
		// Intercept ESC key to cancel form
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			m.closeModal()
			return m, nil
		}

		form, cmd := m.modalForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.modalForm = f

			// Check if form is completed
			if m.modalForm.State == huh.StateCompleted {
				return m, m.applyModal()
			}

			// Check if form was aborted
			if m.modalForm.State == huh.StateAborted {
				m.closeModal()
				return m, nil
			}
		}
		return m, cmd
	}

	keyMsg, isKey := msg.(tea.KeyMsg)

	if isKey {
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// global keys
		if !m.textInputActive() {
			switch keyMsg.String() {
			case "q":
				return m, tea.Quit

			case "l", "L":
				return m, m.toggleLogger()

			case "pgup", "pgdown":
				// Allow scrolling in log viewport when enabled
				if m.logEnabled && m.logReady {
					var cmd tea.Cmd
					m.logViewport, cmd = m.logViewport.Update(msg)
					return m, cmd
				}
			}
		}
	}

	// page-specific behavior
	switch page {

	case config.PageHome:
		if isKey && keyMsg.String() == "esc" {
			return m, tea.Quit
		}
		return m.updateHome(msg)

	case config.PageCreateNFT:
		var cmd tea.Cmd
		m.nftForm, cmd = m.nftForm.Update(msg)
		return m, cmd

	case config.PageConfirmApprove:
		if isKey {
			return m, m.updateApprove(keyMsg)
		}
	}

	return m, nil
}

func (m *model) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.homeForm == nil {
		m.homeForm = home.CreateForm(m.request != nil)
	}
	form, cmd := m.homeForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.homeForm = f
		if m.homeForm.State == huh.StateCompleted {
			switch home.TempSelection {
			case home.ChoiceApprove:
				m.store.Dispatch(store.Navigate{Page: config.PageConfirmApprove})
				return m, nil
			case home.ChoiceNFT:
				m.nftForm = nft.New()
				m.nftForm.SetWidth(m.w)
				m.store.Dispatch(store.Navigate{Page: config.PageCreateNFT})
				return m, m.nftForm.Init()
			default:
				return m, tea.Quit
			}
		}
		if m.homeForm.State == huh.StateAborted {
			return m, tea.Quit
		}
	}
	return m, cmd
}

func (m *model) updateApprove(msg tea.KeyMsg) tea.Cmd {
	// QR panel first
	if m.showQR {
		switch msg.String() {
		case "c":
			if m.qrURI != "" {
				return copyToClipboard(m.qrURI, "EIP-681 URI")
			}
		case "esc", "enter":
			m.showQR = false
			m.packaging = false
			m.qrURI = ""
			m.qrErr = ""
		}
		return nil
	}

	switch msg.String() {
	case "left", "right", "tab", "shift+tab":
		if m.focused == approve.FocusReject {
			m.focused = approve.FocusConfirm
		} else {
			m.focused = approve.FocusReject
		}

	case "enter":
		if m.focused == approve.FocusConfirm {
			return m.confirm()
		}
		m.reject()

	case "esc":
		m.reject()

	case "e", "E":
		if m.details.Standard == approval.ERC20 && m.rec.Upstream().SuggestedAmount != "" {
			m.openModal(store.ModalEditApprovalPermission)
		}

	case "n", "N":
		if store.Select(m.store, store.UseNonceField) {
			m.openModal(store.ModalCustomizeNonce)
		}

	case "c":
		if m.details.ToAddress != "" {
			return copyToClipboard(m.details.ToAddress, "spender address")
		}

	case "r", "R":
		m.loading = !m.details.Known()
		m.addLog("info", "Refreshing approval details")
		return m.chainReads()
	}
	return nil
}

// toggleLogger turns the logger panel on or off and saves the choice
func (m *model) toggleLogger() tea.Cmd {
	m.logEnabled = !m.logEnabled
	m.cfg.Logger = m.logEnabled
	config.Save(m.configPath, m.cfg)

	if m.logEnabled {
		// Initialize viewport when enabling
		if m.w > 0 {
			m.logViewport.Width = m.w - 6
		}
		m.logReady = false
		return tea.Batch(initLogViewport(), m.logSpinner.Tick)
	}
	// Clear logs and de-initialize when disabling
	if m.logBuffer != nil {
		m.logBuffer.Reset()
	}
	m.logger = nil
	m.logReady = false
	return nil
}
