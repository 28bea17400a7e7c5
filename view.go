package main

import (
	"fmt"
	"strings"

	"charm-approve-tui/config"
	"charm-approve-tui/helpers"
	"charm-approve-tui/reconcile"
	"charm-approve-tui/rpc"
	"charm-approve-tui/store"
	"charm-approve-tui/views/approve"
	"charm-approve-tui/views/home"
	logview "charm-approve-tui/views/log"
	"charm-approve-tui/views/nft"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- VIEW --------------------

func dialogBox() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cBorder).
		Padding(1, 2)
}

// renderModal centers the open modal form on screen
func (m *model) renderModal() string {
	title := "Edit permission"
	if store.Select(m.store, store.CurrentModal) == store.ModalCustomizeNonce {
		title = "Customize nonce"
	}

	help := lipgloss.NewStyle().
		Foreground(cMuted).
		MarginTop(1).
		Render("Enter: save • Esc: cancel")

	ui := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", m.modalForm.View(), help)

	return lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		dialogBox().Render(ui),
	)
}

func (m *model) renderQRContent() string {
	content := titleStyle.Render("Approval Ready To Sign (EIP-681)") + "\n\n"

	if m.packaging {
		return content + m.spin.View() + " Packaging approval..."
	}
	if m.qrErr != "" {
		errorStyle := lipgloss.NewStyle().Foreground(cDanger).Bold(true)
		content += errorStyle.Render("Error: " + m.qrErr)
		content += "\n\n" + lipgloss.NewStyle().Foreground(cMuted).Render("Press ESC or Enter to close")
		return content
	}

	content += rpc.GenerateQRCode(m.qrURI) + "\n"
	label := "EIP-681 URL:"
	if m.qrCustom {
		label = "EIP-681 URL (custom spend limit):"
	}
	content += lipgloss.NewStyle().Foreground(cAccent).Render(label) + "\n\n"
	content += m.qrURI

	content += "\n\n" + lipgloss.NewStyle().Foreground(cMuted).Render("Scan the QR code with your wallet app to sign this approval")
	content += "\n" + lipgloss.NewStyle().Foreground(cMuted).Render("Press c to copy • Press ESC or Enter to close")

	if m.copiedMsg != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(cAccent).Bold(true).Render(m.copiedMsg)
	}
	return content
}

func (m *model) globalHeader() string {
	availableWidth := helpers.Max(0, m.w-8) // Account for panel padding

	var left string
	if m.request != nil {
		left = lipgloss.NewStyle().
			Foreground(cAccent2).
			Bold(true).
			Render("From: " + helpers.FadeString(helpers.ShortenAddr(m.from.Hex()), "#F25D94", "#EDFF82"))
	} else {
		left = lipgloss.NewStyle().
			Foreground(cMuted).
			Render("No pending request")
	}

	// RPC Status with green dot
	statusIcon := "○"
	statusColor := lipgloss.Color("#c01c28")
	var statusText string
	switch {
	case m.rpcURL == "":
		statusText = "No RPC"
	case m.rpcConnecting:
		statusText = "Connecting..."
	case !m.rpcConnected:
		statusText = "Connection Failed"
	default:
		statusIcon = "●"
		statusColor = cAccent
		statusText = m.cfg.ActiveRPCName()
		if statusText == "" {
			statusText = "Connected"
		}
		if id := store.Select(m.store, store.CurrentChainID); id != nil {
			statusText += fmt.Sprintf(" #%s", id)
		}
	}

	rpcDisplay := lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render(statusIcon + " " + statusText)

	titleText := lipgloss.NewStyle().Bold(true).Render(helpers.FadeString("charm approve", "#7EE787", "#82CFFD"))

	leftWidth := lipgloss.Width(left)
	rpcWidth := lipgloss.Width(rpcDisplay)
	titleWidth := lipgloss.Width(titleText)
	totalOtherWidth := leftWidth + rpcWidth + titleWidth

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		// Not enough space, stack vertically
		headerLine = left + "\n" + titleText + "\n" + rpcDisplay
	} else {
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding

		headerLine = left + strings.Repeat(" ", helpers.Max(1, leftPadding)) +
			titleText + strings.Repeat(" ", helpers.Max(1, rightPadding)) + rpcDisplay
	}

	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + separator
}

// approveProps prepares everything the approval screen renders
func (m *model) approveProps() approve.Props {
	form := m.rec.Form()
	up := m.rec.Upstream()
	st := m.store.State()

	origin := ""
	if m.request != nil {
		origin = m.request.Origin
	}
	subject := store.SubjectMetadata(origin)(st)

	tokenText := reconcile.TokensText(m.details.Standard, m.details.TokenAmount, m.details.Symbol, m.details.Name)

	data, _, _ := m.approvalData()

	p := approve.Props{
		Width:          m.w,
		TokensText:     tokenText,
		Origin:         origin,
		SiteName:       subject.Name,
		IconURL:        store.SubjectIcon(origin)(st),
		Standard:       m.details.Standard,
		AssetAddress:   m.details.AssetAddress,
		Spender:        m.details.ToAddress,
		IsContract:     up.IsContractAddress,
		Classifying:    m.rec.Contract.Pending(),
		UserBalance:    m.details.UserBalance,
		Symbol:         m.details.Symbol,
		ProposedAmount: up.SuggestedAmount,
		CustomAmount:   form.CustomAmount,
		Diverged:       m.rec.Diverged(),
		FeeError:       m.feeErr,
		UseNonceField:  store.UseNonceField(st),
		NextNonce:      store.NextSuggestedNonce(st),
		CustomNonce:    form.CustomNonce,
		NonceWarning:   form.Warning,
		ExplorerURL:    store.ExplorerAddressURL(m.details.ToAddress)(st),
		Calldata:       data,
		LoadedAt:       helpers.LoadedAt(m.details.LoadedAt, m.loading),
		ErrMessage:     m.details.ErrMessage,
		Focused:        m.focused,
		CopiedFeedback: m.copiedMsg,
	}
	if m.fee.TotalWei != nil {
		p.Fee = helpers.FormatNative(m.fee.TotalWei, store.NativeCurrency(st)) + fmt.Sprintf(" (%d gas)", m.fee.Gas)
	}
	return p
}

func (m *model) renderApprove() string {
	if m.request == nil {
		return lipgloss.NewStyle().Foreground(cMuted).Render("No pending approval request.")
	}
	if !m.details.Known() {
		out := m.spin.View() + " Loading approval details..."
		if m.details.ErrMessage != "" {
			out += "\n\n" + lipgloss.NewStyle().Foreground(cDanger).Render(m.details.ErrMessage)
			out += "\n" + lipgloss.NewStyle().Foreground(cMuted).Render("Press Esc to reject, r to retry")
		}
		return out
	}
	return approve.Render(m.approveProps())
}

func (m *model) View() string {
	if store.Select(m.store, store.CurrentModal) != store.ModalNone && m.modalForm != nil {
		return m.renderModal()
	}

	headerPanel := panelStyle.Width(helpers.Max(0, m.w-2)).Render(m.globalHeader())

	var pageContent string
	var nav string

	switch store.Select(m.store, store.CurrentPage) {
	case config.PageHome:
		origin := ""
		if m.request != nil {
			origin = m.request.Origin
		}
		pageContent = home.Render(m.homeForm, origin)
		nav = home.Nav(helpers.Max(0, m.w-2))

	case config.PageCreateNFT:
		pageContent = m.nftForm.View()
		nav = nft.Nav(helpers.Max(0, m.w-2))

	case config.PageConfirmApprove:
		if m.showQR {
			pageContent = m.renderQRContent()
		} else {
			pageContent = m.renderApprove()
		}
		nav = approve.Nav(helpers.Max(0, m.w-2), store.Select(m.store, store.UseNonceField))
	}

	body := panelStyle.Width(helpers.Max(0, m.w-2)).Render(pageContent)

	parts := []string{headerPanel, body, nav}
	if m.logEnabled {
		parts = append(parts, logview.Render(m.w, m.h, m.logReady, m.logSpinner.View(), m.logViewport))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
