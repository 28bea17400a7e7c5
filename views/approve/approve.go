package approve

import (
	"charm-approve-tui/approval"
	"charm-approve-tui/helpers"
	"charm-approve-tui/styles"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Focus targets for the two action buttons
const (
	FocusReject = iota
	FocusConfirm
)

// ContractWarning is shown when the spender turns out to be a contract
const ContractWarning = "The spender is a contract address. Make sure you trust it before granting access to your tokens."

// Props is everything the approval screen renders. Values are prepared by the
// root model so Render stays pure.
type Props struct {
	Width int

	TokensText string
	Origin     string
	SiteName   string
	IconURL    string

	Standard     approval.Standard
	AssetAddress string
	Spender      string
	IsContract   bool
	Classifying  bool

	UserBalance string
	Symbol      string

	ProposedAmount string
	CustomAmount   string
	Diverged       bool

	Fee      string
	FeeError string

	UseNonceField  bool
	NextNonce      *uint64
	CustomNonce    *uint64
	NonceWarning   string
	ExplorerURL    string
	Calldata       []byte
	LoadedAt       string
	ErrMessage     string
	Focused        int
	CopiedFeedback string
}

func row(label, value string) string {
	return styles.LabelStyle.Render(fmt.Sprintf("%-16s", label)) + styles.ValueStyle.Render(value)
}

// Render renders the approval confirmation screen
func Render(p Props) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Give permission to access your " + p.TokensText + "?"))
	b.WriteString("\n\n")

	site := p.Origin
	if p.SiteName != "" {
		site = p.SiteName + " (" + p.Origin + ")"
	}
	if p.IconURL != "" {
		site += styles.LabelStyle.Render("  icon: " + p.IconURL)
	}
	b.WriteString(row("Requested by", site) + "\n")

	spender := helpers.FadeString(helpers.ShortenAddr(p.Spender), "#F25D94", "#EDFF82")
	if p.Classifying {
		spender += styles.LabelStyle.Render("  checking...")
	}
	b.WriteString(styles.LabelStyle.Render(fmt.Sprintf("%-16s", "Spender")) + spender + "\n")
	if p.ExplorerURL != "" {
		b.WriteString(row("", p.ExplorerURL) + "\n")
	}
	b.WriteString(row("Asset", helpers.ShortenAddr(p.AssetAddress)+" "+string(p.Standard)) + "\n")

	if p.IsContract {
		b.WriteString("\n" + styles.BannerStyle.Width(helpers.Max(20, helpers.Min(p.Width-8, 72))).Render(ContractWarning) + "\n")
	}

	b.WriteString("\n")
	if p.UserBalance != "" {
		b.WriteString(row("Balance", p.UserBalance+" "+p.Symbol) + "\n")
	}
	if p.Standard == approval.ERC20 {
		b.WriteString(row("Proposed limit", p.ProposedAmount+" "+p.Symbol) + "\n")
		custom := p.CustomAmount
		if !p.Diverged {
			custom = styles.LabelStyle.Render("same as proposed")
		} else {
			custom = styles.WarnStyle.Render(custom + " " + p.Symbol)
		}
		b.WriteString(row("Custom limit", custom) + "\n")
	}

	if p.FeeError != "" {
		b.WriteString(row("Network fee", styles.WarnStyle.Render(p.FeeError)) + "\n")
	} else if p.Fee != "" {
		b.WriteString(row("Network fee", p.Fee) + "\n")
	}

	if p.UseNonceField {
		b.WriteString(row("Nonce", nonceText(p.NextNonce, p.CustomNonce)) + "\n")
	}
	if p.NonceWarning != "" {
		b.WriteString(styles.WarnStyle.Render("⚠ "+p.NonceWarning) + "\n")
	}

	b.WriteString("\n" + row("Data", helpers.ShortHex(p.Calldata, 66)) + "\n")
	if p.LoadedAt != "" {
		b.WriteString(styles.LabelStyle.Render(p.LoadedAt) + "\n")
	}
	if p.ErrMessage != "" {
		b.WriteString(styles.WarnStyle.Render(p.ErrMessage) + "\n")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Button("Reject", p.Focused == FocusReject),
		"  ",
		styles.Button("Confirm", p.Focused == FocusConfirm),
	)
	b.WriteString("\n" + buttons)

	if p.CopiedFeedback != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(styles.CAccent).Bold(true).Render(p.CopiedFeedback))
	}
	return b.String()
}

func nonceText(next, custom *uint64) string {
	switch {
	case custom != nil && next != nil:
		return fmt.Sprintf("%d (suggested %d)", *custom, *next)
	case custom != nil:
		return fmt.Sprintf("%d", *custom)
	case next != nil:
		return fmt.Sprintf("%d", *next)
	default:
		return "unknown"
	}
}

// Nav returns the navigation bar for the approval view
func Nav(width int, useNonceField bool) string {
	keys := []string{
		styles.Key("←/→") + " choose",
		styles.Key("Enter") + " select",
		styles.Key("e") + " edit limit",
	}
	if useNonceField {
		keys = append(keys, styles.Key("n")+" nonce")
	}
	keys = append(keys,
		styles.Key("c")+" copy spender",
		styles.Key("l")+" logger",
		styles.Key("Esc")+" reject",
	)
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}
