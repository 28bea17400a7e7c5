package home

import (
	"charm-approve-tui/styles"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Menu values
const (
	ChoiceApprove = "approve"
	ChoiceNFT     = "nft"
	ChoiceQuit    = "quit"
)

// TempSelection stores the home menu selection
var TempSelection string

// CreateForm creates the home menu form. The approval entry is only offered
// when a request is loaded.
func CreateForm(hasRequest bool) *huh.Form {
	TempSelection = ""

	opts := []huh.Option[string]{}
	if hasRequest {
		opts = append(opts, huh.NewOption("Review approval request", ChoiceApprove))
	}
	opts = append(opts,
		huh.NewOption("Create NFT", ChoiceNFT),
		huh.NewOption("Quit", ChoiceQuit),
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(opts...).
				Title("Main Menu").
				Description("Select a view to navigate to").
				Value(&TempSelection),
		),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}

// Render renders the home view
func Render(form *huh.Form, requestOrigin string) string {
	if form == nil {
		return "Loading menu..."
	}
	if requestOrigin == "" {
		return form.View()
	}
	pending := lipgloss.NewStyle().Foreground(styles.CMuted).Render("Pending request from ") +
		lipgloss.NewStyle().Foreground(styles.CAccent2).Render(requestOrigin)
	return pending + "\n\n" + form.View()
}

// Nav returns the navigation bar for home view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("↑/↓") + " select",
		styles.Key("Enter") + " go",
		styles.Key("l") + " logger",
		styles.Key("Esc") + " quit",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}
