package main

import (
	"fmt"
	"os"

	"charm-approve-tui/config"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// -------------------- MAIN --------------------

var (
	configPath  string
	requestPath string
)

var rootCmd = &cobra.Command{
	Use:   "charm-approve-tui",
	Short: "Review token approval requests in the terminal",
	Long: `charm-approve-tui shows a pending ERC-20/721/1155 approval, lets you
adjust the spend limit and nonce, and hands the result to a mobile wallet
as an EIP-681 QR code.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(config.PageHome, nil)
	},
}

var confirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Open the approval screen for a pending request",
	Example: `  charm-approve-tui confirm --request request.json
  cat request.json | charm-approve-tui confirm --request -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := config.LoadRequest(requestPath)
		if err != nil {
			return err
		}
		return run(config.PageConfirmApprove, &req)
	},
}

var createNFTCmd = &cobra.Command{
	Use:   "create-nft",
	Short: "Open the create NFT form",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(config.PageCreateNFT, nil)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.charm-approve-config.json)")

	confirmCmd.Flags().StringVarP(&requestPath, "request", "r", "", "approval request JSON file, - for stdin")
	_ = confirmCmd.MarkFlagRequired("request")

	rootCmd.AddCommand(confirmCmd)
	rootCmd.AddCommand(createNFTCmd)
}

func run(page config.Page, req *config.ApprovalRequest) error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg := config.LoadOrCreate(path)

	m := newModel(cfg, path, req, page)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
