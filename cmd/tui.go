package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/staffplan/internal/cli"
	"github.com/theirongolddev/staffplan/internal/config"
	"github.com/theirongolddev/staffplan/internal/document"
	"github.com/theirongolddev/staffplan/internal/tui"
	"github.com/theirongolddev/staffplan/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var flagTUIWrite bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Edit a proposal interactively",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().BoolVarP(&flagTUIWrite, "write", "w", false, "Write edits back to --file on exit")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	// Background fills only render under a color profile.
	lipgloss.SetColorProfile(termenv.TrueColor)

	p, seeded, err := loadProposal(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Config:    cfg,
		Seeded:    seeded,
		NeedSetup: !config.Exists(),
	}
	st, release, err := openStore(cfg)
	if err != nil {
		if !flagQuiet {
			fmt.Fprintln(os.Stderr, cli.RenderWarning("store unavailable: "+err.Error()))
		}
	} else {
		defer release()
		opts.Store = st
	}

	final, err := tea.NewProgram(tui.NewApp(p, opts), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if flagTUIWrite && flagFile != "" {
		if app, ok := final.(tui.App); ok {
			if err := document.WriteFile(flagFile, app.Proposal()); err != nil {
				return err
			}
			fmt.Printf("  Wrote %s\n", flagFile)
		}
	}
	return nil
}
