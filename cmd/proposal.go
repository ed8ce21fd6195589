package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/theirongolddev/staffplan/internal/narrative"

	"github.com/spf13/cobra"
)

var (
	flagProposalOut  string
	flagProposalFirm string
)

var proposalCmd = &cobra.Command{
	Use:   "proposal",
	Short: "Render the client-facing proposal as Markdown",
	RunE:  runProposal,
}

func init() {
	proposalCmd.Flags().StringVarP(&flagProposalOut, "output", "o", "", "Write to file instead of stdout")
	proposalCmd.Flags().StringVar(&flagProposalFirm, "firm", "", "Firm name for the team section (overrides config)")
	rootCmd.AddCommand(proposalCmd)
}

func runProposal(cmd *cobra.Command, _ []string) error {
	cfg, p, proj, err := loadAndProject(cmd.Context())
	if err != nil {
		return err
	}

	opts := narrative.Options{Firm: cfg.General.FirmName}
	if flagProposalFirm != "" {
		opts.Firm = flagProposalFirm
	}

	if flagProposalOut == "" {
		w := bufio.NewWriter(os.Stdout)
		if err := narrative.Render(w, p, proj, opts); err != nil {
			return err
		}
		return w.Flush()
	}

	f, err := os.Create(flagProposalOut) //nolint:gosec // output path is user-supplied
	if err != nil {
		return fmt.Errorf("creating %s: %w", flagProposalOut, err)
	}
	if err := narrative.Render(f, p, proj, opts); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %s\n", flagProposalOut)
	}
	return nil
}
