package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/staffplan/internal/document"
	"github.com/theirongolddev/staffplan/internal/model"

	"github.com/spf13/cobra"
)

var flagInitForce bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter proposal file seeded from your defaults",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&flagInitForce, "force", false, "Overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, args []string) error {
	path := "proposal.toml"
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := document.FormatOf(path); err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !flagInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg := loadConfig()
	p := model.DefaultProposal(time.Now())
	p.Settings = cfg.Defaults.Settings()
	if cfg.General.DefaultView != "" {
		p.View = cfg.General.DefaultView
	}

	if err := document.WriteFile(path, p); err != nil {
		return err
	}

	fmt.Printf("  Wrote %s\n", path)
	fmt.Printf("  Edit it, then run `staffplan -f %s`.\n", path)
	return nil
}
