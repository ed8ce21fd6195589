package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/staffplan/internal/config"
	"github.com/theirongolddev/staffplan/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set proposal defaults, firm name and theme",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	vals := &tui.SetupValues{}
	if err := tui.NewSetupForm(cfg, vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup canceled, nothing saved.")
			return nil
		}
		return err
	}

	cfg, err := tui.ApplySetup(cfg, *vals)
	if err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `staffplan setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
