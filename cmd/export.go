package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/staffplan/internal/document"
	"github.com/theirongolddev/staffplan/internal/export"

	"github.com/spf13/cobra"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the projection workbook (.xlsx) or the proposal document (.json, .toml)",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "proposal.xlsx", "Output path; the extension picks the format")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	_, p, proj, err := loadAndProject(cmd.Context())
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(flagExportOut), ".xlsx") {
		err = export.WriteFile(flagExportOut, p, proj)
	} else {
		err = document.WriteFile(flagExportOut, p)
	}
	if err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %s\n", flagExportOut)
	}
	return nil
}
