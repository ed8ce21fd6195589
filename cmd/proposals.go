package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/staffplan/internal/cli"
	"github.com/theirongolddev/staffplan/internal/document"
	"github.com/theirongolddev/staffplan/internal/model"

	"github.com/spf13/cobra"
)

var flagShowVersion int

var proposalsCmd = &cobra.Command{
	Use:     "proposals",
	Aliases: []string{"ls"},
	Short:   "Manage saved proposals",
	RunE:    runProposalsList,
}

var proposalsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Summarize a saved proposal",
	Args:  cobra.ExactArgs(1),
	RunE:  runProposalsShow,
}

var proposalsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current proposal as a new version",
	RunE:  runProposalsSave,
}

var proposalsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved proposal and its history",
	Args:  cobra.ExactArgs(1),
	RunE:  runProposalsDelete,
}

var proposalsVersionsCmd = &cobra.Command{
	Use:   "versions <id>",
	Short: "List the saved versions of a proposal",
	Args:  cobra.ExactArgs(1),
	RunE:  runProposalsVersions,
}

var proposalsImportCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Save every proposal file found under a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runProposalsImport,
}

func init() {
	proposalsShowCmd.Flags().IntVar(&flagShowVersion, "version", 0, "Show an older version (local database only)")

	proposalsCmd.AddCommand(proposalsShowCmd, proposalsSaveCmd, proposalsDeleteCmd,
		proposalsVersionsCmd, proposalsImportCmd)
	rootCmd.AddCommand(proposalsCmd)
}

// withStore opens the configured store for the duration of fn.
func withStore(fn func(document.Store) error) error {
	st, release, err := openStore(loadConfig())
	if err != nil {
		return err
	}
	defer release()
	return fn(st)
}

func runProposalsList(cmd *cobra.Command, _ []string) error {
	return withStore(func(st document.Store) error {
		entries, err := st.List(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("SAVED PROPOSALS  %d", len(entries))))
		fmt.Println()
		if len(entries) == 0 {
			fmt.Println("  Nothing saved yet. Run `staffplan proposals save -f FILE`.")
			fmt.Println()
			return nil
		}

		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{
				e.ID,
				e.Title,
				e.Client,
				cli.FormatDate(e.Date),
				e.SavedAt.Local().Format("Jan 02 15:04"),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"ID", "Title", "Client", "Date", "Saved"},
			Rows:    rows,
		}))
		return nil
	})
}

type versionLoader interface {
	LoadVersion(ctx context.Context, id string, version int) (model.Proposal, error)
}

func runProposalsShow(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, release, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer release()

	ctx := cmd.Context()
	var p model.Proposal
	if flagShowVersion > 0 {
		vl, ok := st.(versionLoader)
		if !ok {
			return errors.New("--version needs the local database")
		}
		p, err = vl.LoadVersion(ctx, args[0], flagShowVersion)
	} else {
		p, err = st.Load(ctx, args[0])
	}
	if errors.Is(err, document.ErrNotFound) {
		return fmt.Errorf("no saved proposal with id %s", args[0])
	}
	if err != nil {
		return err
	}

	if flagView != "" {
		p.View = flagView
	}
	proj, err := projectProposal(ctx, cfg, p)
	if err != nil {
		return err
	}
	printIssues(proj.Issues)
	printSummary(p, proj)
	return nil
}

func runProposalsSave(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	ctx := cmd.Context()
	p, _, err := loadProposal(ctx, cfg)
	if err != nil {
		return err
	}

	st, release, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer release()

	res, err := st.Save(ctx, p)
	if err != nil {
		return err
	}
	fmt.Printf("  Saved %q as %s (version %d)\n", p.Title, res.ID, res.Version)

	// Record the ID in the source file so the next save adds a version.
	if flagFile != "" && p.ID == "" {
		p.ID = res.ID
		if err := document.WriteFile(flagFile, p); err != nil {
			return fmt.Errorf("recording id in %s: %w", flagFile, err)
		}
	}
	return nil
}

func runProposalsDelete(cmd *cobra.Command, args []string) error {
	return withStore(func(st document.Store) error {
		err := st.Delete(cmd.Context(), args[0])
		if errors.Is(err, document.ErrNotFound) {
			return fmt.Errorf("no saved proposal with id %s", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Printf("  Deleted %s\n", args[0])
		return nil
	})
}

func runProposalsVersions(cmd *cobra.Command, args []string) error {
	return withStore(func(st document.Store) error {
		versions, err := st.Versions(cmd.Context(), args[0])
		if errors.Is(err, document.ErrNotFound) {
			return fmt.Errorf("no saved proposal with id %s", args[0])
		}
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(versions))
		for _, v := range versions {
			rows = append(rows, []string{
				fmt.Sprintf("%d", v.Version),
				v.Title,
				v.SavedAt.Local().Format("Jan 02 2006 15:04"),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Versions of " + args[0],
			Headers: []string{"Version", "Title", "Saved"},
			Rows:    rows,
		}))
		return nil
	})
}

func runProposalsImport(cmd *cobra.Command, args []string) error {
	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		if current%50 == 0 || current == total {
			fmt.Fprintf(os.Stderr, "\r  Reading [%d/%d]", current, total)
		}
	}

	res, err := document.LoadDir(args[0], progressFn)
	if err != nil {
		return err
	}
	if res.TotalFiles == 0 {
		fmt.Printf("  No proposal files found in %s\n", args[0])
		return nil
	}
	if !flagQuiet {
		fmt.Fprintln(os.Stderr)
	}

	return withStore(func(st document.Store) error {
		failed := res.FileErrors
		imported := 0
		for _, f := range res.Files {
			err := f.Err
			if err == nil {
				_, err = st.Save(cmd.Context(), f.Proposal)
				if err != nil {
					failed++
				}
			}
			if err != nil {
				if !flagQuiet {
					fmt.Fprintln(os.Stderr, cli.RenderWarning(fmt.Sprintf("%s: %v", f.Path, err)))
				}
				continue
			}
			imported++
		}

		fmt.Printf("  Imported %d of %d proposal files\n", imported, res.TotalFiles)
		if failed > 0 {
			return fmt.Errorf("%d files could not be imported", failed)
		}
		return nil
	})
}
