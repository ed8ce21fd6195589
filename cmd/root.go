package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/theirongolddev/staffplan/internal/cli"
	"github.com/theirongolddev/staffplan/internal/config"
	"github.com/theirongolddev/staffplan/internal/document"
	"github.com/theirongolddev/staffplan/internal/logging"
	"github.com/theirongolddev/staffplan/internal/model"
	"github.com/theirongolddev/staffplan/internal/projection"
	"github.com/theirongolddev/staffplan/internal/remote"
	"github.com/theirongolddev/staffplan/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagFile    string
	flagID      string
	flagView    string
	flagDB      string
	flagRemote  string
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "staffplan",
	Short:         "Staffing proposal projections",
	Long:          "Project yearly revenue, labor cost and margins for staffing proposals across clients.",
	RunE:          runSummary,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.RenderWarning(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Proposal file (.json or .toml)")
	rootCmd.PersistentFlags().StringVar(&flagID, "id", "", "Load a saved proposal by ID")
	rootCmd.PersistentFlags().StringVarP(&flagView, "view", "v", "", "View to project: Combined or a client name")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Proposal database path")
	rootCmd.PersistentFlags().StringVar(&flagRemote, "remote", "", "Use a staffplan server instead of the local database")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress warnings")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Debug logging")
}

// loadConfig reads the config file, falling back to defaults on error.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintln(os.Stderr, cli.RenderWarning(err.Error()))
	}
	return cfg
}

func newLogger(cfg config.Config) *slog.Logger {
	level := cfg.Log.Level
	if flagVerbose {
		level = "debug"
	}
	return logging.New(os.Stderr, level)
}

func remoteURL(cfg config.Config) string {
	if url := strings.TrimSpace(flagRemote); url != "" {
		return url
	}
	return strings.TrimSpace(cfg.Remote.URL)
}

// openStore returns the remote client when a server URL is configured and
// the local SQLite store otherwise. The returned func releases it.
func openStore(cfg config.Config) (document.Store, func(), error) {
	if url := remoteURL(cfg); url != "" {
		return remote.NewClient(url, cfg.Remote.Token), func() {}, nil
	}

	path := flagDB
	if path == "" {
		path = cfg.StorePath()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return st, func() { _ = st.Close() }, nil
}

// loadProposal resolves the proposal a command works on: --id from the
// store, then --file or the configured proposal file, then the built-in
// defaults. The bool reports whether defaults were used.
func loadProposal(ctx context.Context, cfg config.Config) (model.Proposal, bool, error) {
	var (
		p      model.Proposal
		seeded bool
		err    error
	)

	path := flagFile
	if path == "" {
		path = cfg.General.ProposalFile
	}

	switch {
	case flagID != "":
		p, err = loadStored(ctx, cfg, flagID)
		if err != nil {
			return p, false, err
		}
	case path != "":
		p, err = document.ReadFile(path)
		if err != nil {
			return p, false, err
		}
	default:
		p = model.DefaultProposal(time.Now())
		p.Settings = cfg.Defaults.Settings()
		if cfg.General.DefaultView != "" {
			p.View = cfg.General.DefaultView
		}
		seeded = true
	}

	if flagView != "" {
		p.View = flagView
	}
	return p, seeded, nil
}

func loadStored(ctx context.Context, cfg config.Config, id string) (model.Proposal, error) {
	st, release, err := openStore(cfg)
	if err != nil {
		return model.Proposal{}, err
	}
	defer release()

	p, err := st.Load(ctx, id)
	if errors.Is(err, document.ErrNotFound) {
		return p, fmt.Errorf("no saved proposal with id %s", id)
	}
	return p, err
}

// projectProposal runs the engine locally, or on the server when one is
// configured.
func projectProposal(ctx context.Context, cfg config.Config, p model.Proposal) (model.Projection, error) {
	if url := remoteURL(cfg); url != "" {
		return remote.NewClient(url, cfg.Remote.Token).Project(ctx, p, p.View)
	}
	return projection.Project(p.Input()), nil
}

// loadAndProject is the shared path for the read-only report commands.
func loadAndProject(ctx context.Context) (config.Config, model.Proposal, model.Projection, error) {
	cfg := loadConfig()
	p, _, err := loadProposal(ctx, cfg)
	if err != nil {
		return cfg, p, model.Projection{}, err
	}
	proj, err := projectProposal(ctx, cfg, p)
	if err != nil {
		return cfg, p, proj, err
	}
	printIssues(proj.Issues)
	return cfg, p, proj, nil
}

func printIssues(issues []model.Issue) {
	if flagQuiet {
		return
	}
	for _, issue := range issues {
		fmt.Fprintln(os.Stderr, cli.RenderWarning(issue.String()))
	}
}
