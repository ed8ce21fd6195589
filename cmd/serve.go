package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theirongolddev/staffplan/internal/daemon"
	"github.com/theirongolddev/staffplan/internal/remote"
	"github.com/theirongolddev/staffplan/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagServeAddr         string
	flagServeToken        string
	flagServeEventsBuffer int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the proposal store and projection engine over HTTP",
	RunE:  runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show status of a running server",
	RunE:  runServeStatus,
}

func init() {
	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().StringVar(&flagServeToken, "token", "", "Require this bearer token on /v1 routes")
	serveCmd.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 0, "Max in-memory events retained")

	serveCmd.AddCommand(serveStatusCmd)
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	log := newLogger(cfg)

	path := flagDB
	if path == "" {
		path = cfg.StorePath()
	}
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	scfg := daemon.Config{
		Addr:         cfg.Server.Addr,
		Token:        cfg.Server.Token,
		EventsBuffer: cfg.Server.EventsBuffer,
		Logger:       log,
	}
	if flagServeAddr != "" {
		scfg.Addr = flagServeAddr
	}
	if flagServeToken != "" {
		scfg.Token = flagServeToken
	}
	if flagServeEventsBuffer > 0 {
		scfg.EventsBuffer = flagServeEventsBuffer
	}
	svc := daemon.New(scfg, st)

	if !flagQuiet {
		fmt.Printf("  staffplan server on http://%s\n", scfg.Addr)
		fmt.Printf("  Database: %s\n", path)
		if scfg.Token == "" {
			fmt.Println("  No token set; /v1 routes are open to anyone who can reach the address.")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runServeStatus(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()

	url := remoteURL(cfg)
	if url == "" {
		addr := cfg.Server.Addr
		if flagServeAddr != "" {
			addr = flagServeAddr
		}
		url = "http://" + addr
	}
	token := cfg.Remote.Token
	if token == "" {
		token = cfg.Server.Token
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	st, err := remote.NewClient(url, token).Status(ctx)
	if err != nil {
		fmt.Printf("  Server: unreachable at %s (%v)\n", url, err)
		return nil
	}

	fmt.Printf("  Server: %s\n", url)
	fmt.Printf("  Up since: %s\n", st.StartedAt.Local().Format(time.RFC3339))
	if st.StorePath != "" {
		fmt.Printf("  Database: %s\n", st.StorePath)
	}
	fmt.Printf("  Proposals: %d\n", st.Proposals)
	fmt.Printf("  Saves: %d\n", st.Saves)
	fmt.Printf("  Projections: %d\n", st.Projections)
	fmt.Printf("  Events: %d buffered, %d subscribers\n", st.EventCount, st.SubscriberCount)
	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", st.LastError)
	}
	return nil
}
