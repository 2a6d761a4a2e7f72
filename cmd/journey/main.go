package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ravenerp/journey-sync/internal/commands"
	"github.com/ravenerp/journey-sync/internal/config"
	"github.com/ravenerp/journey-sync/internal/erp"
	"github.com/ravenerp/journey-sync/internal/logging"
	"github.com/ravenerp/journey-sync/internal/places"
	"github.com/ravenerp/journey-sync/internal/store"
)

var Version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(cfg.Environment)
	logger.Debug("journey starting",
		slog.String("version", Version),
		slog.String("state_dir", cfg.StateDir),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Load(cfg.StateDir, logger)
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}
	defer st.Close()

	// The address stored on the device wins over the environment.
	resolveServer := func() string {
		if url := st.ServerURL(); url != "" {
			return url
		}

		return cfg.ServerURL
	}

	env := &commands.Env{
		Config:   cfg,
		Logger:   logger,
		Store:    st,
		API:      erp.NewClient(resolveServer, nil, logger),
		Searcher: places.NewSearcher(cfg.PlacesURL, nil),
	}

	return commands.New(env).ExecuteContext(ctx)
}
