package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"finaltrace/internal/logging"
	"finaltrace/internal/server"
)

var serveAddr string

// serveCmd runs the HTTP JSON API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the puzzle HTTP API",
	Long: `Starts the HTTP JSON API:

  GET  /                     status and puzzle list
  GET  /puzzle/{name}        puzzle metadata
  POST /puzzle/{name}/solve  attempt a puzzle
  GET  /stats                attempt statistics

Attempts are recorded in the configured store. SIGINT/SIGTERM trigger a
graceful shutdown.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	st, err := openStore(cfg, false)
	if err != nil {
		return err
	}
	defer st.Close()
	eng := buildEngine(st)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Server.WatchConfig {
		watcher, err := server.NewConfigWatcher(cfgPath)
		if err != nil {
			logger.Sugar().Warnf("config watcher unavailable: %v", err)
		} else if err := watcher.Start(ctx); err != nil {
			logger.Sugar().Warnf("config watcher failed to start: %v", err)
			watcher.Stop()
		} else {
			defer watcher.Stop()
		}
	}

	logger.Sugar().Infof("serving puzzle API on %s (store=%s)", cfg.Server.Addr, cfg.Store.Backend)
	logging.Boot("serve: addr=%s store=%s", cfg.Server.Addr, cfg.Store.Backend)

	return server.New(cfg, eng).Run(ctx)
}
