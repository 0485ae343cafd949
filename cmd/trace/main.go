// Command trace is the Final-Trace Expedition 33 CLI: it lists, describes,
// and solves puzzles, serves the HTTP API, and runs the analytics tooling.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"finaltrace/internal/config"
	"finaltrace/internal/engine"
	"finaltrace/internal/logging"
	"finaltrace/internal/puzzle"
	"finaltrace/internal/store"
)

var (
	// Global flags
	verbose bool
	cfgPath string
	dbPath  string

	// Logger
	logger *zap.Logger
)

// Exit codes preserved from the original CLI.
const (
	exitMissingPuzzle = 2
	exitUnknownPuzzle = 3
)

// errMissingPuzzle marks a solve/describe invocation without a puzzle name.
var errMissingPuzzle = errors.New("provide puzzle name")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "trace",
	Short: "Final-Trace Expedition 33 - research and training puzzle toolkit",
	Long: `Final-Trace is a research and training toolkit built around a registry
of expedition puzzles.

The CLI inspects and attempts puzzles, the serve command exposes the same
engine over a small HTTP JSON API, and the analyze/seed/stats commands
exercise the engine and report on recorded attempts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize the command logger
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return logging.Initialize(logging.Options{
			Dir:        cfg.Logging.Dir,
			DebugMode:  cfg.Logging.DebugMode,
			Level:      cfg.Logging.Level,
			JSONFormat: cfg.Logging.JSONFormat,
			Categories: cfg.Logging.Categories,
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Shutdown()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// listCmd prints the registered puzzle names
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered puzzles",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range puzzle.Default().Names() {
			fmt.Println(name)
		}
		return nil
	},
}

// loadConfig loads the YAML config and applies CLI flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Store.Backend = "sqlite"
		cfg.Store.Path = dbPath
	}
	return cfg, nil
}

// openStore builds the attempt store the config asks for. One-shot
// commands pass ephemeral=true to avoid touching the database unless the
// user asked for persistence explicitly.
func openStore(cfg *config.Config, ephemeral bool) (store.AttemptStore, error) {
	if ephemeral || cfg.Store.Backend == "memory" {
		return store.NewMemoryStore(), nil
	}
	return store.NewSQLiteStore(cfg.Store.Path)
}

func buildEngine(st store.AttemptStore) *engine.Engine {
	return engine.New(puzzle.Default(), st)
}

// exitCodeFor maps well-known errors onto the CLI's historical exit codes.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, errMissingPuzzle):
		return exitMissingPuzzle
	case errors.Is(err, engine.ErrPuzzleNotFound):
		return exitUnknownPuzzle
	default:
		return 1
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "trace.yaml", "path to config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite database path (overrides config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
