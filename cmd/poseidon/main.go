package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ngmaloney/poseidon/internal/config"
	"github.com/ngmaloney/poseidon/internal/logging"
)

var (
	// Global flags
	configPath string
	envFile    string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "poseidon",
	Short: "Poseidon - fishing bite-likelihood advisor",
	Long: `Poseidon scores how likely fish are to bite at each fishing area from
live marine conditions, the tide, the moon and your own catch log.

Run without arguments to start the interactive terminal UI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}

		var outputs []string
		switch {
		case cfg.Log.File != "":
			outputs = []string{cfg.Log.File}
		case cmd.Name() == "tui" || cmd == cmd.Root():
			// keep log lines off the alt screen
			outputs = []string{filepath.Join(filepath.Dir(cfg.Database.Path), "poseidon.log")}
			if err := os.MkdirAll(filepath.Dir(outputs[0]), 0o755); err != nil {
				return fmt.Errorf("creating log directory: %w", err)
			}
		}

		logger, err = logging.New(level, cfg.Log.Development, outputs...)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "poseidon.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to a .env file with POSEIDON_* overrides")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(scoreCmd, logCmd, historyCmd, rateCmd, areasCmd, configCmd, tuiCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
