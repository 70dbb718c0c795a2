package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the YAML config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Long: `Writes the configuration currently in effect (defaults, the existing
file and any POSEIDON_* overrides) to --config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", configPath, err)
		}

		if err := cfg.Save(configPath); err != nil {
			return err
		}
		logger.Info("Wrote config", zap.String("path", configPath))
		fmt.Printf("Wrote %s\n", configPath)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}
