package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerpath/internal/config"
	"github.com/abhisek/careerpath/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "careerpath",
	Short: "Career roadmap tracker",
	Long:  "careerpath is a terminal app that walks you through a learning roadmap, unlocking milestones as their prerequisites are completed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

// Execute runs the root command. ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CAREERPATH_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/careerpath/config.yaml)")
	rootCmd.PersistentFlags().String("catalog", "", "Roadmap catalog file (YAML or JSON); implies catalog.source=file")

	rootCmd.AddCommand(milestoneCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(resourcesCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and environment with the persistent
// flags applied on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	var o config.Overrides
	o.DB, _ = cmd.Flags().GetString("db")
	o.CatalogPath, _ = cmd.Flags().GetString("catalog")
	return config.Load(path, o)
}

// resolveDBPath returns the database path using --db or the db config key
// (highest priority), then CAREERPATH_DB, then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DB != "" {
		if err := store.EnsureDir(cfg.DB); err != nil {
			return "", fmt.Errorf("create db dir: %w", err)
		}
		return cfg.DB, nil
	}
	return store.DefaultDBPath()
}
