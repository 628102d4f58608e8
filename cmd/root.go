package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/veritas-labs/versewise/internal/config"
	"github.com/veritas-labs/versewise/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "versewise",
	Short: "Bible quiz for the terminal",
	Long:  "Versewise — a scripture quiz with difficulty-aware question selection and score-based level progression.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides VERSEWISE_DB env var)")
	rootCmd.PersistentFlags().String("user", "", "Player name (overrides configured user)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then the configured path, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// resolveUser returns the player name from the --user flag or config.
func resolveUser(cmd *cobra.Command, cfg *config.Config) string {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u
	}
	return cfg.User
}

// newLogger builds the process logger.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
