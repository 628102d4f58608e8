package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veritas-labs/versewise/internal/config"
	"github.com/veritas-labs/versewise/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear a player's question history",
	Long:  "Clears the per-question exposure history so selection starts fresh. Session summaries and aggregate stats are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		user := resolveUser(cmd, cfg)
		if err := st.Usage().Reset(ctx, user); err != nil {
			return fmt.Errorf("reset history: %w", err)
		}
		fmt.Printf("question history cleared for %s\n", user)
		return nil
	},
}
