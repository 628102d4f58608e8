package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/veritas-labs/versewise/internal/config"
	"github.com/veritas-labs/versewise/internal/levels"
	"github.com/veritas-labs/versewise/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show player progress and recent sessions",
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
		player, err := st.Players().Get(ctx, user)
		if err != nil {
			return fmt.Errorf("load player stats: %w", err)
		}

		calc := levels.MustCalculator(levels.DefaultTable())
		cur := calc.CurrentLevel(player.BestScore)
		progress := calc.ProgressToNext(player.BestScore)

		fmt.Printf("player          %s\n", user)
		fmt.Printf("level           %d (%.0f%% to next)\n", cur.Level, progress*100)
		fmt.Printf("best score      %d\n", player.BestScore)
		fmt.Printf("sessions        %d\n", player.TotalSessions)
		fmt.Printf("longest streak  %d\n", player.LongestStreak)

		if len(player.CategoryStats) > 0 {
			fmt.Println("\nby category:")
			cats := make([]string, 0, len(player.CategoryStats))
			for c := range player.CategoryStats {
				cats = append(cats, c)
			}
			sort.Strings(cats)
			for _, c := range cats {
				bs := player.CategoryStats[c]
				fmt.Printf("  %-14s %d/%d\n", c, bs.Correct, bs.Answered)
			}
		}

		recent, err := st.Summaries().Recent(ctx, user, 5)
		if err != nil {
			return fmt.Errorf("load recent sessions: %w", err)
		}
		if len(recent) > 0 {
			fmt.Println("\nrecent sessions:")
			for _, sum := range recent {
				flag := ""
				if sum.Degraded {
					flag = " (offline set)"
				}
				fmt.Printf("  %s  %-8s  score %-6d  %d/%d correct  %s%s\n",
					sum.CompletedAt.Format("2006-01-02 15:04"), sum.Mode, sum.FinalScore,
					sum.CorrectCount, sum.AnsweredCount, sum.Duration.Round(time.Second), flag)
			}
		}
		return nil
	},
}
