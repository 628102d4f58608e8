package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/veritas-labs/versewise/internal/app"
	"github.com/veritas-labs/versewise/internal/catalog"
	"github.com/veritas-labs/versewise/internal/config"
	"github.com/veritas-labs/versewise/internal/ledger"
	"github.com/veritas-labs/versewise/internal/quiz"
	"github.com/veritas-labs/versewise/internal/scoring"
	"github.com/veritas-labs/versewise/internal/selector"
	"github.com/veritas-labs/versewise/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log, err := newLogger(cfg)
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		defer log.Sync()

		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		// A fresh install gets the embedded set so play works offline.
		if err := st.Questions().SeedIfEmpty(ctx, catalog.Fallback()); err != nil {
			return fmt.Errorf("seed questions: %w", err)
		}

		writer := ledger.NewAsyncWriter(st.Usage(), log)
		defer writer.Close()

		engine, err := quiz.NewEngine(quiz.Config{
			Catalog:      catalog.NewCachedSource(st.Questions(), cfg.CatalogTTL, nil),
			Ledger:       writer,
			Logger:       log,
			RecentWindow: cfg.RecentWindow,
			StreakBonus:  cfg.StreakBonus,
		})
		if err != nil {
			return fmt.Errorf("build engine: %w", err)
		}

		user := resolveUser(cmd, cfg)
		mode, _ := cmd.Flags().GetString("mode")
		category, _ := cmd.Flags().GetString("category")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		testament, _ := cmd.Flags().GetString("testament")
		count, _ := cmd.Flags().GetInt("count")
		perQuestion, _ := cmd.Flags().GetInt("seconds")

		playerStats, err := st.Players().Get(ctx, user)
		if err != nil {
			return fmt.Errorf("load player stats: %w", err)
		}

		opts := quiz.Options{
			UserID:          user,
			Mode:            scoring.GameMode(mode),
			Category:        category,
			Difficulty:      catalog.Difficulty(difficulty),
			Testament:       catalog.Testament(testament),
			QuestionCount:   count,
			TimePerQuestion: time.Duration(perQuestion) * time.Second,
			BestScore:       playerStats.BestScore,
		}
		if opts.Mode == scoring.ModeLearning && category != "" {
			opts.Focus = selector.FocusAreas{Categories: []string{category}}
		}

		return app.Run(app.Options{
			Engine: engine,
			Start:  opts,
			OnComplete: func(sum *quiz.Summary) error {
				if err := st.Summaries().Append(ctx, sum); err != nil {
					return err
				}
				return st.Players().ApplySummary(ctx, sum)
			},
		})
	},
}

func init() {
	playCmd.Flags().String("mode", "timed", "Game mode: timed, endless, category, mixed, level, learning")
	playCmd.Flags().String("category", "", "Restrict to a category")
	playCmd.Flags().String("difficulty", "", "Restrict to a difficulty: easy, medium, hard")
	playCmd.Flags().String("testament", "", "Restrict to a testament: old, new")
	playCmd.Flags().Int("count", 0, "Question count (mode default when 0)")
	playCmd.Flags().Int("seconds", 0, "Seconds per question in timed mode (default 30)")
}
