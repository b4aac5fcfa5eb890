package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/games/shooter"
	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs",
	Long: `Display the best recorded runs of a game mode (campaign by default).

Examples:
  shooter scores
  shooter scores shooter_arena --limit 20
  shooter scores --tui
  shooter scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the recorded runs of the mode")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := shooter.CampaignID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game mode %q (run 'shooter list')", gameID)
	}

	e, err := setup(flagScoresTUI)
	if err != nil {
		return err
	}
	defer e.close()
	if e.store == nil {
		return errors.New("no database available")
	}

	if flagScoresTUI {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(e.runSource(), cfg.ScreenW, cfg.ScreenH, e.logger)
		return err
	}
	if flagScoresClear {
		if err := e.store.ClearRuns(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared runs for %s.\n", gameID)
		return nil
	}

	runs, err := e.store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		return err
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	fmt.Printf("Best runs - %s\n\n", game.Title())
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'shooter play %s' to set the first one!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-9s  %-5s  %s\n", "Rank", "Score", "Level", "Outcome", "Foes", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-9s  %-5s  %s\n", "----", "-----", "-----", "-------", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-5d  %-9s  %-5d  %s\n",
			i+1, r.Score, r.Level, strings.ReplaceAll(r.Outcome, "_", " "), r.EnemiesDefeated,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := e.store.Stats(gameID); err == nil && stats.RunsCount > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Victories: %d\n",
			stats.RunsCount, stats.BestScore, stats.AvgScore, stats.Victories)
	}
	fmt.Printf("High score: %d\n", e.highScore())
	return nil
}
