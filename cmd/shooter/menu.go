package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick game modes and view scores interactively",
	Long: `Start with a mode picker. Leaving a finished run with Esc
returns to the picker; Tab opens the scoreboard.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Play
  Tab          - Scoreboard
  Q            - Quit`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	e, err := setup(true)
	if err != nil {
		return err
	}
	defer e.close()

	cfg := runtimeConfig()
	for {
		result, err := tui.RunMenu(cfg, e.highScore())
		if err != nil {
			return err
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return nil
		case result.WantsScoreboard:
			back, err := tui.RunScoreboard(e.runSource(), cfg.ScreenW, cfg.ScreenH, e.logger)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}
			continue
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			e.logger.Error("cannot create game", "error", err)
			continue
		}
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		quit, err := tui.RunFromMenu(game, e.runStore(), cfg, e.logger)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if quit {
			return nil
		}
	}
}
