package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/games/shooter"
	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

var flagAutopilot bool

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play the campaign or the arena",
	Long: `Start playing. The mode defaults to the campaign.

Controls:
  WASD/Arrows/hjkl  - Move
  Space/F           - Fire
  Enter             - Start from the title screen
  P                 - Pause
  R                 - Restart from level 1
  Esc/B             - Back to the title screen
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Examples:
  shooter play
  shooter play shooter_arena
  shooter play --difficulty hard --log-file shooter.log
  shooter play --maps ./maps --config ./my-shooter.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Let the autopilot play along")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := shooter.CampaignID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game mode %q (run 'shooter list')", gameID)
	}

	e, err := setup(true)
	if err != nil {
		return err
	}
	defer e.close()

	if flagAutopilot {
		opts := e.opts
		opts.Autopilot = true
		shooter.Configure(opts)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	e.logger.Info("starting game", "game", gameID, "fps", flagFPS, "seed", flagSeed)
	if err := tui.Run(game, e.runStore(), runtimeConfig(), e.logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
