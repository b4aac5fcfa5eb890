package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/events"
	"github.com/vovakirdan/tui-shooter/internal/games/shooter"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

var (
	flagSimSeconds int
	flagSimArena   bool
	flagSimSave    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless game driven by the autopilot",
	Long: `Run the simulation without a terminal UI. The autopilot plays until
the run ends or the time budget is spent, then a summary is printed.

Examples:
  shooter sim
  shooter sim --seconds 300 --seed 42
  shooter sim --arena --difficulty hard --save`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimSeconds, "seconds", 120, "Simulated seconds to run")
	simCmd.Flags().BoolVar(&flagSimArena, "arena", false, "Play generated maps only")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the scoreboard")
}

// simSummary is what a headless run reports.
type simSummary struct {
	Run      storage.RunRecord
	Ticks    int
	Elapsed  time.Duration
	Levels   []int
	Deaths   int
	Finished bool
}

// simulate drives game with empty player input for at most ticks steps.
// It stops as soon as the run ends.
func simulate(game *shooter.Game, cfg core.RuntimeConfig, ticks int) simSummary {
	var sum simSummary
	game.Reset(cfg)
	game.Orchestrator().Bus().Subscribe(func(ev events.Event) {
		switch ev := ev.(type) {
		case events.LevelComplete:
			sum.Levels = append(sum.Levels, ev.Level)
		case events.PlayerDied:
			sum.Deaths++
		}
	})

	for sum.Ticks < ticks {
		res := game.Step(core.NewInputFrame())
		sum.Ticks++
		if res.State.GameOver {
			sum.Finished = true
			break
		}
	}
	sum.Elapsed = time.Duration(sum.Ticks) * cfg.TickDuration()
	sum.Run = game.Run()
	return sum
}

func runSim(_ *cobra.Command, _ []string) error {
	if flagSimSeconds <= 0 {
		return fmt.Errorf("--seconds must be positive")
	}
	e, err := setup(false)
	if err != nil {
		return err
	}
	defer e.close()

	opts := e.opts
	opts.Autopilot = true
	var game *shooter.Game
	if flagSimArena {
		shooter.Configure(opts)
		game = shooter.NewArena()
	} else {
		game = shooter.NewWithOptions(opts)
	}

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: flagSeed}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	start := time.Now()
	sum := simulate(game, cfg, flagSimSeconds*cfg.TickRate)
	e.logger.Info("simulation finished", "ticks", sum.Ticks, "wall", time.Since(start).Round(time.Millisecond))

	fmt.Printf("Mode:        %s\n", game.Title())
	fmt.Printf("Simulated:   %s (%d ticks)\n", sum.Elapsed.Round(time.Millisecond), sum.Ticks)
	fmt.Printf("Outcome:     %s\n", sum.Run.Outcome)
	fmt.Printf("Score:       %d\n", sum.Run.Score)
	fmt.Printf("Level:       %d\n", sum.Run.Level)
	fmt.Printf("Cleared:     %v\n", sum.Levels)
	fmt.Printf("Enemies:     %d\n", sum.Run.EnemiesDefeated)
	fmt.Printf("Items:       %d\n", sum.Run.ItemsCollected)
	if !sum.Finished {
		fmt.Println("Time budget spent before the run ended.")
	}

	if flagSimSave && e.store != nil && sum.Run.Score > 0 {
		id, err := e.store.SaveRun(sum.Run)
		if err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
		fmt.Printf("Saved run %s\n", id)
	}
	return nil
}
