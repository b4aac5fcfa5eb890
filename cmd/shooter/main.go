// shooter is a top-down arcade shooter that runs in the terminal.
//
// Usage:
//
//	shooter list                 - List game modes
//	shooter play [mode]          - Play the campaign or the arena
//	shooter menu                 - Pick modes and view scores interactively
//	shooter sim                  - Run a headless game driven by the autopilot
//	shooter scores [mode]        - Show the best runs
//	shooter settings [key] [val] - Show or change stored settings
//	shooter serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.shooter/shooter.db)
//	--config <path>      - Custom game config YAML
//	--maps <dir>         - Directory of authored maps overriding the built-in ones
//	--difficulty <name>  - easy, normal or hard (default: stored setting)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Log destination for the interactive commands
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagMaps       string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shooter",
	Short: "Shooter - a top-down arcade shooter for your terminal",
	Long: `Shooter is a top-down arcade shooter played in the terminal.

Clear three authored levels in the campaign, or survive generated
rooms in the arena. Enemies drop coins, health, ammo and weapon
upgrades; weapon tiers carry over between levels.

Examples:
  shooter play
  shooter play shooter_arena --difficulty hard
  shooter menu
  shooter sim --seconds 120 --seed 42
  shooter scores
  shooter settings difficulty easy
  shooter serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.shooter/shooter.db", "Path to the database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagMaps, "maps", "", "Directory of authored maps")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file for play and menu (discarded if empty)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(serveCmd)
}
