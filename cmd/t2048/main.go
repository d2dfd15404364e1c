// t2048 is the sliding-tile puzzle 2048 for the terminal, SSH and WebSocket.
//
// Usage:
//
//	t2048 list              - List board variants
//	t2048 play [variant]    - Play in this terminal
//	t2048 serve             - Start SSH server for remote play
//	t2048 web               - Start WebSocket server
//
// Global flags:
//
//	--config <path>       - Config file (default search: ~/.t2048/config.yaml, ./configs/t2048.yaml)
//	--variant <id>        - Board variant (default: 2048)
//	--seed <value>        - RNG seed for reproducible boards (0 = clock)
//	--auto-reset          - Start a new board as soon as no move is left
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/logging"
	"github.com/vovakirdan/tui-2048/internal/registry"

	// Import games to register them
	_ "github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var (
	// Global flags
	flagConfig    string
	flagVariant   string
	flagSeed      int64
	flagAutoReset bool
	flagLogLevel  string
)

// Loaded in PersistentPreRunE.
var (
	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - slide and merge tiles in your terminal",
	Long: `t2048 is the 2048 puzzle: slide the tiles in one of four directions,
equal tiles merge, and a new tile appears after every move that changes the
board. When no move is left the board is replaced with a fresh one.

Available commands:
  list   - Show all board variants
  play   - Play in this terminal
  serve  - Start SSH server for remote play
  web    - Start WebSocket server

Examples:
  t2048 list
  t2048 play
  t2048 play 2048_large --seed 42
  t2048 serve --ssh :2222
  t2048 web --addr :8080`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagVariant, "variant", "", "Board variant (see 't2048 list')")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().BoolVar(&flagAutoReset, "auto-reset", true, "Start a new board when no move is left")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}

// setup loads the config, applies explicitly set flags and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("variant") {
		cfg.Game.Variant = flagVariant
	}
	if flags.Changed("seed") {
		cfg.Game.Seed = flagSeed
	}
	if flags.Changed("auto-reset") {
		cfg.Game.AutoReset = flagAutoReset
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := logging.New(os.Stderr, cfg.Log.Level, "t2048")
	if err != nil {
		return err
	}

	appConfig = cfg
	logger = l
	return nil
}

// rules converts the loaded game settings to a runtime config.
func rules(width, height int) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if width > 0 && height > 0 {
		rc.ScreenW, rc.ScreenH = width, height
	}
	rc.Seed = appConfig.Game.Seed
	rc.Spawn4 = appConfig.Game.Spawn4
	rc.AutoReset = appConfig.Game.AutoReset
	return rc
}

// checkVariant fails with a hint when id is not registered.
func checkVariant(id string) error {
	if !registry.Exists(id) {
		return fmt.Errorf("unknown variant %q, run 't2048 list' to see available variants", id)
	}
	return nil
}
