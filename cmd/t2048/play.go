package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Arrows/WASD/HJKL  - Slide tiles
  R                 - New board
  ?                 - Toggle help
  Q/Ctrl+C          - Quit

Examples:
  t2048 play
  t2048 play 2048_mini
  t2048 play --seed 42 --auto-reset=false`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	variant := appConfig.Game.Variant
	if len(args) == 1 {
		variant = args[0]
	}
	if err := checkVariant(variant); err != nil {
		return err
	}

	// Get terminal size for the first layout; Bubble Tea reports resizes.
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	game, err := registry.Create(variant)
	if err != nil {
		return err
	}

	logger.Debug("starting game", "variant", variant, "seed", appConfig.Game.Seed)
	return tui.Run(game, rules(width, height))
}
