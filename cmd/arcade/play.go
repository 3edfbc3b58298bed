package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-arcade/internal/platform/tui"
	"github.com/vovakirdan/pocket-arcade/internal/session"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move or steer
  Space        - Primary action (flap, fire, flip, shoot)
  Mouse        - Aim, click, drag
  X            - Secondary action
  1/2          - Buy upgrades
  P            - Pause (Ctrl+P in the typing test)
  Esc/B        - Pause, then back
  R            - Restart after the session ends (Ctrl+R in the typing test)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower ramps, gentler spawns
  normal - The default tuning
  hard   - Faster ramps, tighter margins
  fixed  - No progression, stays at the starting level

Examples:
  arcade play flappy
  arcade play zombie --difficulty easy
  arcade play golf --seed 42
  arcade play flappy --config ./my-flappy.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(io.Discard, "arcade")
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := createGame(args[0], flagConfig, flagDifficulty)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Runtime: runtimeConfig(),
		Logger:  logger,
	}
	if store := openStore(logger); store != nil {
		defer store.Close()
		opts.Sink = store
	}

	snap, err := tui.Run(game, opts)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	if snap.Status == session.StatusFinished {
		fmt.Printf("%s: scored %s", game.Title(), humanize.Commaf(snap.Score))
		if snap.Reason != "" {
			fmt.Printf(" (%s)", snap.Reason)
		}
		fmt.Println()
	}
	return nil
}
