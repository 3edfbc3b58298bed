// arcade is a collection of short score-attack minigames for the terminal.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Pick games interactively
//	arcade serve             - Host the arcade over SSH with a live web feed
//	arcade scores <game>     - Show high scores for a game
//	arcade sim <game>        - Run a game headless and print the result
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible sessions
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/session"
	"github.com/vovakirdan/pocket-arcade/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/pocket-arcade/internal/games/aim"
	_ "github.com/vovakirdan/pocket-arcade/internal/games/coinflip"
	_ "github.com/vovakirdan/pocket-arcade/internal/games/defense"
	_ "github.com/vovakirdan/pocket-arcade/internal/games/drift"
	_ "github.com/vovakirdan/pocket-arcade/internal/games/flappy"
	_ "github.com/vovakirdan/pocket-arcade/internal/games/golf"
	_ "github.com/vovakirdan/pocket-arcade/internal/games/overclock"
	_ "github.com/vovakirdan/pocket-arcade/internal/games/spotting"
	_ "github.com/vovakirdan/pocket-arcade/internal/games/typing"
	_ "github.com/vovakirdan/pocket-arcade/internal/games/zombie"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Pocket Arcade - quick score-attack minigames in your terminal",
	Long: `Pocket Arcade hosts a set of short minigames (aim trainers, flappy,
golf, tower defense, a zombie shooter, a drift runner, an idle reactor,
a coin flip, symbol spotting and a typing test) and keeps a local
leaderboard for each of them.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker
  serve    - Host the arcade over SSH, with a WebSocket spectator feed
  scores   - View high scores
  sim      - Run a game headless

Examples:
  arcade list
  arcade play flappy --difficulty hard
  arcade menu
  arcade serve --ssh :2222 --ws :8080
  arcade scores golf
  arcade sim coin-flip --seed 7`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger builds the process logger. Interactive commands own the
// terminal, so without --log-file they log to fallback (usually discard).
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out := fallback
	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closer = func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// runtimeConfig sizes the screen to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// createGame builds a registered game and applies the optional config file
// and difficulty preset.
func createGame(gameID, configPath, difficulty string) (session.Game, error) {
	if !registry.Exists(gameID) {
		return nil, fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return nil, err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return nil, err
	}
	if t, ok := game.(config.Tunable); ok {
		if err := t.Configure(configPath, preset); err != nil {
			return nil, err
		}
	}
	return game, nil
}

// openStore opens the leaderboard. Playing still works without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("scores database unavailable", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}
