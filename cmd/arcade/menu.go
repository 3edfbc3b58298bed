package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick games interactively",
	Long: `Open the game picker. Left and right change the difficulty preset,
Tab opens the scoreboard, Enter starts the highlighted game and Esc
returns to the picker once a session ends.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML applied to every game")
}

func runMenu(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(io.Discard, "arcade")
	if err != nil {
		return err
	}
	defer closeLog()

	opts := tui.Options{
		Runtime: runtimeConfig(),
		Logger:  logger,
	}
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return tui.RunApp(store, opts, flagConfig)
}
