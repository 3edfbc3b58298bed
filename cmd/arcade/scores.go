package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top high scores and play statistics for the specified game.

Examples:
  arcade scores flappy
  arcade scores aim-reaction --limit 20
  arcade scores zombie --limit 0`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show, 0 for all")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	info, ok := registry.Info(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}

	logger, closeLog, err := newLogger(io.Discard, "arcade")
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := loadScores(store, gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}
	logger.Debug("scores loaded", "game", gameID, "count", len(scores))

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %s\n", "Rank", "Score", "When")
	fmt.Printf("  %-4s  %-12s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-12s  %s\n", i+1, humanize.Commaf(entry.Score), humanize.Time(entry.CreatedAt))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	fmt.Println()
	fmt.Printf("Best: %s  Average: %s  Sessions: %s\n",
		humanize.Commaf(stats.HighScore),
		humanize.CommafWithDigits(stats.AvgScore, 1),
		humanize.Comma(int64(stats.GamesCount)),
	)
	return nil
}

// loadScores returns the best limit scores, or every score when limit is not positive.
func loadScores(store *storage.Store, gameID string, limit int) ([]storage.ScoreEntry, error) {
	if limit <= 0 {
		return store.AllScores(gameID)
	}
	return store.TopScores(gameID, limit)
}
