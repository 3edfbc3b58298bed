package main

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

func TestLoadScoresLimit(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for i := 0; i < 15; i++ {
		if _, err := store.SaveScore("zombie", float64(i)); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{name: "top five", limit: 5, expected: 5},
		{name: "zero lists all", limit: 0, expected: 15},
		{name: "negative lists all", limit: -1, expected: 15},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scores, err := loadScores(store, "zombie", tc.limit)
			if err != nil {
				t.Fatalf("loadScores() failed: %v", err)
			}
			if len(scores) != tc.expected {
				t.Errorf("loadScores(%d) = %d entries, expected %d", tc.limit, len(scores), tc.expected)
			}
			if len(scores) > 0 && scores[0].Score != 14 {
				t.Errorf("best = %v, expected 14", scores[0].Score)
			}
		})
	}
}
