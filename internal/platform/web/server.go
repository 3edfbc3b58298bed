package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

// Server serves the spectator feed and a read-only score API.
type Server struct {
	hub    *Hub
	store  *storage.Store
	logger *log.Logger
	http   *http.Server
}

// NewServer creates a server on addr. store may be nil.
func NewServer(addr string, hub *Hub, store *storage.Store, logger *log.Logger) *Server {
	s := &Server{hub: hub, store: store, logger: logger}

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/api/games", s.handleGames)
	mux.HandleFunc("/api/scores", s.handleScores)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	s.http = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting web feed", "address", s.http.Addr)

	errc := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

type gameJSON struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	TimeLimitMs float64 `json:"time_limit_ms,omitempty"`
}

func (s *Server) handleGames(w http.ResponseWriter, _ *http.Request) {
	games := registry.List()
	out := make([]gameJSON, 0, len(games))
	for _, g := range games {
		out = append(out, gameJSON{ID: g.ID, Title: g.Title, Description: g.Description, TimeLimitMs: g.TimeLimitMs})
	}
	writeJSON(w, http.StatusOK, out)
}

// maxScoresLimit caps the rows one /api/scores request can ask for.
const maxScoresLimit = 100

type scoreJSON struct {
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if !registry.Exists(gameID) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown game"})
		return
	}
	if s.store == nil {
		writeJSON(w, http.StatusOK, []scoreJSON{})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	limit = min(limit, maxScoresLimit)
	entries, err := s.store.TopScores(gameID, limit)
	if err != nil {
		s.logger.Error("score query failed", "game", gameID, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "storage"})
		return
	}

	out := make([]scoreJSON, len(entries))
	for i, e := range entries {
		out[i] = scoreJSON{Score: e.Score, CreatedAt: e.CreatedAt}
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
