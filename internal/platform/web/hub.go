// Package web streams live session events to browsers over WebSocket.
package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/vovakirdan/pocket-arcade/internal/session"
)

// Frame is the wire form of one session event.
type Frame struct {
	Kind       string        `json:"kind"`
	SessionID  string        `json:"session"`
	GameID     string        `json:"game"`
	Generation uint64        `json:"gen"`
	Tick       uint64        `json:"tick"`
	ElapsedMs  float64       `json:"elapsed_ms"`
	Event      session.Event `json:"event"`
}

// NewFrame wraps an envelope for the wire.
func NewFrame(env session.Envelope) Frame {
	kind := ""
	if env.Event != nil {
		kind = env.Event.Kind()
	}
	return Frame{
		Kind:       kind,
		SessionID:  env.SessionID,
		GameID:     env.GameID,
		Generation: env.Generation,
		Tick:       env.Tick,
		ElapsedMs:  env.ElapsedMs,
		Event:      env.Event,
	}
}

// Control is a message sent by a spectator.
type Control struct {
	T    string `json:"t"`              // "watch" or "ping"
	Game string `json:"game,omitempty"` // empty watches every game
}

type client struct {
	id   string
	send chan Frame

	mu   sync.RWMutex
	game string
}

func (c *client) watching(gameID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.game == "" || c.game == gameID
}

// Hub fans session events out to connected spectators.
// It implements session.Emitter and never blocks the tick.
type Hub struct {
	allowOrigins []string
	logger       *log.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
}

var _ session.Emitter = (*Hub)(nil)

// NewHub creates a hub. Cross-origin browsers must match one of allow
// (host patterns as accepted by websocket.AcceptOptions.OriginPatterns).
func NewHub(logger *log.Logger, allow ...string) *Hub {
	return &Hub{
		allowOrigins: allow,
		logger:       logger,
		clients:      make(map[*client]struct{}),
	}
}

// Emit broadcasts an event. Slow spectators miss events instead of
// stalling the session.
func (h *Hub) Emit(env session.Envelope) {
	f := NewFrame(env)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !c.watching(f.GameID) {
			continue
		}
		select {
		case c.send <- f:
		default:
		}
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and streams frames until the peer leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.allowOrigins})
	if err != nil {
		h.logger.Warn("websocket accept failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closing")

	c := &client{id: randID(), send: make(chan Frame, 64), game: r.URL.Query().Get("game")}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Info("spectator connected", "client", c.id, "game", c.game)

	ctx, cancel := context.WithCancel(r.Context())
	defer func() {
		cancel()
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		h.logger.Info("spectator disconnected", "client", c.id)
	}()

	go h.read(ctx, cancel, conn, c)

	ping := time.NewTicker(15 * time.Second)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "bye")
			return
		case f := <-c.send:
			if err := wsjson.Write(ctx, conn, f); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.Ping(ctx); err != nil {
				return
			}
		}
	}
}

// read applies spectator controls until the connection drops.
func (h *Hub) read(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, c *client) {
	defer cancel()
	for {
		var msg Control
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			return
		}
		switch msg.T {
		case "watch":
			c.mu.Lock()
			c.game = msg.Game
			c.mu.Unlock()
			h.logger.Debug("spectator filter", "client", c.id, "game", msg.Game)
		case "ping":
		}
	}
}

func randID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
