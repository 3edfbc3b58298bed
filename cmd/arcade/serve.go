package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-arcade/internal/platform/tui"
	"github.com/vovakirdan/pocket-arcade/internal/platform/web"
	"github.com/vovakirdan/pocket-arcade/internal/session"
)

var (
	flagSSHAddr      string
	flagWSAddr       string
	flagHostKey      string
	flagIdleTimeout  int
	flagServeConfig  string
	flagAllowOrigins []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the arcade over SSH",
	Long: `Start an SSH server that lets users connect and play, plus an optional
HTTP server that streams every live session to WebSocket spectators.

Each SSH connection gets its own menu and sessions. Scores go to the
shared database, so all users share one leaderboard.

Settings can also come from the environment or a .env file:
  ARCADE_SSH_ADDR   - same as --ssh
  ARCADE_WS_ADDR    - same as --ws
  ARCADE_HOST_KEY   - same as --host-key
  ARCADE_DB         - same as --db
Flags win over the environment.

Web endpoints (when --ws is set):
  /ws           - live event feed (?game=<id> to filter)
  /api/games    - registered games
  /api/scores   - top scores (?game=<id>&limit=<n>)
  /healthz      - liveness probe

Examples:
  arcade serve                           # SSH on :23234, no web feed
  arcade serve --ssh :2222 --ws :8080    # SSH and web feed
  arcade serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", def.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", "", "Web feed address (host:port), empty disables it")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(def.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom game config YAML applied to every game")
	serveCmd.Flags().StringSliceVar(&flagAllowOrigins, "allow-origin", nil, "Extra browser origins allowed on the web feed")
}

// applyEnv fills flags the user did not set from ARCADE_* variables.
func applyEnv(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	for flag, env := range map[string]string{
		"ssh":      "ARCADE_SSH_ADDR",
		"ws":       "ARCADE_WS_ADDR",
		"host-key": "ARCADE_HOST_KEY",
		"db":       "ARCADE_DB",
	} {
		v, ok := os.LookupEnv(env)
		if !ok || cmd.Flags().Changed(flag) {
			continue
		}
		if err := cmd.Flags().Set(flag, v); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := applyEnv(cmd); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(os.Stderr, "arcade")
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var spectator session.Emitter
	var feed *web.Server
	if flagWSAddr != "" {
		hub := web.NewHub(logger.WithPrefix("arcade-web"), flagAllowOrigins...)
		spectator = hub
		feed = web.NewServer(flagWSAddr, hub, store, logger.WithPrefix("arcade-web"))
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.ConfigPath = flagServeConfig
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.FPS = flagFPS

	server, err := tui.NewSSHServer(cfg, store, spectator, logger.WithPrefix("arcade-ssh"))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 2)
	running := 1
	go func() { errc <- server.ListenAndServe(ctx) }()
	if feed != nil {
		running++
		go func() { errc <- feed.ListenAndServe(ctx) }()
	}

	fmt.Printf("Arcade SSH server on %s\n", server.Addr())
	if feed != nil {
		fmt.Printf("Spectator feed on %s/ws\n", flagWSAddr)
	}
	fmt.Println("Press Ctrl+C to stop")

	// The first server to stop takes the other one down with it.
	var firstErr error
	for ; running > 0; running-- {
		if err := <-errc; err != nil && firstErr == nil {
			firstErr = err
		}
		cancel()
	}
	if firstErr != nil {
		return fmt.Errorf("server error: %w", firstErr)
	}
	logger.Info("arcade stopped")
	return nil
}
