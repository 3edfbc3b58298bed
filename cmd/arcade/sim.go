package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/session"
)

var (
	flagSimDuration time.Duration
	flagSimStep     float64
	flagSimPress    time.Duration
	flagSimSave     bool
	flagSimJSON     bool
)

var simCmd = &cobra.Command{
	Use:   "sim <game>",
	Short: "Run a game headless",
	Long: `Step a game without a terminal and print the final result.

The simulated player presses the primary action and clicks the centre of
the field every --press interval. With the same --seed two runs produce
the same result, which makes sim handy for tuning config files.

Examples:
  arcade sim coin-flip --seed 7
  arcade sim flappy --press 400ms --duration 30s
  arcade sim overclock --config ./reactor.yaml --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().DurationVar(&flagSimDuration, "duration", 2*time.Minute, "Stop after this much session time")
	simCmd.Flags().Float64Var(&flagSimStep, "step", 1000.0/60, "Fixed step in milliseconds")
	simCmd.Flags().DurationVar(&flagSimPress, "press", 500*time.Millisecond, "Press interval, 0 never presses")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Submit the result to the scores database")
	simCmd.Flags().BoolVar(&flagSimJSON, "json", false, "Print the result as JSON")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

type simResult struct {
	Snapshot session.Snapshot   `json:"snapshot"`
	Extra    map[string]float64 `json:"extra,omitempty"`
	Events   map[string]int     `json:"events"`
}

func runSim(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr, "arcade-sim")
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := createGame(args[0], flagConfig, flagDifficulty)
	if err != nil {
		return err
	}

	var result session.Result
	sinks := []session.ScoreSink{session.SinkFunc(func(_ context.Context, r session.Result) error {
		result = r
		return nil
	})}
	if flagSimSave {
		if store := openStore(logger); store != nil {
			defer store.Close()
			sinks = append(sinks, store)
		}
	}

	events := map[string]int{}
	opts := []session.Option{
		session.WithEmitter(session.EmitterFunc(func(env session.Envelope) {
			events[env.Event.Kind()]++
			logger.Debug("event", "tick", env.Tick, "kind", env.Event.Kind(), "event", env.Event)
		})),
		session.WithScoreSink(session.SinkFunc(func(ctx context.Context, r session.Result) error {
			for _, s := range sinks {
				if err := s.SubmitScore(ctx, r); err != nil {
					return err
				}
			}
			return nil
		})),
		session.WithLogger(logger),
	}
	if flagSeed != 0 {
		opts = append(opts, session.WithSeed(flagSeed))
	}

	ctrl := session.NewController(game, opts...)
	defer ctrl.Dispose()
	driver := session.NewDriver(ctrl)
	driver.Start()

	center := game.World().Scale(0.5)
	pressEvery := float64(flagSimPress.Milliseconds())
	var lastPress float64
	snap := driver.Run(flagSimStep, float64(flagSimDuration.Milliseconds()), func(_ int, s session.Snapshot) core.InputFrame {
		in := core.NewInputFrame()
		in.Pointer = center
		if pressEvery > 0 && s.ElapsedMs-lastPress >= pressEvery {
			lastPress = s.ElapsedMs
			in.Set(core.ActionPrimary)
			in.Pressed = true
			in.PointerDown = true
		}
		return in
	})

	out := simResult{Snapshot: snap, Extra: result.Extra, Events: events}
	if flagSimJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	printSim(os.Stdout, game.Title(), out)
	return nil
}

func printSim(w io.Writer, title string, r simResult) {
	fmt.Fprintf(w, "%s (session %s)\n", title, r.Snapshot.SessionID)
	fmt.Fprintf(w, "  status   %s", r.Snapshot.Status)
	if r.Snapshot.Reason != "" {
		fmt.Fprintf(w, " (%s)", r.Snapshot.Reason)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  score    %s\n", humanize.Commaf(r.Snapshot.Score))
	fmt.Fprintf(w, "  elapsed  %s\n", (time.Duration(r.Snapshot.ElapsedMs) * time.Millisecond).Round(time.Millisecond))
	fmt.Fprintf(w, "  ticks    %s\n", humanize.Comma(int64(r.Snapshot.Tick)))

	for _, k := range sortedKeys(r.Extra) {
		fmt.Fprintf(w, "  %-8s %s\n", k, humanize.CommafWithDigits(r.Extra[k], 2))
	}
	for _, k := range sortedKeys(r.Events) {
		fmt.Fprintf(w, "  events.%s %d\n", k, r.Events[k])
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
