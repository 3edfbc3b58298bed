package session

// Event is an outbound update from a session to its presentation layer.
// The set of events is closed: only types in this package implement it.
type Event interface {
	// Kind returns the wire tag of the event.
	Kind() string
	sessionEvent()
}

// ScoreEvent carries the current score.
type ScoreEvent struct {
	Value float64 `json:"value"`
}

func (ScoreEvent) Kind() string  { return "score" }
func (ScoreEvent) sessionEvent() {}

// TimeEvent carries a time readout in seconds. Timed sessions report the
// time remaining, survival games report the time survived.
type TimeEvent struct {
	Seconds float64 `json:"seconds"`
}

func (TimeEvent) Kind() string  { return "time" }
func (TimeEvent) sessionEvent() {}

// StatusEvent is sent on every lifecycle transition.
type StatusEvent struct {
	Status Status `json:"status"`
	Reason Reason `json:"reason,omitempty"`
}

func (StatusEvent) Kind() string  { return "status" }
func (StatusEvent) sessionEvent() {}

// LivesEvent carries the remaining lives.
type LivesEvent struct {
	N int `json:"n"`
}

func (LivesEvent) Kind() string  { return "lives" }
func (LivesEvent) sessionEvent() {}

// CoinsEvent carries the spendable currency balance.
type CoinsEvent struct {
	N int `json:"n"`
}

func (CoinsEvent) Kind() string  { return "coins" }
func (CoinsEvent) sessionEvent() {}

// WaveEvent carries the current wave number.
type WaveEvent struct {
	N int `json:"n"`
}

func (WaveEvent) Kind() string  { return "wave" }
func (WaveEvent) sessionEvent() {}

// StrokesEvent carries the number of shots taken.
type StrokesEvent struct {
	N int `json:"n"`
}

func (StrokesEvent) Kind() string  { return "strokes" }
func (StrokesEvent) sessionEvent() {}

// KillsEvent carries the number of enemies destroyed.
type KillsEvent struct {
	N int `json:"n"`
}

func (KillsEvent) Kind() string  { return "kills" }
func (KillsEvent) sessionEvent() {}

// PowerEvent carries a depletable resource level.
type PowerEvent struct {
	Value float64 `json:"value"`
}

func (PowerEvent) Kind() string  { return "power" }
func (PowerEvent) sessionEvent() {}

// ResultEvent carries the outcome of a win-or-lose session.
type ResultEvent struct {
	Outcome Reason `json:"outcome"`
}

func (ResultEvent) Kind() string  { return "result" }
func (ResultEvent) sessionEvent() {}

// AccuracyEvent carries hits against attempts.
type AccuracyEvent struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

func (AccuracyEvent) Kind() string  { return "accuracy" }
func (AccuracyEvent) sessionEvent() {}

// Percent returns the rounded accuracy, 100 when nothing was attempted.
func (a AccuracyEvent) Percent() int {
	return Accuracy(a.Correct, a.Total)
}

// Accuracy returns round(correct/total*100), or 100 when total is zero.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 100
	}
	return int(float64(correct)/float64(total)*100 + 0.5)
}

// Envelope is an event stamped with the session it came from.
type Envelope struct {
	SessionID  string  `json:"session"`
	GameID     string  `json:"game"`
	Generation uint64  `json:"gen"`
	Tick       uint64  `json:"tick"`
	ElapsedMs  float64 `json:"elapsed_ms"`
	Event      Event   `json:"-"`
}
