package session

import "sync"

// Emitter receives session events. Emit must not block the tick.
type Emitter interface {
	Emit(env Envelope)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Envelope)

// Emit calls f.
func (f EmitterFunc) Emit(env Envelope) {
	f(env)
}

// Stream is a buffered, non-blocking event channel.
// When the buffer is full the oldest event is dropped.
type Stream struct {
	events   chan Envelope
	done     chan struct{}
	doneOnce sync.Once
}

// NewStream creates a stream holding up to size undelivered events.
func NewStream(size int) *Stream {
	if size < 1 {
		size = 64
	}
	return &Stream{
		events: make(chan Envelope, size),
		done:   make(chan struct{}),
	}
}

// Emit queues an event, dropping the oldest one if the buffer is full.
// Events sent after Close are discarded.
func (s *Stream) Emit(env Envelope) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- env:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- env:
		default:
		}
	}
}

// Events returns the receive side of the stream.
func (s *Stream) Events() <-chan Envelope {
	return s.events
}

// Done returns a channel closed by Close.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Close stops the stream. Safe to call multiple times.
func (s *Stream) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// Drain returns every queued event without blocking.
func (s *Stream) Drain() []Envelope {
	var out []Envelope
	for {
		select {
		case env := <-s.events:
			out = append(out, env)
		default:
			return out
		}
	}
}

// Recorder keeps every emitted event in memory.
type Recorder struct {
	mu   sync.Mutex
	envs []Envelope
}

// Emit appends the event.
func (r *Recorder) Emit(env Envelope) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.envs = append(r.envs, env)
}

// Events returns the recorded events in order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.envs))
	for i, env := range r.envs {
		out[i] = env.Event
	}
	return out
}

// Count returns how many events of the given kind were recorded.
func (r *Recorder) Count(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, env := range r.envs {
		if env.Event.Kind() == kind {
			n++
		}
	}
	return n
}

// Last returns the most recent event of the given kind, or nil.
func (r *Recorder) Last(kind string) Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.envs) - 1; i >= 0; i-- {
		if r.envs[i].Event.Kind() == kind {
			return r.envs[i].Event
		}
	}
	return nil
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.envs)
}

// Reset forgets all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.envs = nil
}

// Fanout forwards each event to every emitter in order.
type Fanout []Emitter

// Emit forwards env.
func (f Fanout) Emit(env Envelope) {
	for _, e := range f {
		if e != nil {
			e.Emit(env)
		}
	}
}
