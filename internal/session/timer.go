package session

// TimerID identifies a scheduled callback.
type TimerID uint64

type timer struct {
	id    TimerID
	due   float64
	every float64
	gen   uint64
	fn    func()
}

// scheduler runs callbacks against session-relative elapsed time, so pausing
// the session pauses every pending timer with it.
type scheduler struct {
	next   TimerID
	timers []timer
}

func (s *scheduler) add(due, every float64, gen uint64, fn func()) TimerID {
	s.next++
	s.timers = append(s.timers, timer{id: s.next, due: due, every: every, gen: gen, fn: fn})
	return s.next
}

func (s *scheduler) cancel(id TimerID) {
	for i := range s.timers {
		if s.timers[i].id == id {
			s.remove(i)
			return
		}
	}
}

func (s *scheduler) clear() {
	s.timers = s.timers[:0]
}

func (s *scheduler) len() int {
	return len(s.timers)
}

func (s *scheduler) remove(i int) {
	s.timers = append(s.timers[:i], s.timers[i+1:]...)
}

// fire runs every timer due at or before now, earliest first.
// Timers scheduled under an older generation are dropped without running.
func (s *scheduler) fire(now float64, gen func() uint64) {
	for {
		i := s.nextDue(now)
		if i < 0 {
			return
		}
		t := s.timers[i]
		if t.gen != gen() {
			s.remove(i)
			continue
		}
		if t.every > 0 {
			s.timers[i].due += t.every
		} else {
			s.remove(i)
		}
		t.fn()
	}
}

func (s *scheduler) nextDue(now float64) int {
	best := -1
	for i, t := range s.timers {
		if t.due > now {
			continue
		}
		if best < 0 || t.due < s.timers[best].due ||
			(t.due == s.timers[best].due && t.id < s.timers[best].id) {
			best = i
		}
	}
	return best
}
