package engine

import (
	"sort"
	"time"
)

type deferred struct {
	key string
	at  time.Time
	seq int
	fn  func()
}

// scheduler runs deferred actions from the frame tick. Actions are keyed;
// scheduling a key that is already pending replaces it.
type scheduler struct {
	pending []deferred
	seq     int
}

func (s *scheduler) after(now time.Time, key string, d time.Duration, fn func()) {
	s.cancel(key)
	s.seq++
	s.pending = append(s.pending, deferred{key: key, at: now.Add(d), seq: s.seq, fn: fn})
}

func (s *scheduler) cancel(key string) {
	for i, d := range s.pending {
		if d.key == key {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

func (s *scheduler) has(key string) bool {
	for _, d := range s.pending {
		if d.key == key {
			return true
		}
	}
	return false
}

// run executes every action due at now, earliest first. Actions scheduled
// while running wait for the next call.
func (s *scheduler) run(now time.Time) {
	var due, rest []deferred
	for _, d := range s.pending {
		if !d.at.After(now) {
			due = append(due, d)
		} else {
			rest = append(rest, d)
		}
	}
	if len(due) == 0 {
		return
	}
	s.pending = rest
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	for _, d := range due {
		d.fn()
	}
}

func (s *scheduler) len() int {
	return len(s.pending)
}
