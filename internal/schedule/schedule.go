// Package schedule runs one-shot delayed callbacks that can be cancelled
// one at a time or in bulk by group.
package schedule

import (
	"sort"
	"sync"
	"time"
)

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

// Timer describes a pending callback.
type Timer struct {
	Handle Handle
	Group  string
	Label  string
	Due    time.Time
}

// Scheduler is the timer capability the engine depends on.
type Scheduler interface {
	// After runs fn once after d. Label is shown when listing pending timers.
	After(group, label string, d time.Duration, fn func()) Handle

	// Cancel stops a pending callback. It reports whether one was pending.
	Cancel(h Handle) bool

	// CancelGroup stops every pending callback in group and returns how many.
	CancelGroup(group string) int

	// Pending lists callbacks in group that have not fired, soonest first.
	// An empty group lists every pending callback.
	Pending(group string) []Timer
}

// TimerScheduler implements Scheduler with time.AfterFunc.
type TimerScheduler struct {
	mu      sync.Mutex
	next    Handle
	entries map[Handle]*timerEntry
	now     func() time.Time
}

type timerEntry struct {
	info  Timer
	timer *time.Timer
}

// NewTimerScheduler returns a scheduler backed by real timers.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{
		entries: map[Handle]*timerEntry{},
		now:     time.Now,
	}
}

func (s *TimerScheduler) After(group, label string, d time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	h := s.next
	e := &timerEntry{info: Timer{Handle: h, Group: group, Label: label, Due: s.now().Add(d)}}
	e.timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		_, live := s.entries[h]
		delete(s.entries, h)
		s.mu.Unlock()
		if live {
			fn()
		}
	})
	s.entries[h] = e
	return h
}

func (s *TimerScheduler) Cancel(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[h]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(s.entries, h)
	return true
}

func (s *TimerScheduler) CancelGroup(group string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for h, e := range s.entries {
		if e.info.Group == group {
			e.timer.Stop()
			delete(s.entries, h)
			n++
		}
	}
	return n
}

func (s *TimerScheduler) Pending(group string) []Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Timer
	for _, e := range s.entries {
		if group == "" || e.info.Group == group {
			out = append(out, e.info)
		}
	}
	sortTimers(out)
	return out
}

// Stop cancels everything. Used on shutdown.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for h, e := range s.entries {
		e.timer.Stop()
		delete(s.entries, h)
	}
}

func sortTimers(ts []Timer) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].Due.Equal(ts[j].Due) {
			return ts[i].Handle < ts[j].Handle
		}
		return ts[i].Due.Before(ts[j].Due)
	})
}
