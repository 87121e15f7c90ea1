package schedule

import (
	"sync"
	"time"
)

// Manual is a Scheduler driven by an explicit clock. Callbacks fire on the
// goroutine that calls Advance, in due order. It also serves as a clock.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	next    Handle
	entries map[Handle]manualEntry
}

type manualEntry struct {
	info Timer
	fn   func()
}

// NewManual returns a Manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start, entries: map[Handle]manualEntry{}}
}

// Now returns the scheduler's current time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) After(group, label string, d time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	h := m.next
	m.entries[h] = manualEntry{info: Timer{Handle: h, Group: group, Label: label, Due: m.now.Add(d)}, fn: fn}
	return h
}

func (m *Manual) Cancel(h Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[h]; !ok {
		return false
	}
	delete(m.entries, h)
	return true
}

func (m *Manual) CancelGroup(group string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for h, e := range m.entries {
		if e.info.Group == group {
			delete(m.entries, h)
			n++
		}
	}
	return n
}

func (m *Manual) Pending(group string) []Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Timer
	for _, e := range m.entries {
		if group == "" || e.info.Group == group {
			out = append(out, e.info)
		}
	}
	sortTimers(out)
	return out
}

// Advance moves the clock forward by d and runs every callback that has
// come due, including ones scheduled by earlier callbacks within the window.
// It returns how many callbacks ran.
func (m *Manual) Advance(d time.Duration) int {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	fired := 0
	for {
		m.mu.Lock()
		var due *manualEntry
		for _, e := range m.entries {
			if e.info.Due.After(target) {
				continue
			}
			if due == nil || e.info.Due.Before(due.info.Due) ||
				(e.info.Due.Equal(due.info.Due) && e.info.Handle < due.info.Handle) {
				e := e
				due = &e
			}
		}
		if due == nil {
			m.now = target
			m.mu.Unlock()
			return fired
		}
		delete(m.entries, due.info.Handle)
		if due.info.Due.After(m.now) {
			m.now = due.info.Due
		}
		m.mu.Unlock()

		due.fn()
		fired++
	}
}
