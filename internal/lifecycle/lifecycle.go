// Package lifecycle owns the retention schedule for generated artifacts.
// Routines only report that an artifact exists; this manager decides when it
// dies. One timer per artifact, no renewal on access.
package lifecycle

import (
	"sync"
	"time"

	"github.com/convertly/convertly/pkg/logger"
)

// Clock abstracts timer creation so the retention policy is testable with a
// fake clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is the stoppable handle a Clock returns.
type Timer interface {
	Stop() bool
}

type realClock struct{}

type realTimer struct{ t *time.Timer }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return realTimer{t: time.AfterFunc(d, f)}
}

func (rt realTimer) Stop() bool { return rt.t.Stop() }

// Manager schedules unconditional deletion of every tracked artifact after a
// fixed retention window.
type Manager struct {
	clock  Clock
	window time.Duration
	remove func(path string) error
	log    logger.Logger

	mu      sync.Mutex
	timers  map[string]Timer
	stopped bool
}

// New creates a Manager on the wall clock. remove is called exactly once per
// tracked artifact when its window elapses; it must treat a missing file as a
// no-op.
func New(window time.Duration, remove func(path string) error, log logger.Logger) *Manager {
	return NewWithClock(realClock{}, window, remove, log)
}

// NewWithClock is New with an injectable clock for tests.
func NewWithClock(clock Clock, window time.Duration, remove func(path string) error, log logger.Logger) *Manager {
	return &Manager{
		clock:  clock,
		window: window,
		remove: remove,
		log:    log,
		timers: make(map[string]Timer),
	}
}

// Track schedules the artifact at path for deletion after the retention
// window.
func (m *Manager) Track(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return
	}
	if _, exists := m.timers[path]; exists {
		return
	}

	m.timers[path] = m.clock.AfterFunc(m.window, func() {
		m.evict(path)
	})
	m.log.Debug("artifact scheduled for eviction",
		logger.String("path", path),
		logger.Duration("window", m.window),
	)
}

func (m *Manager) evict(path string) {
	m.mu.Lock()
	delete(m.timers, path)
	m.mu.Unlock()

	if err := m.remove(path); err != nil {
		// Already-deleted files are handled by remove; anything else is
		// logged and dropped, eviction must never escalate.
		m.log.Warn("artifact eviction failed",
			logger.String("path", path),
			logger.Error(err),
		)
		return
	}
	m.log.Info("artifact evicted", logger.String("path", path))
}

// Pending reports how many artifacts currently await eviction.
func (m *Manager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Stop cancels all outstanding timers. Tracked files are left on disk.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	for path, t := range m.timers {
		t.Stop()
		delete(m.timers, path)
	}
}
