// Package userlock serializes command handling per user record.
package userlock

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type entry struct {
	sem      chan struct{}
	refs     int
	lastUsed time.Time
}

// Manager hands out one lock per user id. Entries are created on demand and
// dropped by Cleanup once idle.
type Manager struct {
	mu          sync.Mutex
	entries     map[string]*entry
	clock       clockwork.Clock
	idleTimeout time.Duration
}

func NewManager(clock clockwork.Clock, idleTimeout time.Duration) *Manager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Manager{
		entries:     make(map[string]*entry),
		clock:       clock,
		idleTimeout: idleTimeout,
	}
}

func (m *Manager) acquire(id string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		m.entries[id] = e
	}
	e.refs++
	return e
}

func (m *Manager) release(e *entry) {
	m.mu.Lock()
	e.refs--
	e.lastUsed = m.clock.Now()
	m.mu.Unlock()
}

// Lock takes the locks of every given id in sorted order, so callers locking
// overlapping sets never deadlock. The returned func releases all of them.
func (m *Manager) Lock(ctx context.Context, ids ...string) (func(), error) {
	keys := slices.Clone(ids)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	held := make([]*entry, 0, len(keys))
	unlock := func() {
		for i := len(held) - 1; i >= 0; i-- {
			<-held[i].sem
			m.release(held[i])
		}
	}

	for _, id := range keys {
		e := m.acquire(id)
		select {
		case e.sem <- struct{}{}:
			held = append(held, e)
		case <-ctx.Done():
			m.release(e)
			unlock()
			return nil, ctx.Err()
		}
	}

	var once sync.Once
	return func() { once.Do(unlock) }, nil
}

// Cleanup removes entries nobody holds or waits on that were idle for the idle timeout.
func (m *Manager) Cleanup() int {
	now := m.clock.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, e := range m.entries {
		if e.refs == 0 && now.Sub(e.lastUsed) >= m.idleTimeout {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

// Active returns the number of tracked user ids.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
