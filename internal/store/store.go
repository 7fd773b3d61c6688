// Package store keeps live interview sessions in memory for the HTTP API.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/mockinterview/interviewer/internal/domain/interview"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store is the session registry. Only the map is guarded; a session itself
// is protected by its own busy gate.
type Store interface {
	Save(ctx context.Context, s *interview.Session) error
	Get(ctx context.Context, id string) (*interview.Session, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*interview.Session, error)
}

type entry struct {
	session      *interview.Session
	lastActivity time.Time
}

// MemoryStore is a Store backed by a map.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	now      func() time.Time
}

// Compile-time check: *MemoryStore satisfies the Store interface.
var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

func (m *MemoryStore) Save(_ context.Context, s *interview.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = &entry{session: s, lastActivity: m.now()}
	return nil
}

// Get returns the session and marks it active.
func (m *MemoryStore) Get(_ context.Context, id string) (*interview.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastActivity = m.now()
	return e.session, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

// List returns all sessions, oldest first.
func (m *MemoryStore) List(_ context.Context) ([]*interview.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*interview.Session, 0, len(m.sessions))
	for _, e := range m.sessions {
		out = append(out, e.session)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Sweep removes sessions idle for longer than ttl and returns how many
// were removed.
func (m *MemoryStore) Sweep(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-ttl)
	removed := 0
	for id, e := range m.sessions {
		if e.lastActivity.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper calls Sweep every interval until ctx is cancelled.
func (m *MemoryStore) StartSweeper(ctx context.Context, interval, ttl time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := m.Sweep(ttl); n > 0 && onSweep != nil {
					onSweep(n)
				}
			}
		}
	}()
}
