package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	rec       Record
	expiresAt time.Time
}

// MemoryStore keeps sessions in a process-local map. Used in tests and as
// the fallback when Redis is unreachable.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry

	// Now is swappable in tests to exercise expiry.
	Now func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		entries: map[string]memoryEntry{},
		Now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, token string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[token]
	if !ok {
		return nil, ErrNotFound
	}
	if s.Now().After(e.expiresAt) {
		delete(s.entries, token)
		return nil, ErrNotFound
	}
	rec := e.rec
	return &rec, nil
}

func (s *MemoryStore) Set(_ context.Context, token string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{rec: rec, expiresAt: s.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}
