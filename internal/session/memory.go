package session

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/event-registration/internal/form"
)

type memoryEntry struct {
	raw     []byte
	expires time.Time
}

// MemoryStore keeps sessions in process memory. Entries are stored encoded
// so callers never share maps with the store.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore returns an empty store expiring idle sessions after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, id string) (form.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return form.Snapshot{}, ErrNotFound
	}
	if !entry.expires.After(s.now()) {
		delete(s.entries, id)
		return form.Snapshot{}, ErrNotFound
	}
	return decode(entry.raw)
}

func (s *MemoryStore) Save(_ context.Context, id string, snap form.Snapshot) error {
	raw, err := encode(snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = memoryEntry{raw: raw, expires: s.now().Add(s.ttl)}
	s.sweepLocked()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	return len(s.entries)
}

func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for id, entry := range s.entries {
		if !entry.expires.After(now) {
			delete(s.entries, id)
		}
	}
}
