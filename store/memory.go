package store

import (
	"context"
	"sync"
	"time"
)

// memoryEntry holds a stored record with its timestamp.
type memoryEntry struct {
	record    *Record
	timestamp time.Time
}

// MemoryStore is a thread-safe in-memory store with TTL support.
type MemoryStore struct {
	records map[string]memoryEntry
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a new in-memory store with the specified TTL.
// If ttl is 0 or negative, records never expire.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl < 0 {
		ttl = 0
	}
	return &MemoryStore{
		records: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put stores a record.
func (s *MemoryStore) Put(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.ID] = memoryEntry{
		record:    rec,
		timestamp: s.now(),
	}
	s.sweepLocked()
	return nil
}

// Get retrieves a record.
func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	entry, ok := s.records[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	if s.expired(entry) {
		s.mu.Lock()
		delete(s.records, id)
		s.mu.Unlock()
		return nil, ErrNotFound
	}

	return entry.record, nil
}

// Len returns the number of records held (including expired ones).
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Clear removes all records.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]memoryEntry)
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) expired(e memoryEntry) bool {
	return s.ttl > 0 && s.now().Sub(e.timestamp) > s.ttl
}

// sweepLocked drops expired records so an idle server does not hold
// documents forever. Callers must hold the write lock.
func (s *MemoryStore) sweepLocked() {
	if s.ttl == 0 {
		return
	}
	for id, e := range s.records {
		if s.expired(e) {
			delete(s.records, id)
		}
	}
}

// Verify MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
