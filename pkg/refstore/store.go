// Package refstore holds each client's curated file references in process
// memory. Contents do not survive a restart; the device-local mirror is the
// durable side of the pair.
package refstore

import (
	"context"
	"sync"
	"time"

	"figdash/pkg/log"
	"figdash/pkg/models"
)

// Store maps a coarse client identity to an ordered, newest-first list of
// references. Methods take a context and return an error so callers can be
// written against a remote implementation; the in-memory store never fails.
type Store struct {
	mu      sync.RWMutex
	buckets map[string][]models.FileReference
}

// New creates an empty store.
func New() *Store {
	return &Store{buckets: make(map[string][]models.FileReference)}
}

// List returns a copy of the client's references, newest first.
func (s *Store) List(_ context.Context, clientID string) ([]models.FileReference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket := s.buckets[clientID]
	out := make([]models.FileReference, len(bucket))
	copy(out, bucket)
	return out, nil
}

// Add prepends ref to the client's list. Adding a key that is already present
// succeeds without touching state and reports false. LastModified is stamped
// at insertion regardless of the caller's value, and ProjectName falls back
// to the catch-all label.
func (s *Store) Add(_ context.Context, clientID string, ref models.FileReference) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.buckets[clientID] {
		if existing.Key == ref.Key {
			log.Debug().Str("key", ref.Key).Str("client_id", clientID).Msg("Reference already stored")
			return false, nil
		}
	}

	ref.LastModified = time.Now().UTC().Format(time.RFC3339)
	if ref.ProjectName == "" {
		ref.ProjectName = models.DefaultProjectName
	}

	s.buckets[clientID] = append([]models.FileReference{ref}, s.buckets[clientID]...)
	log.Debug().
		Str("key", ref.Key).
		Str("client_id", clientID).
		Int("count", len(s.buckets[clientID])).
		Msg("Reference added")
	return true, nil
}

// Remove deletes the reference with the given key and reports whether
// anything was actually removed.
func (s *Store) Remove(_ context.Context, clientID, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.buckets[clientID]
	for i, ref := range bucket {
		if ref.Key == key {
			s.buckets[clientID] = append(bucket[:i:i], bucket[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Clear drops the client's whole list and returns how many entries it held.
func (s *Store) Clear(_ context.Context, clientID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.buckets[clientID])
	delete(s.buckets, clientID)
	return count, nil
}

// Count returns the size of the client's list.
func (s *Store) Count(_ context.Context, clientID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.buckets[clientID]), nil
}
