package session

import (
	"errors"
	"sync"

	"doccompare/types"
)

// ErrNoComparison is returned by Latest before any comparison has completed.
var ErrNoComparison = errors.New("no comparison yet")

// Store holds the most recent comparison result with thread-safe access.
// Only one result is kept; there is no history and no per-user partitioning.
type Store struct {
	mu     sync.RWMutex
	latest *types.ComparisonResult
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Set replaces the held result unless it is newer than res (by created_at).
// Returns false when res was rejected as stale.
func (s *Store) Set(res *types.ComparisonResult) bool {
	if res == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest != nil && res.CreatedAt.Before(s.latest.CreatedAt) {
		return false
	}
	s.latest = res
	return true
}

// Get returns the latest result, if any (thread-safe)
func (s *Store) Get() (*types.ComparisonResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.latest != nil
}

// Latest returns the latest result or ErrNoComparison
func (s *Store) Latest() (*types.ComparisonResult, error) {
	res, ok := s.Get()
	if !ok {
		return nil, ErrNoComparison
	}
	return res, nil
}

// Clear empties the store
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = nil
}
