// Package session owns the per-visitor transaction stores.
//
// Every browser session gets its own Store; nothing is shared between
// sessions and nothing outlives the process.
package session

import (
	"sync"
	"time"

	"budget/internal/core"
)

// Store is the ordered, append-only list of transactions of one session.
type Store struct {
	id        string
	createdAt time.Time

	mu    sync.RWMutex
	items []core.Transaction
}

// NewStore returns an empty store.
func NewStore(id string) *Store {
	return &Store{id: id, createdAt: time.Now()}
}

func (s *Store) ID() string { return s.id }

func (s *Store) CreatedAt() time.Time { return s.createdAt }

// Append records t and returns the new store size. Callers enforce the
// acceptance rules; the store only guarantees ordering.
func (s *Store) Append(t core.Transaction) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, t)
	return len(s.items)
}

// Snapshot returns a copy of the transactions in insertion order.
func (s *Store) Snapshot() []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Transaction(nil), s.items...)
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
