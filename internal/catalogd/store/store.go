package store

import (
	"sync"

	"github.com/grovetools/catalogd/pkg/models"
)

// Store is the append-only catalog.
// It is thread-safe and supports pub/sub for real-time updates.
type Store struct {
	mu          sync.RWMutex
	cats        []models.Cat
	subscribers map[chan Update]struct{}
}

// New creates a new Store holding copies of the given seed entries.
func New(seed ...models.Cat) *Store {
	cats := make([]models.Cat, 0, len(seed))
	for _, c := range seed {
		cats = append(cats, c.Clone())
	}
	return &Store{
		cats:        cats,
		subscribers: make(map[chan Update]struct{}),
	}
}

// List returns a snapshot of the catalog in insertion order.
func (s *Store) List() []models.Cat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.Cat, len(s.cats))
	for i, c := range s.cats {
		result[i] = c.Clone()
	}
	return result
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cats)
}

// Add appends cat to the end of the catalog and notifies subscribers.
// No validation or duplicate detection is performed.
func (s *Store) Add(cat models.Cat) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cats = append(s.cats, cat.Clone())

	u := Update{Type: UpdateCatAdded, Cat: cat.Clone(), Len: len(s.cats)}
	for ch := range s.subscribers {
		select {
		case ch <- u:
		default:
			// Non-blocking send so a slow subscriber cannot stall writers
		}
	}
}

// Subscribe creates a new subscription channel for catalog updates.
func (s *Store) Subscribe() chan Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Update, 100) // Buffered
	s.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (s *Store) Unsubscribe(ch chan Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[ch]; !ok {
		return
	}
	delete(s.subscribers, ch)
	close(ch)
}

// Subscribers returns the number of active subscriptions.
func (s *Store) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}
