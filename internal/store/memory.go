package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/dkrylov/items-api/internal/model"
)

// MemoryStore implements Store with a slice-backed in-memory collection.
// The slice keeps insertion order; all lookups are linear scans. The mutex
// makes individual operations safe under net/http's concurrent handlers,
// but compound sequences (count then append) must be serialized by the
// caller.
type MemoryStore struct {
	mu    sync.RWMutex
	items []model.Item
}

// NewMemoryStore creates a new MemoryStore pre-populated with the given
// seed items. Tests construct independent instances instead of resetting
// shared state.
func NewMemoryStore(seed ...model.Item) *MemoryStore {
	items := make([]model.Item, len(seed))
	copy(items, seed)

	return &MemoryStore{
		items: items,
	}
}

// List returns all items in insertion order.
func (s *MemoryStore) List(ctx context.Context) ([]model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("list items: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Item, len(s.items))
	copy(items, s.items)

	return items, nil
}

// Find retrieves the first item with the given id.
func (s *MemoryStore) Find(ctx context.Context, id int) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("find item: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if s.items[i].ID == id {
			item := s.items[i]
			return &item, nil
		}
	}

	return nil, ErrNotFound
}

// Append adds an item to the end of the collection.
func (s *MemoryStore) Append(ctx context.Context, item model.Item) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("append item: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, item)

	return nil
}

// SetName replaces the name of the first item with the given id when name
// is non-nil, leaving it unchanged otherwise.
func (s *MemoryStore) SetName(ctx context.Context, id int, name *string) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("set item name: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			if name != nil {
				s.items[i].Name = name
			}
			item := s.items[i]
			return &item, nil
		}
	}

	return nil, ErrNotFound
}

// Remove deletes the first item with the given id.
func (s *MemoryStore) Remove(ctx context.Context, id int) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("remove item: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}

// Count returns the current number of items.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("count items: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items), nil
}
