// Package store provides data storage interfaces and implementations.
package store

import (
	"context"
	"errors"

	"github.com/dkrylov/items-api/internal/model"
)

// Store errors.
var (
	ErrNotFound = errors.New("item not found")
)

// Store defines the interface for item storage operations. Items keep their
// insertion order; lookups match the first item with the requested id.
type Store interface {
	// List returns all items in insertion order.
	List(ctx context.Context) ([]model.Item, error)

	// Find retrieves the first item with the given id.
	Find(ctx context.Context, id int) (*model.Item, error)

	// Append adds an item to the end of the collection. No uniqueness
	// check is performed on the id.
	Append(ctx context.Context, item model.Item) error

	// SetName replaces the name of the first item with the given id when
	// name is non-nil, and leaves it unchanged otherwise. Returns the
	// possibly unchanged item.
	SetName(ctx context.Context, id int, name *string) (*model.Item, error)

	// Remove deletes the first item with the given id.
	Remove(ctx context.Context, id int) error

	// Count returns the current number of items.
	Count(ctx context.Context) (int, error)
}
