// Package service implements the request-level item operations on top of
// the store.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/dkrylov/items-api/internal/model"
	"github.com/dkrylov/items-api/internal/store"
)

// ErrNotFound is returned when an id does not resolve to a stored item.
// Malformed ids and well-formed but absent ids both map here; callers must
// not be able to tell them apart.
var ErrNotFound = store.ErrNotFound

// Prometheus metrics.
var (
	itemOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "item_operations_total",
			Help: "Total number of item operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	itemsInStore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "items_in_store",
			Help: "Current number of items in the store",
		},
	)
)

// Operation outcomes recorded in metrics.
const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
)

// EventPublisher receives a notification after every successful mutation.
type EventPublisher interface {
	Publish(event model.ItemEvent)
}

// Service exposes the five item operations. A single mutex serializes the
// mutating operations: id generation reads the current count and appends in
// two store calls, and net/http runs handlers on separate goroutines, so
// without the mutex two concurrent creates could observe the same count and
// mint duplicate ids.
type Service struct {
	mu     sync.Mutex
	store  store.Store
	logger *zap.Logger
	events EventPublisher
}

// New creates a Service. events may be nil when no change notifications are
// wanted.
func New(s store.Store, logger *zap.Logger, events EventPublisher) *Service {
	return &Service{
		store:  s,
		logger: logger,
		events: events,
	}
}

// List returns all items in store order. An empty store yields an empty
// slice, never an error.
func (s *Service) List(ctx context.Context) ([]model.Item, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	itemOperationsTotal.WithLabelValues("list", outcomeOK).Inc()
	return items, nil
}

// Get resolves rawID and returns the matching item. Coercion failure and a
// missing id both yield ErrNotFound.
func (s *Service) Get(ctx context.Context, rawID string) (*model.Item, error) {
	id, ok := ParseID(rawID)
	if !ok {
		itemOperationsTotal.WithLabelValues("get", outcomeNotFound).Inc()
		return nil, ErrNotFound
	}

	item, err := s.store.Find(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			itemOperationsTotal.WithLabelValues("get", outcomeNotFound).Inc()
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	itemOperationsTotal.WithLabelValues("get", outcomeOK).Inc()
	return item, nil
}

// Create appends a new item with id = current count + 1 and the given name
// passed through unchanged, nil included. Ids are not unique across a
// delete/create sequence: generation only looks at the current count, so
// deleting an item and creating a new one can mint a duplicate. This
// matches the observable contract and is kept deliberately.
func (s *Service) Create(ctx context.Context, name *string) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	item := model.Item{ID: count + 1, Name: name}
	if err := s.store.Append(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.logger.Debug("item created", zap.Int("id", item.ID))

	itemOperationsTotal.WithLabelValues("create", outcomeOK).Inc()
	itemsInStore.Set(float64(count + 1))
	s.publish(model.EventItemCreated, item)

	return &item, nil
}

// Update resolves rawID and replaces the stored name when a new one is
// supplied. A nil or empty name means "no new name": the item is returned
// unchanged. This collapse of empty, null, and absent is part of the
// external contract.
func (s *Service) Update(ctx context.Context, rawID string, name *string) (*model.Item, error) {
	id, ok := ParseID(rawID)
	if !ok {
		itemOperationsTotal.WithLabelValues("update", outcomeNotFound).Inc()
		return nil, ErrNotFound
	}

	if name != nil && *name == "" {
		name = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.store.SetName(ctx, id, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			itemOperationsTotal.WithLabelValues("update", outcomeNotFound).Inc()
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update item: %w", err)
	}

	itemOperationsTotal.WithLabelValues("update", outcomeOK).Inc()
	s.publish(model.EventItemUpdated, *item)

	return item, nil
}

// Delete resolves rawID and removes the matching item.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, ok := ParseID(rawID)
	if !ok {
		itemOperationsTotal.WithLabelValues("delete", outcomeNotFound).Inc()
		return ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.store.Find(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			itemOperationsTotal.WithLabelValues("delete", outcomeNotFound).Inc()
			return ErrNotFound
		}
		return fmt.Errorf("delete item: %w", err)
	}

	if err := s.store.Remove(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	count, err := s.store.Count(ctx)
	if err == nil {
		itemsInStore.Set(float64(count))
	}

	s.logger.Debug("item deleted", zap.Int("id", id))

	itemOperationsTotal.WithLabelValues("delete", outcomeOK).Inc()
	s.publish(model.EventItemDeleted, *item)

	return nil
}

// publish sends a change notification when a publisher is configured.
func (s *Service) publish(eventType string, item model.Item) {
	if s.events == nil {
		return
	}
	s.events.Publish(model.NewItemEvent(eventType, item))
}
