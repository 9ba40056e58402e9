// Package model defines data structures used throughout the application.
package model

import "time"

// Item represents a named record in the store. Name is a pointer so the
// JSON null / absent cases survive the round trip: a client that never
// supplies a name gets the item back with "name": null, exactly as stored.
type Item struct {
	ID   int     `json:"id"`
	Name *string `json:"name"`
}

// NamedItem is a convenience constructor for an item with a concrete name.
func NamedItem(id int, name string) Item {
	return Item{ID: id, Name: &name}
}

// MessageResponse is the fixed-message payload used for not-found responses
// and delete confirmations.
type MessageResponse struct {
	Message string `json:"message"`
}

// Response messages exposed on the HTTP surface.
const (
	MessageItemNotFound = "Item not found"
	MessageItemDeleted  = "Item deleted"
)

// ItemEvent represents a store change notification sent over the event
// stream.
type ItemEvent struct {
	Type      string    `json:"type"`
	Item      *Item     `json:"item,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types carried by ItemEvent.
const (
	EventItemCreated = "item_created"
	EventItemUpdated = "item_updated"
	EventItemDeleted = "item_deleted"
)

// NewItemEvent creates a change notification for the given item.
func NewItemEvent(eventType string, item Item) ItemEvent {
	return ItemEvent{
		Type:      eventType,
		Item:      &item,
		Timestamp: time.Now().UTC(),
	}
}
