package model

import "github.com/google/uuid"

type EventType string

const (
	EventInserted EventType = "INSERT"
	EventUpdated  EventType = "UPDATE"
	EventRemoved  EventType = "DELETE"
)

// ChangeEvent is one incremental catalog change. Product is set for inserts
// and updates; removals carry only the ID.
type ChangeEvent struct {
	Type    EventType `json:"type"`
	ID      uuid.UUID `json:"id"`
	Product *Product  `json:"product,omitempty"`
}

func Inserted(p *Product) ChangeEvent {
	return ChangeEvent{Type: EventInserted, ID: p.ID, Product: p}
}

func Updated(p *Product) ChangeEvent {
	return ChangeEvent{Type: EventUpdated, ID: p.ID, Product: p}
}

func Removed(id uuid.UUID) ChangeEvent {
	return ChangeEvent{Type: EventRemoved, ID: id}
}
