package domain

import "time"

type EventType string

const (
	EventTableStatusChanged EventType = "table.status_changed"
	EventTableMoved         EventType = "table.moved"
	EventSessionOpened      EventType = "session.opened"
	EventSessionClosed      EventType = "session.closed"
	EventOrderSubmitted     EventType = "order.submitted"
)

// Event is a notification about a committed state change.
type Event struct {
	Type       EventType `json:"type"`
	TableID    uint      `json:"table_id,omitempty"`
	GroupID    string    `json:"group_id,omitempty"`
	OrderID    uint      `json:"order_id,omitempty"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(t EventType) Event {
	return Event{Type: t, OccurredAt: time.Now().UTC()}
}
