// Package event defines event types for decoupling components in gestao.
// These events let the API client, the poller and the TUI communicate
// without requiring direct dependencies.
package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "ticket.new", "session.expired")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Session Events
// -----------------------------------------------------------------------------

// SessionExpiredEvent is emitted when the API returns 401 on any call.
// Subscribers are expected to clear local state and return to the login view.
type SessionExpiredEvent struct {
	baseEvent
	Endpoint string // Endpoint that observed the 401
}

// NewSessionExpiredEvent creates a SessionExpiredEvent.
func NewSessionExpiredEvent(endpoint string) SessionExpiredEvent {
	return SessionExpiredEvent{
		baseEvent: newBaseEvent("session.expired"),
		Endpoint:  endpoint,
	}
}

// SessionOpenedEvent is emitted after a successful login.
type SessionOpenedEvent struct {
	baseEvent
	Username string
	Role     string
}

// NewSessionOpenedEvent creates a SessionOpenedEvent.
func NewSessionOpenedEvent(username, role string) SessionOpenedEvent {
	return SessionOpenedEvent{
		baseEvent: newBaseEvent("session.opened"),
		Username:  username,
		Role:      role,
	}
}

// -----------------------------------------------------------------------------
// Ticket Events
// -----------------------------------------------------------------------------

// TicketNewEvent is emitted by the watcher when a poll cycle observes a
// ticket id above the previously seen maximum.
type TicketNewEvent struct {
	baseEvent
	MaxID int // Largest ticket id seen in the triggering poll
}

// NewTicketNewEvent creates a TicketNewEvent.
func NewTicketNewEvent(maxID int) TicketNewEvent {
	return TicketNewEvent{
		baseEvent: newBaseEvent("ticket.new"),
		MaxID:     maxID,
	}
}

// DataRefreshedEvent is emitted after a successful mutation-triggered reload,
// so open views can re-render from fresh server state.
type DataRefreshedEvent struct {
	baseEvent
	Source string // Operation that triggered the reload ("status", "comment", "assign")
}

// NewDataRefreshedEvent creates a DataRefreshedEvent.
func NewDataRefreshedEvent(source string) DataRefreshedEvent {
	return DataRefreshedEvent{
		baseEvent: newBaseEvent("data.refreshed"),
		Source:    source,
	}
}
