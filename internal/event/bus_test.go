package event

import (
	"testing"
)

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus()

	called := false
	id := bus.Subscribe("session.expired", func(e Event) {
		called = true
	})

	if id == "" {
		t.Error("Subscribe should return a non-empty ID")
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("Expected 1 subscription, got %d", bus.SubscriptionCount())
	}
	if called {
		t.Error("Handler should not be called until an event is published")
	}
}

func TestBus_Publish(t *testing.T) {
	bus := NewBus()

	var received Event
	bus.Subscribe("ticket.new", func(e Event) {
		received = e
	})

	bus.Publish(NewTicketNewEvent(42))

	if received == nil {
		t.Fatal("Handler should have received the event")
	}
	if received.EventType() != "ticket.new" {
		t.Errorf("Expected event type 'ticket.new', got '%s'", received.EventType())
	}
	if received.(TicketNewEvent).MaxID != 42 {
		t.Errorf("Expected MaxID 42, got %d", received.(TicketNewEvent).MaxID)
	}
}

func TestBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewBus()

	callCount := 0
	bus.Subscribe("session.expired", func(e Event) { callCount++ })
	bus.Subscribe("session.expired", func(e Event) { callCount++ })

	bus.Publish(NewSessionExpiredEvent("/tickets"))

	if callCount != 2 {
		t.Errorf("Expected both handlers to be called, got %d calls", callCount)
	}
}

func TestBus_PublishNoMatchingHandlers(t *testing.T) {
	bus := NewBus()

	bus.Subscribe("session.opened", func(e Event) {
		t.Error("Handler should not be called for non-matching event type")
	})

	bus.Publish(NewSessionExpiredEvent("/tickets"))
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	called := false
	id := bus.Subscribe("data.refreshed", func(e Event) { called = true })

	if !bus.Unsubscribe(id) {
		t.Error("Unsubscribe should return true for a known ID")
	}
	if bus.Unsubscribe(id) {
		t.Error("Unsubscribe should return false for an already-removed ID")
	}

	bus.Publish(NewDataRefreshedEvent("status"))
	if called {
		t.Error("Unsubscribed handler should not be called")
	}
}

func TestBus_HandlerPanicDoesNotStopDelivery(t *testing.T) {
	bus := NewBus()

	secondCalled := false
	bus.Subscribe("ticket.new", func(e Event) { panic("boom") })
	bus.Subscribe("ticket.new", func(e Event) { secondCalled = true })

	bus.Publish(NewTicketNewEvent(1))

	if !secondCalled {
		t.Error("Handler after a panicking handler should still be called")
	}
}

func TestBus_Clear(t *testing.T) {
	bus := NewBus()

	bus.Subscribe("ticket.new", func(e Event) {})
	bus.Subscribe("session.expired", func(e Event) {})
	bus.Clear()

	if bus.SubscriptionCount() != 0 {
		t.Errorf("Expected 0 subscriptions after Clear, got %d", bus.SubscriptionCount())
	}
}
