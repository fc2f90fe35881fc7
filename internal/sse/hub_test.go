package sse

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/divyeshvadher/silai-sahayak/internal/event"
)

func TestHubBroadcastsChangeEvents(t *testing.T) {
	bus := event.NewMemoryBus()
	hub := NewHub(nil)

	detach, err := hub.Attach(bus)
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	defer detach()

	client := &Client{ID: "c1", UserID: "u1", Events: make(chan Message, 4)}
	hub.Register(client)
	defer hub.Unregister("c1")

	bus.Publish(context.Background(), event.Event{
		Resource: "orders",
		Action:   event.ActionInsert,
		RecordID: "o1",
	})

	select {
	case msg := <-client.Events:
		if msg.EventType != "change" {
			t.Fatalf("event type = %q, want change", msg.EventType)
		}
		var ev event.Event
		if err := json.Unmarshal([]byte(msg.Data), &ev); err != nil {
			t.Fatalf("payload not JSON: %v", err)
		}
		if ev.Resource != "orders" || ev.RecordID != "o1" {
			t.Fatalf("unexpected payload: %+v", ev)
		}
	default:
		t.Fatal("no event delivered")
	}
}

func TestHubSkipsClientWithFullBuffer(t *testing.T) {
	hub := NewHub(nil)

	full := &Client{ID: "full", Events: make(chan Message)} // unbuffered, no reader
	ok := &Client{ID: "ok", Events: make(chan Message, 1)}
	hub.Register(full)
	hub.Register(ok)

	hub.Broadcast(Message{EventType: "change", Data: "{}"})

	select {
	case <-ok.Events:
	default:
		t.Fatal("healthy client did not receive the event")
	}
}

func TestHubUnregisterClosesChannel(t *testing.T) {
	hub := NewHub(nil)
	client := &Client{ID: "c1", Events: make(chan Message, 1)}
	hub.Register(client)
	hub.Unregister("c1")

	if _, open := <-client.Events; open {
		t.Fatal("channel still open after unregister")
	}

	// Unknown IDs are ignored.
	hub.Unregister("missing")
}
