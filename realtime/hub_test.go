package realtime

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "conv1",
	}

	hub.register <- client

	update := ActionUpdate{ActionID: "a1", Status: "approved"}
	hub.Broadcast("conv1", update)

	select {
	case got := <-client.Send:
		var decoded ActionUpdate
		if err := json.Unmarshal(got, &decoded); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if decoded != update {
			t.Fatalf("expected %+v, got %+v", update, decoded)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubRoomIsolation(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	inRoom := &Client{Send: make(chan []byte, 10), Room: "conv1"}
	otherRoom := &Client{Send: make(chan []byte, 10), Room: "conv2"}
	hub.register <- inRoom
	hub.register <- otherRoom

	hub.Broadcast("conv1", ActionUpdate{ActionID: "a1", Status: "declined"})

	select {
	case <-inRoom.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message in room")
	}

	select {
	case msg := <-otherRoom.Send:
		t.Fatalf("unexpected message in other room: %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
