package collab

import (
	"encoding/json"
	"testing"
	"time"

	"keepsake/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// create fake client
	client := &Client{
		Send: make(chan []byte, 10),
		Room: ScrapbookRoom,
	}

	// register client
	hub.register <- client

	// broadcast a field update
	event := models.UpdateEvent{EntryID: "e1", Field: "title", Value: "<b>Kyoto</b>"}
	data, _ := json.Marshal(event)
	hub.Broadcast(ScrapbookRoom, data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	// unregister client
	hub.unregister <- client
}

func TestHubBroadcastSkipsOtherRooms(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	other := &Client{
		Send: make(chan []byte, 10),
		Room: "another-book",
	}
	hub.register <- other

	hub.Broadcast(ScrapbookRoom, []byte("hello"))

	select {
	case msg := <-other.Send:
		t.Fatalf("client in another room received %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
