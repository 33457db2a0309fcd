package mq

import (
	"context"
	"encoding/json"
	"log"

	"keepsake/collab"
	"keepsake/models"
	"keepsake/rdx"
)

const updateChannel = "scrapbook-events"

// Emit publishes a committed field mutation to Redis so every running
// instance can fan it out to its connected sessions. Fire-and-forget: a
// publish failure is logged, never propagated to the update path.
func Emit(ctx context.Context, event models.UpdateEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] Failed to marshal update event: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, updateChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish update event: %v", err)
	}
}

// StartSyncWorker subscribes to the update channel and forwards every
// event into the websocket hub. Runs until the subscription closes.
func StartSyncWorker(hub *collab.Hub) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, updateChannel)
	ch := sub.Channel()

	log.Println("[SyncWorker] Listening for scrapbook update events...")

	for msg := range ch {
		var event models.UpdateEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[SyncWorker] Failed to parse event: %v", err)
			continue
		}
		hub.Broadcast(collab.ScrapbookRoom, []byte(msg.Payload))
	}
}
