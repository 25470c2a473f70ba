package mq

import (
	"context"
	"encoding/json"
	"log"

	"tourbase/models"
	"tourbase/rdx"
)

const indexingChannel = "indexing-events"

// Emit publishes an indexing event to Redis; the search worker picks it up.
// Failures are logged, never propagated: indexing is best-effort and must not
// fail the write that triggered it.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, indexingChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s event to Redis: %v", eventName, err)
	}
}

// Subscribe returns the channel of raw indexing events.
func Subscribe(ctx context.Context) <-chan string {
	sub := rdx.Conn.Subscribe(ctx, indexingChannel)
	out := make(chan string)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			out <- msg.Payload
		}
	}()
	return out
}
