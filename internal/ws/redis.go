package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/shotclock/backend/internal/arcade"
)

// StartEventSubscriber subscribes to the session event channel and forwards
// every event to renderers.
func (h *Hub) StartEventSubscriber(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		log.Println("[WS] Redis client not set; event subscriber not started")
		return
	}

	pubsub := rdb.Subscribe(ctx, arcade.EventsChannel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Printf("[WS] %s subscriber started", arcade.EventsChannel)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev arcade.Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					log.Printf("[WS] invalid event payload: %v", err)
					continue
				}
				log.Printf("[WS] event received: type=%s phase=%s score=%d", ev.Type, ev.Phase, ev.Score)
				h.Broadcast(MsgEvent, ev)
			}
		}
	}()
}
