package helper

import (
	"context"
	"encoding/json"
	"event_ticketing/model"
	"fmt"

	"github.com/redis/go-redis/v9"
)

func FeedChannel(eventID string) string {
	return fmt.Sprintf("event:%s:feed", eventID)
}

// LiveFeed relays domain events to websocket subscribers through Redis pub/sub.
type LiveFeed struct {
	client *redis.Client
}

func NewLiveFeed(client *redis.Client) *LiveFeed {
	return &LiveFeed{client: client}
}

func (f *LiveFeed) Publish(ctx context.Context, evt model.DomainEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return f.client.Publish(ctx, FeedChannel(evt.EventId), payload).Err()
}

func (f *LiveFeed) Subscribe(ctx context.Context, eventID string) *redis.PubSub {
	return f.client.Subscribe(ctx, FeedChannel(eventID))
}
