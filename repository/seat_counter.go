package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

func SeatSequenceKey(eventID string) string {
	return fmt.Sprintf("event:%s:seat_seq", eventID)
}

// RedisSeatCounter hands out per-event seat sequence numbers with INCR.
type RedisSeatCounter struct {
	client redis.Cmdable
}

func NewRedisSeatCounter(client redis.Cmdable) *RedisSeatCounter {
	return &RedisSeatCounter{client: client}
}

func (c *RedisSeatCounter) Next(ctx context.Context, eventID string) (int64, error) {
	n, err := c.client.Incr(ctx, SeatSequenceKey(eventID)).Result()
	if err != nil {
		return 0, fmt.Errorf("seat sequence for event %s: %w", eventID, err)
	}
	return n, nil
}

// PostgresSeatCounter uses the events.seat_sequence column.
type PostgresSeatCounter struct {
	events *EventRepository
}

func NewPostgresSeatCounter(events *EventRepository) *PostgresSeatCounter {
	return &PostgresSeatCounter{events: events}
}

func (c *PostgresSeatCounter) Next(ctx context.Context, eventID string) (int64, error) {
	return c.events.NextSeatSequence(ctx, eventID)
}
