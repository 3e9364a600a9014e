package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"eventscheduler/internal/domain"
)

const keyPrefix = "event:"

// EventCache is a TTL-bounded read cache of event documents keyed by id.
// Postgres stays authoritative: every write path invalidates, and any
// Redis failure degrades to a miss.
type EventCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *EventCache {
	return &EventCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached event, or nil on a miss.
func (c *EventCache) Get(ctx context.Context, id string) *domain.Event {
	data, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("event cache read failed", "event_id", id, "error", err)
		}
		return nil
	}

	var event domain.Event
	if err := json.Unmarshal(data, &event); err != nil {
		c.logger.Warn("event cache entry corrupt, dropping", "event_id", id, "error", err)
		c.Invalidate(ctx, id)
		return nil
	}
	return &event
}

// Set stores the event under its id for the configured TTL.
func (c *EventCache) Set(ctx context.Context, event *domain.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		c.logger.Error("failed to marshal event for cache", "event_id", event.ID, "error", err)
		return
	}

	if err := c.client.Set(ctx, keyPrefix+event.ID, data, c.ttl).Err(); err != nil {
		c.logger.Warn("event cache write failed", "event_id", event.ID, "error", err)
	}
}

// Invalidate removes the cached copy after an update or delete.
func (c *EventCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		c.logger.Warn("event cache invalidation failed", "event_id", id, "error", err)
	}
}
