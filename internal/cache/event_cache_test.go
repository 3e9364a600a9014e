package cache

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"eventscheduler/internal/domain"
)

func setupTestCache(t *testing.T) (*EventCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(client, 5*time.Minute, logger), mr
}

func testEvent() *domain.Event {
	return &domain.Event{
		ID:        "evt-1",
		Profiles:  []string{"u1", "u2"},
		Timezone:  "Asia/Kolkata",
		StartDate: time.Date(2024, 6, 1, 3, 30, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 1, 4, 30, 0, 0, time.UTC),
		CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		ChangeLog: []domain.ChangeEntry{},
	}
}

func TestCache_MissReturnsNil(t *testing.T) {
	c, _ := setupTestCache(t)

	if got := c.Get(context.Background(), "nope"); got != nil {
		t.Errorf("expected nil on miss, got %+v", got)
	}
}

func TestCache_SetThenGet(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()
	event := testEvent()

	c.Set(ctx, event)

	got := c.Get(ctx, event.ID)
	if got == nil {
		t.Fatal("expected cache hit")
	}
	if got.ID != event.ID || got.Timezone != event.Timezone {
		t.Errorf("got %+v, want %+v", got, event)
	}
	if !got.StartDate.Equal(event.StartDate) {
		t.Errorf("startDate = %v, want %v", got.StartDate, event.StartDate)
	}
	if len(got.Profiles) != 2 || got.Profiles[0] != "u1" {
		t.Errorf("profiles = %v", got.Profiles)
	}
}

func TestCache_Invalidate(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()
	event := testEvent()

	c.Set(ctx, event)
	c.Invalidate(ctx, event.ID)

	if got := c.Get(ctx, event.ID); got != nil {
		t.Errorf("expected nil after invalidation, got %+v", got)
	}
}

func TestCache_EntryExpires(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()
	event := testEvent()

	c.Set(ctx, event)
	mr.FastForward(10 * time.Minute)

	if got := c.Get(ctx, event.ID); got != nil {
		t.Errorf("expected nil after TTL, got %+v", got)
	}
}

func TestCache_CorruptEntryDropped(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	mr.Set("event:bad", "{not json")

	if got := c.Get(ctx, "bad"); got != nil {
		t.Errorf("expected nil for corrupt entry, got %+v", got)
	}
	if mr.Exists("event:bad") {
		t.Error("corrupt entry should have been removed")
	}
}
