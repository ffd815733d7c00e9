package chat

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T, ttl time.Duration) (TranscriptStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, ttl), mr
}

func testStoreOrdering(t *testing.T, store TranscriptStore) {
	t.Helper()
	ctx := context.Background()

	msgs := []Message{
		{Sender: SenderUser, Text: "hi"},
		{Sender: SenderBot, Text: "hello!"},
		{Sender: SenderUser, Text: "protein?"},
		{Sender: SenderOffline, Text: "1. Eat eggs"},
	}
	for _, m := range msgs {
		if err := store.Append(ctx, "dialog-a", m); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	if err := store.Append(ctx, "dialog-b", Message{Sender: SenderUser, Text: "other"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got, err := store.Load(ctx, "dialog-a")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != len(msgs) {
		t.Fatalf("expected %d messages, got %d", len(msgs), len(got))
	}
	for i := range msgs {
		if got[i] != msgs[i] {
			t.Errorf("message %d: got %+v, want %+v", i, got[i], msgs[i])
		}
	}

	if err := store.Clear(ctx, "dialog-a"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	got, err = store.Load(ctx, "dialog-a")
	if err != nil {
		t.Fatalf("Load after clear failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty transcript after clear, got %v", got)
	}

	other, _ := store.Load(ctx, "dialog-b")
	if len(other) != 1 {
		t.Errorf("clearing one dialog must not touch another, got %v", other)
	}
}

func TestMemoryStore_Ordering(t *testing.T) {
	testStoreOrdering(t, NewMemoryStore())
}

func TestRedisStore_Ordering(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	testStoreOrdering(t, store)
}

func TestRedisStore_TTL(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()

	if err := store.Append(ctx, "d", Message{Sender: SenderUser, Text: "hi"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if ttl := mr.TTL(transcriptPrefix + "d"); ttl != time.Minute {
		t.Fatalf("expected 1m TTL, got %s", ttl)
	}

	mr.FastForward(2 * time.Minute)

	got, err := store.Load(ctx, "d")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected expired transcript, got %v", got)
	}
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	_ = store.Append(ctx, "d", Message{Sender: SenderUser, Text: "hi"})

	got, _ := store.Load(ctx, "d")
	got[0].Text = "changed"

	again, _ := store.Load(ctx, "d")
	if again[0].Text != "hi" {
		t.Fatal("stored transcript was mutated through Load result")
	}
}
