package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const transcriptPrefix = "transcript:"

type memoryStore struct {
	mu          sync.Mutex
	transcripts map[string][]Message
}

func NewMemoryStore() TranscriptStore {
	return &memoryStore{transcripts: make(map[string][]Message)}
}

func (m *memoryStore) Append(_ context.Context, dialogID string, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transcripts[dialogID] = append(m.transcripts[dialogID], msg)
	return nil
}

func (m *memoryStore) Load(_ context.Context, dialogID string) ([]Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.transcripts[dialogID]...), nil
}

func (m *memoryStore) Clear(_ context.Context, dialogID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.transcripts, dialogID)
	return nil
}

// redisStore keeps each transcript in a list; every append refreshes the TTL.
type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) TranscriptStore {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func (r *redisStore) Append(ctx context.Context, dialogID string, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	key := transcriptPrefix + dialogID
	pipe := r.rdb.TxPipeline()
	pipe.RPush(ctx, key, data)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

func (r *redisStore) Load(ctx context.Context, dialogID string) ([]Message, error) {
	vals, err := r.rdb.LRange(ctx, transcriptPrefix+dialogID, 0, -1).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}

	out := make([]Message, 0, len(vals))
	for _, v := range vals {
		var m Message
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message: %w", err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *redisStore) Clear(ctx context.Context, dialogID string) error {
	if err := r.rdb.Del(ctx, transcriptPrefix+dialogID).Err(); err != nil {
		return fmt.Errorf("failed to clear transcript: %w", err)
	}
	return nil
}
