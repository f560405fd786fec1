package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "verification:"

// RedisStore keeps records as JSON under verification:<phone>. Keys outlive
// the code by grace so an expired code is still reported as expired rather
// than missing until the next sweep.
type RedisStore struct {
	client *redis.Client
	grace  time.Duration
	now    func() time.Time
}

// NewRedisStore builds a store on client.
func NewRedisStore(client *redis.Client, grace time.Duration) *RedisStore {
	return &RedisStore{client: client, grace: grace, now: time.Now}
}

func (s *RedisStore) Get(ctx context.Context, phone string) (*Record, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+phone).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("redis get verification: %w", err)
	}
	var record Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode verification: %w", err)
	}
	return &record, nil
}

func (s *RedisStore) Set(ctx context.Context, record Record) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode verification: %w", err)
	}
	ttl := record.ExpiresAt.Sub(s.now()) + s.grace
	if ttl <= 0 {
		ttl = time.Second
	}
	if err := s.client.Set(ctx, redisKeyPrefix+record.Phone, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set verification: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+phone).Err(); err != nil {
		return fmt.Errorf("redis delete verification: %w", err)
	}
	return nil
}

func (s *RedisStore) Sweep(ctx context.Context, now time.Time) (int, error) {
	removed := 0
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		raw, err := s.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return removed, fmt.Errorf("redis sweep get: %w", err)
		}
		var record Record
		if err := json.Unmarshal(raw, &record); err != nil || record.Expired(now) {
			n, err := s.client.Del(ctx, key).Result()
			if err != nil {
				return removed, fmt.Errorf("redis sweep delete: %w", err)
			}
			removed += int(n)
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("redis sweep scan: %w", err)
	}
	return removed, nil
}
