package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps each cart in a hash "cart:<session>" whose fields are
// product ids. Every write refreshes the key's TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func (s *RedisStore) Items(ctx context.Context, sessionID string) (map[int64]int, error) {
	raw, err := s.rdb.HGetAll(ctx, cartKey(sessionID)).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[int64]int, len(raw))
	for k, v := range raw {
		pid, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(v)
		if err != nil || qty <= 0 {
			continue
		}
		out[pid] = qty
	}
	return out, nil
}

func (s *RedisStore) Incr(ctx context.Context, sessionID string, productID int64, delta int) (int, error) {
	key := cartKey(sessionID)
	qty, err := s.rdb.HIncrBy(ctx, key, field(productID), int64(delta)).Result()
	if err != nil {
		return 0, err
	}
	if qty <= 0 {
		if err := s.rdb.HDel(ctx, key, field(productID)).Err(); err != nil {
			return 0, err
		}
		return 0, nil
	}
	return int(qty), s.touch(ctx, key)
}

func (s *RedisStore) Set(ctx context.Context, sessionID string, productID int64, qty int) error {
	key := cartKey(sessionID)
	if qty <= 0 {
		return s.rdb.HDel(ctx, key, field(productID)).Err()
	}
	if err := s.rdb.HSet(ctx, key, field(productID), qty).Err(); err != nil {
		return err
	}
	return s.touch(ctx, key)
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, cartKey(sessionID)).Err()
}

func (s *RedisStore) touch(ctx context.Context, key string) error {
	if s.ttl <= 0 {
		return nil
	}
	return s.rdb.Expire(ctx, key, s.ttl).Err()
}
