// Package ratelimit provides shared counter storage for the fiber limiters.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix  = "staffdesk:ratelimit:"
	defaultTimeout = 2 * time.Second
)

// RedisStorage implements fiber.Storage on Redis so several API instances
// share the same limiter windows
type RedisStorage struct {
	rdb     redis.UniversalClient
	prefix  string
	timeout time.Duration
}

// NewRedisStorage connects to addr and verifies the connection
func NewRedisStorage(addr, password string, db int) (*RedisStorage, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisStorageFromClient(rdb), nil
}

// NewRedisStorageFromClient wraps an existing client
func NewRedisStorageFromClient(rdb redis.UniversalClient) *RedisStorage {
	return &RedisStorage{
		rdb:     rdb,
		prefix:  defaultPrefix,
		timeout: defaultTimeout,
	}
}

// Get returns nil, nil for a missing key
func (s *RedisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	ctx, cancel := s.ctx()
	defer cancel()

	val, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set stores val; exp of 0 means no expiration
func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}

	ctx, cancel := s.ctx()
	defer cancel()

	return s.rdb.Set(ctx, s.prefix+key, val, exp).Err()
}

// Delete removes key
func (s *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}

	ctx, cancel := s.ctx()
	defer cancel()

	return s.rdb.Del(ctx, s.prefix+key).Err()
}

// Reset removes every key under the storage prefix
func (s *RedisStorage) Reset() error {
	ctx, cancel := s.ctx()
	defer cancel()

	iter := s.rdb.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close closes the Redis client
func (s *RedisStorage) Close() error {
	return s.rdb.Close()
}

func (s *RedisStorage) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}
