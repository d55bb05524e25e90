package ratelimit

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ fiber.Storage = (*RedisStorage)(nil)

func TestNewRedisStorage_Unreachable(t *testing.T) {
	_, err := NewRedisStorage("127.0.0.1:1", "", 0)
	assert.Error(t, err)
}

func TestRedisStorage_NoopsSkipTheServer(t *testing.T) {
	s := NewRedisStorageFromClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))
	t.Cleanup(func() { _ = s.Close() })

	val, err := s.Get("")
	require.NoError(t, err)
	assert.Nil(t, val)

	assert.NoError(t, s.Set("", []byte("1"), 0))
	assert.NoError(t, s.Set("login:127.0.0.1", nil, 0))
	assert.NoError(t, s.Delete(""))
}
