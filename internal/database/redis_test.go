package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/openai-cake/backend/config"
	"github.com/pageza/openai-cake/backend/internal/testhelpers"
)

func TestNewRedisClient(t *testing.T) {
	cfg := &config.Config{RedisURL: testhelpers.SetupRedis(t)}

	client, err := NewRedisClient(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Set(context.Background(), "ping", "pong", 0).Err())
}

func TestNewRedisClientInvalidURL(t *testing.T) {
	cfg := &config.Config{RedisURL: "http://not-redis"}

	client, err := NewRedisClient(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}
