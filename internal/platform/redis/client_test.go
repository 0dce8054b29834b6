// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTune(t *testing.T) {
	options, err := redis.ParseURL("redis://cache:6379/2")
	require.NoError(t, err)

	tune(options)

	assert.Equal(t, "cache:6379", options.Addr)
	assert.Equal(t, 2, options.DB)
	assert.Equal(t, "tasklist-api", options.ClientName)
	assert.Equal(t, poolSize, options.PoolSize)
	assert.Equal(t, readTimeout, options.ReadTimeout)
}

func TestNewClient_InvalidURL(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	client, err := NewClient(context.Background(), "http://not-redis", logger)

	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "invalid URL")
}
