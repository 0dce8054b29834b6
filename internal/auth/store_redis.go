// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/tasklist/internal/platform/constants"
)

// RedisAttemptLimiter implements [AttemptLimiter] as a fixed-window counter in Redis.
type RedisAttemptLimiter struct {
	client redis.Cmdable
	window time.Duration
}

// NewRedisAttemptLimiter creates a limiter whose windows last for window.
func NewRedisAttemptLimiter(client redis.Cmdable, window time.Duration) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{client: client, window: window}
}

/*
Hit increments the attempt counter for key.

Description: The first hit of a window sets the expiry; later hits only
increment. A key left without a TTL (crash between INCR and EXPIRE) is
repaired on the next hit.

Parameters:
  - context: context.Context
  - key: string (usually the login email)

Returns:
  - int64: Attempts in the current window, including this one
  - time.Duration: Time until the window resets
  - error: Redis failures
*/
func (limiter *RedisAttemptLimiter) Hit(context context.Context, key string) (int64, time.Duration, error) {
	redisKey := constants.RedisPrefixLoginAttempts + key

	attempts, err := limiter.client.Incr(context, redisKey).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("redis_login_attempts_incr_failed: %w", err)
	}

	if attempts == 1 {
		if err := limiter.client.Expire(context, redisKey, limiter.window).Err(); err != nil {
			return attempts, limiter.window, fmt.Errorf("redis_login_attempts_expire_failed: %w", err)
		}
		return attempts, limiter.window, nil
	}

	ttl, err := limiter.client.TTL(context, redisKey).Result()
	if err != nil {
		return attempts, limiter.window, fmt.Errorf("redis_login_attempts_ttl_failed: %w", err)
	}

	// -1 means the key exists without an expiry
	if ttl < 0 {
		if err := limiter.client.Expire(context, redisKey, limiter.window).Err(); err != nil {
			return attempts, limiter.window, fmt.Errorf("redis_login_attempts_expire_failed: %w", err)
		}
		ttl = limiter.window
	}

	return attempts, ttl, nil
}

// Reset deletes the counter for key.
func (limiter *RedisAttemptLimiter) Reset(context context.Context, key string) error {
	if err := limiter.client.Del(context, constants.RedisPrefixLoginAttempts+key).Err(); err != nil {
		return fmt.Errorf("redis_login_attempts_reset_failed: %w", err)
	}
	return nil
}
