// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPLimiter_Sweep(t *testing.T) {
	limiter := newIPLimiter(1, 1)
	now := time.Now()

	limiter.allow("198.51.100.1", now.Add(-10*time.Minute))
	limiter.allow("198.51.100.2", now)

	limiter.sweep(now, 3*time.Minute)

	assert.NotContains(t, limiter.buckets, "198.51.100.1")
	assert.Contains(t, limiter.buckets, "198.51.100.2")
}

func TestIPLimiter_RetryAfter(t *testing.T) {
	assert.Equal(t, 1, newIPLimiter(100, 1).retryAfterSeconds())
	assert.Equal(t, 4, newIPLimiter(0.25, 1).retryAfterSeconds())
	assert.Equal(t, 1, newIPLimiter(0, 1).retryAfterSeconds())
}
