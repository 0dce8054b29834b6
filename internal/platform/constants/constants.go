// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants collects the fixed values shared across Tasklist layers:
server timeouts, the per-IP request budget, header names, JSON keys of the
health endpoints and the Redis key namespace.

Anything an operator may want to change lives in config instead.
*/
package constants

import "time"

const (
	AppName    = "tasklist-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second
	// DefaultWriteTimeout must cover a full avatar upload round trip.
	DefaultWriteTimeout = 10 * time.Second
	DefaultIdleTimeout  = 120 * time.Second

	// GlobalRequestTimeout bounds every handler and doubles as the Postgres
	// statement_timeout.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests get to finish on SIGTERM.
	ShutdownTimeout = 30 * time.Second

	// ReadinessProbeTimeout bounds each dependency check behind /ready.
	ReadinessProbeTimeout = 3 * time.Second
)

// # Per-IP Request Budget

const (
	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often idle client buckets are swept.
	RateLimitCleanupInterval = time.Minute

	// RateLimitClientTTL is the idle time after which a bucket is dropped.
	RateLimitClientTTL = 3 * time.Minute
)

// # Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderRetryAfter    = "Retry-After"

	// BearerScheme is compared case-insensitively.
	BearerScheme = "bearer"
)

// # Health Payload Keys

const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Redis Keys

const (
	// RedisPrefixLoginAttempts namespaces the per-email login attempt counters.
	RedisPrefixLoginAttempts = "tasklist:login_attempts:"
)
