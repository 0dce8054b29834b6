// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// CredentialRepository looks up accounts allowed to log in.
type CredentialRepository interface {
	// FindActiveByEmail returns the active account registered under email.
	//
	// Returns [apperr.NotFound] when no active account matches.
	FindActiveByEmail(ctx context.Context, email string) (*Account, error)
}

// AttemptLimiter counts login attempts per key inside a fixed window.
type AttemptLimiter interface {
	// Hit records one attempt and returns the count in the current window
	// together with the time left until the window resets.
	Hit(ctx context.Context, key string) (int64, time.Duration, error)

	// Reset clears the counter for key.
	Reset(ctx context.Context, key string) error
}
