// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/platform/ctxutil"
	"github.com/taibuivan/tasklist/internal/platform/sec"
)

// invalidCredentialsMessage is shared by every credential failure.
const invalidCredentialsMessage = "Invalid email or password"

// dummyPassword backs the comparison made for unknown emails.
const dummyPassword = "tasklist-dummy-password"

// # Contracts

// PasswordHasher verifies stored password hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, hashed string) bool
}

// TokenIssuer signs bearer tokens for authenticated accounts.
type TokenIssuer interface {
	Issue(subjectID int64, email string) (string, *sec.Principal, error)
}

// Throttle caps login attempts per email. A nil Limiter disables it.
type Throttle struct {
	Limiter     AttemptLimiter
	MaxAttempts int64
}

// LoginObserver receives the outcome of every login attempt.
type LoginObserver interface {
	ObserveLogin(outcome string)
}

// Outcomes reported to a [LoginObserver].
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeThrottled          = "throttled"
	OutcomeError              = "error"
)

// # Service Layer

// Service implements the login use case.
type Service struct {
	credentials CredentialRepository
	hasher      PasswordHasher
	tokens      TokenIssuer
	throttle    Throttle
	observer    LoginObserver
	dummyHash   string
}

// Option customizes a [Service].
type Option func(*Service)

// WithObserver reports login outcomes to observer.
func WithObserver(observer LoginObserver) Option {
	return func(service *Service) {
		service.observer = observer
	}
}

// NewService constructs a new auth [Service].
//
// It pre-computes the dummy hash used for unknown emails, which is why it can fail.
func NewService(credentials CredentialRepository, hasher PasswordHasher, tokens TokenIssuer, throttle Throttle, opts ...Option) (*Service, error) {
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("auth_service_dummy_hash_failed: %w", err)
	}

	service := &Service{
		credentials: credentials,
		hasher:      hasher,
		tokens:      tokens,
		throttle:    throttle,
		dummyHash:   dummyHash,
	}
	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

/*
Authenticate verifies credentials and issues a bearer token.

Description: An unknown or inactive email and a wrong password return the
same Unauthorized error. Storage failures and cancellation return Internal;
a token is never returned together with an error.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *Session: Account summary and signed token
  - error: Unauthorized, RateLimited or Internal
*/
func (service *Service) Authenticate(context context.Context, email, password string) (*Session, error) {
	session, err := service.authenticate(context, email, password)
	if service.observer != nil {
		service.observer.ObserveLogin(outcomeOf(err))
	}
	return session, err
}

func (service *Service) authenticate(context context.Context, email, password string) (*Session, error) {
	logger := ctxutil.GetLogger(context)

	// ── 1. Attempt Throttle ───────────────────────────────────────────────
	if err := service.checkThrottle(context, email); err != nil {
		return nil, err
	}

	// ── 2. Credential Lookup ──────────────────────────────────────────────
	account, err := service.credentials.FindActiveByEmail(context, email)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			service.hasher.Compare(password, service.dummyHash)
			logger.InfoContext(context, "login_failed", slog.String("reason", "unknown_email"))
			return nil, apperr.Unauthorized(invalidCredentialsMessage)
		}
		return nil, apperr.Internal(fmt.Errorf("auth_service_lookup_failed: %w", err))
	}

	// ── 3. Password Verification ──────────────────────────────────────────
	if !service.hasher.Compare(password, account.PasswordHash) {
		logger.InfoContext(context, "login_failed",
			slog.String("reason", "password_mismatch"),
			slog.Int64("user_id", account.ID),
		)
		return nil, apperr.Unauthorized(invalidCredentialsMessage)
	}

	// Cancellation during the compare must not yield a token.
	if err := context.Err(); err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_cancelled: %w", err))
	}

	// ── 4. Token Issuance ─────────────────────────────────────────────────
	token, _, err := service.tokens.Issue(account.ID, account.Email)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_token_issue_failed: %w", err))
	}

	service.resetThrottle(context, email)

	logger.InfoContext(context, "login_succeeded", slog.Int64("user_id", account.ID))

	return &Session{
		ID:     account.ID,
		Name:   account.Name,
		Email:  account.Email,
		Avatar: account.Avatar,
		Token:  token,
	}, nil
}

// checkThrottle records an attempt and rejects the login once the window is exhausted.
// Limiter failures are logged and the attempt is allowed.
func (service *Service) checkThrottle(context context.Context, email string) error {
	if service.throttle.Limiter == nil {
		return nil
	}

	attempts, retryAfter, err := service.throttle.Limiter.Hit(context, email)
	if err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "login_throttle_unavailable", slog.String("error", err.Error()))
		return nil
	}

	if attempts > service.throttle.MaxAttempts {
		ctxutil.GetLogger(context).WarnContext(context, "login_throttled", slog.Int64("attempts", attempts))
		return apperr.RateLimited(int(math.Ceil(retryAfter.Seconds())))
	}

	return nil
}

func (service *Service) resetThrottle(context context.Context, email string) {
	if service.throttle.Limiter == nil {
		return
	}
	if err := service.throttle.Limiter.Reset(context, email); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "login_throttle_reset_failed", slog.String("error", err.Error()))
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case apperr.HasCode(err, apperr.CodeUnauthorized):
		return OutcomeInvalidCredentials
	case apperr.HasCode(err, apperr.CodeRateLimited):
		return OutcomeThrottled
	default:
		return OutcomeError
	}
}
