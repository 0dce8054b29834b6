// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives, token management, and the
// ownership policy applied to every write operation.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. Services receive its types through constructors and never
// read secrets from the environment themselves.
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Reasons a bearer token is rejected by [TokenService.Verify].
var (
	ErrTokenMalformed = errors.New("sec: token malformed")
	ErrTokenSignature = errors.New("sec: token signature invalid")
	ErrTokenExpired   = errors.New("sec: token expired")
	ErrTokenAudience  = errors.New("sec: token audience mismatch")
	ErrTokenIssuer    = errors.New("sec: token issuer mismatch")
	ErrTokenSubject   = errors.New("sec: token subject invalid")
)

// TokenConfig holds the signing parameters shared by issuance and verification.
// Every field except TTL is required.
type TokenConfig struct {
	Secret   string
	TTL      time.Duration
	Audience string
	Issuer   string
}

// Principal is the verified identity carried by a bearer token.
type Principal struct {
	SubjectID int64
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Audience  string
	Issuer    string
}

// Claims represents the payload embedded inside a JWT access token.
//
// The subject holds the decimal user ID; the email rides alongside so request
// logging can identify the caller without a database round-trip.
type Claims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
}

// TokenService handles generation and verification of HS256 JWT tokens.
//
// It is immutable after construction and safe for concurrent use.
type TokenService struct {
	secret   []byte
	ttl      time.Duration
	audience string
	issuer   string
	now      func() time.Time
}

// TokenOption customizes a [TokenService].
type TokenOption func(*TokenService)

// WithClock replaces the wall clock used for issuance and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg TokenConfig, opts ...TokenOption) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("sec: token secret must not be empty")
	}
	if cfg.Audience == "" || cfg.Issuer == "" {
		return nil, fmt.Errorf("sec: token audience and issuer must not be empty")
	}

	service := &TokenService{
		secret:   []byte(cfg.Secret),
		ttl:      cfg.TTL,
		audience: cfg.Audience,
		issuer:   cfg.Issuer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// TTL returns the lifetime applied to newly issued tokens.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// Issue signs a token for the given subject.
//
// The returned [Principal] mirrors exactly what [TokenService.Verify] will
// reconstruct from the token.
func (service *TokenService) Issue(subjectID int64, email string) (string, *Principal, error) {
	// NumericDate has second precision; truncate so Issue and Verify agree.
	issuedAt := service.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(service.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			Issuer:    service.issuer,
			Audience:  jwt.ClaimStrings{service.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, &Principal{
		SubjectID: subjectID,
		Email:     email,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		Audience:  service.audience,
		Issuer:    service.issuer,
	}, nil
}

// Verify checks the signature and claims of a token string.
//
// The error is always one of the ErrToken* sentinels, possibly wrapped.
func (service *TokenService) Verify(tokenString string) (*Principal, error) {
	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
		jwt.WithAudience(service.audience),
		jwt.WithIssuer(service.issuer),
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return service.secret, nil
	}, parserOptions...)
	if err != nil {
		return nil, classifyTokenError(err)
	}

	subjectID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrTokenSubject, claims.Subject)
	}

	principal := &Principal{
		SubjectID: subjectID,
		Email:     claims.Email,
		Issuer:    claims.Issuer,
	}
	if claims.IssuedAt != nil {
		principal.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		principal.ExpiresAt = claims.ExpiresAt.Time
	}
	if len(claims.Audience) > 0 {
		principal.Audience = claims.Audience[0]
	}

	return principal, nil
}

// classifyTokenError maps jwt parser errors onto the package sentinels.
// Signature failures win over claim failures because the parser checks them first.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrTokenSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return fmt.Errorf("%w: %v", ErrTokenAudience, err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return fmt.Errorf("%w: %v", ErrTokenIssuer, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}
