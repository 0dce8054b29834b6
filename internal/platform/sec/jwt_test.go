// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasklist/internal/platform/sec"
)

var baseTokenConfig = sec.TokenConfig{
	Secret:   "test-secret",
	TTL:      time.Hour,
	Audience: "tasklist-clients",
	Issuer:   "tasklist-api",
}

func newTokenService(t *testing.T, cfg sec.TokenConfig, opts ...sec.TokenOption) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(cfg, opts...)
	require.NoError(t, err)
	return service
}

/*
TestTokenService_RoundTrip verifies Verify reconstructs what Issue produced.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, baseTokenConfig)

	token, issued, err := service.Issue(42, "ana@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, err := service.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), principal.SubjectID)
	assert.Equal(t, "ana@example.com", principal.Email)
	assert.Equal(t, "tasklist-clients", principal.Audience)
	assert.Equal(t, "tasklist-api", principal.Issuer)
	assert.True(t, issued.IssuedAt.Equal(principal.IssuedAt))
	assert.True(t, issued.ExpiresAt.Equal(principal.ExpiresAt))
	assert.Equal(t, time.Hour, principal.ExpiresAt.Sub(principal.IssuedAt))
}

/*
TestTokenService_Expired covers both a negative TTL and a clock moved past expiry.
*/
func TestTokenService_Expired(t *testing.T) {
	t.Run("negative_ttl", func(t *testing.T) {
		cfg := baseTokenConfig
		cfg.TTL = -time.Second
		service := newTokenService(t, cfg)

		token, _, err := service.Issue(1, "a@example.com")
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.ErrorIs(t, err, sec.ErrTokenExpired)
	})

	t.Run("clock_advanced", func(t *testing.T) {
		now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		clock := func() time.Time { return now }
		service := newTokenService(t, baseTokenConfig, sec.WithClock(clock))

		token, _, err := service.Issue(1, "a@example.com")
		require.NoError(t, err)

		now = now.Add(59 * time.Minute)
		_, err = service.Verify(token)
		require.NoError(t, err)

		now = now.Add(2 * time.Minute)
		_, err = service.Verify(token)
		assert.ErrorIs(t, err, sec.ErrTokenExpired)
	})
}

/*
TestTokenService_ContextMismatch checks each verification parameter is binding.
*/
func TestTokenService_ContextMismatch(t *testing.T) {
	issuer := newTokenService(t, baseTokenConfig)
	token, _, err := issuer.Issue(7, "b@example.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*sec.TokenConfig)
		want   error
	}{
		{"wrong_secret", func(c *sec.TokenConfig) { c.Secret = "other-secret" }, sec.ErrTokenSignature},
		{"wrong_audience", func(c *sec.TokenConfig) { c.Audience = "someone-else" }, sec.ErrTokenAudience},
		{"wrong_issuer", func(c *sec.TokenConfig) { c.Issuer = "impostor" }, sec.ErrTokenIssuer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseTokenConfig
			tt.mutate(&cfg)
			verifier := newTokenService(t, cfg)

			principal, err := verifier.Verify(token)
			assert.Nil(t, principal)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("verifier_without_audience_or_issuer", func(t *testing.T) {
		foreign := newTokenService(t, sec.TokenConfig{
			Secret:   baseTokenConfig.Secret,
			TTL:      time.Hour,
			Audience: "other-app",
			Issuer:   "other-iss",
		})
		foreignToken, _, err := foreign.Issue(1, "a@example.com")
		require.NoError(t, err)

		verifier, err := sec.NewTokenService(sec.TokenConfig{Secret: baseTokenConfig.Secret, TTL: time.Hour})
		require.Error(t, err)
		assert.Nil(t, verifier)

		principal, err := issuer.Verify(foreignToken)
		assert.Nil(t, principal)
		assert.ErrorIs(t, err, sec.ErrTokenAudience)
	})
}

/*
TestTokenService_Malformed rejects junk and tampered tokens.
*/
func TestTokenService_Malformed(t *testing.T) {
	service := newTokenService(t, baseTokenConfig)

	_, err := service.Verify("not.a.jwt")
	assert.ErrorIs(t, err, sec.ErrTokenMalformed)

	_, err = service.Verify("")
	assert.ErrorIs(t, err, sec.ErrTokenMalformed)

	token, _, err := service.Issue(3, "c@example.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	other, _, err := service.Issue(4, "d@example.com")
	require.NoError(t, err)
	tampered := parts[0] + "." + strings.Split(other, ".")[1] + "." + parts[2]

	_, err = service.Verify(tampered)
	assert.ErrorIs(t, err, sec.ErrTokenSignature)
}

/*
TestTokenService_RejectsOtherAlgorithms ensures only HS256 is accepted.
*/
func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	service := newTokenService(t, baseTokenConfig)

	claims := jwt.RegisteredClaims{
		Subject:   "1",
		Audience:  jwt.ClaimStrings{baseTokenConfig.Audience},
		Issuer:    baseTokenConfig.Issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(baseTokenConfig.Secret))
	require.NoError(t, err)
	_, err = service.Verify(hs512)
	assert.ErrorIs(t, err, sec.ErrTokenSignature)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = service.Verify(none)
	assert.ErrorIs(t, err, sec.ErrTokenSignature)
}

/*
TestTokenService_BadSubject rejects a correctly signed token whose subject is not an ID.
*/
func TestTokenService_BadSubject(t *testing.T) {
	service := newTokenService(t, baseTokenConfig)

	claims := sec.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-number",
			Audience:  jwt.ClaimStrings{baseTokenConfig.Audience},
			Issuer:    baseTokenConfig.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(baseTokenConfig.Secret))
	require.NoError(t, err)

	_, err = service.Verify(token)
	assert.ErrorIs(t, err, sec.ErrTokenSubject)
}

/*
TestNewTokenService_RequiredFields refuses a configuration that would leave a
verification parameter unchecked.
*/
func TestNewTokenService_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sec.TokenConfig)
	}{
		{"no_secret", func(c *sec.TokenConfig) { c.Secret = "" }},
		{"no_audience", func(c *sec.TokenConfig) { c.Audience = "" }},
		{"no_issuer", func(c *sec.TokenConfig) { c.Issuer = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseTokenConfig
			tt.mutate(&cfg)

			service, err := sec.NewTokenService(cfg)
			assert.Nil(t, service)
			assert.Error(t, err)
		})
	}
}
