// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasklist/internal/platform/ctxutil"
	"github.com/taibuivan/tasklist/internal/platform/middleware"
	"github.com/taibuivan/tasklist/internal/platform/sec"
)

func newVerifier(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(sec.TokenConfig{
		Secret:   "middleware-secret",
		TTL:      time.Hour,
		Audience: "clients",
		Issuer:   "api",
	})
	require.NoError(t, err)
	return service
}

// echoSubject writes the caller email or "anonymous".
var echoSubject = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	principal := ctxutil.GetPrincipal(request.Context())
	if principal == nil {
		_, _ = writer.Write([]byte("anonymous"))
		return
	}
	_, _ = writer.Write([]byte(principal.Email))
})

/*
TestAuthenticate covers anonymous, valid, and rejected bearer headers.
*/
func TestAuthenticate(t *testing.T) {
	verifier := newVerifier(t)
	token, _, err := verifier.Issue(8, "owner@example.com")
	require.NoError(t, err)

	expired, err := sec.NewTokenService(sec.TokenConfig{
		Secret:   "middleware-secret",
		TTL:      -time.Minute,
		Audience: "clients",
		Issuer:   "api",
	})
	require.NoError(t, err)
	expiredToken, _, err := expired.Issue(8, "owner@example.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"anonymous", "", http.StatusOK, "anonymous"},
		{"valid", "Bearer " + token, http.StatusOK, "owner@example.com"},
		{"lowercase_scheme", "bearer " + token, http.StatusOK, "owner@example.com"},
		{"wrong_scheme", "Basic " + token, http.StatusUnauthorized, ""},
		{"missing_token", "Bearer ", http.StatusUnauthorized, ""},
		{"garbage", "Bearer not.a.jwt", http.StatusUnauthorized, ""},
		{"expired", "Bearer " + expiredToken, http.StatusUnauthorized, ""},
	}

	handler := middleware.Authenticate(verifier)(echoSubject)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, recorder.Body.String())
			}
		})
	}
}

/*
TestRequireAuth rejects anonymous callers on guarded routes.
*/
func TestRequireAuth(t *testing.T) {
	verifier := newVerifier(t)
	token, _, err := verifier.Issue(1, "a@example.com")
	require.NoError(t, err)

	handler := middleware.Authenticate(verifier)(middleware.RequireAuth(echoSubject))

	anonymous := httptest.NewRecorder()
	handler.ServeHTTP(anonymous, httptest.NewRequest(http.MethodPost, "/tasks", nil))
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	request := httptest.NewRequest(http.MethodPost, "/tasks", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	authenticated := httptest.NewRecorder()
	handler.ServeHTTP(authenticated, request)
	assert.Equal(t, http.StatusOK, authenticated.Code)
}
