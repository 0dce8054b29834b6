// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/platform/constants"
	"github.com/taibuivan/tasklist/internal/platform/ctxutil"
	"github.com/taibuivan/tasklist/internal/platform/respond"
	"github.com/taibuivan/tasklist/internal/platform/sec"
)

// TokenVerifier turns a bearer token into a principal. [*sec.TokenService]
// satisfies it.
type TokenVerifier interface {
	Verify(tokenString string) (*sec.Principal, error)
}

// Authenticate resolves the bearer token, if any, into a [*sec.Principal].
//
// # Flow
//  1. No Authorization header: the request continues anonymously.
//  2. Header present but not "Bearer <token>": 401.
//  3. Token rejected by the verifier: 401, reason logged at debug only.
//  4. Otherwise the principal and a user-tagged logger go into the context.
//
// Route-level protection is [RequireAuth]'s job; public routes still see the
// principal when one was sent.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous ──────────────────────────────────────────────────
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Scheme ─────────────────────────────────────────────────────
			token, ok := bearerToken(header)
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Verify ─────────────────────────────────────────────────────
			ctx := request.Context()
			logger := ctxutil.GetLogger(ctx)
			principal, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(ctx, "token_rejected", slog.String("reason", err.Error()))
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Attach ─────────────────────────────────────────────────────
			ctx = ctxutil.WithPrincipal(ctx, principal)
			ctx = ctxutil.WithLogger(ctx, logger.With(slog.Int64("user_id", principal.SubjectID)))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from "Bearer <token>", scheme case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, constants.BearerScheme) || token == "" {
		return "", false
	}
	return token, true
}

// RequireAuth answers 401 unless [Authenticate] attached a principal.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetPrincipal(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
