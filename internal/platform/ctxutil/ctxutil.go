// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil reads and writes the request-scoped values the API relies on:
// correlation ID, child logger and the authenticated principal.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tasklist/internal/platform/ctxkey"
	"github.com/taibuivan/tasklist/internal/platform/sec"
)

// principalKey is declared here rather than in ctxkey so ctxkey stays free of domain imports.
var principalKey = ctxkey.New[*sec.Principal]("principal")

// WithRequestID attaches the correlation ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return ctxkey.RequestID.With(ctx, id)
}

// GetRequestID returns the correlation ID, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctxkey.RequestID.From(ctx)
	return id
}

// WithLogger attaches a request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return ctxkey.Logger.With(ctx, logger)
}

// GetLogger returns the request logger, falling back to [slog.Default] so
// services can log from background jobs and tests without setup.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctxkey.Logger.From(ctx); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithPrincipal attaches the identity verified from the bearer token.
func WithPrincipal(ctx context.Context, principal *sec.Principal) context.Context {
	return principalKey.With(ctx, principal)
}

// GetPrincipal returns the caller's identity, or nil for anonymous requests.
func GetPrincipal(ctx context.Context) *sec.Principal {
	principal, _ := principalKey.From(ctx)
	return principal
}
