// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasklist/internal/platform/ctxutil"
	"github.com/taibuivan/tasklist/internal/platform/sec"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "0192f1c4-req")
	assert.Equal(t, "0192f1c4-req", ctxutil.GetRequestID(ctx))
}

/*
TestGetLogger falls back to the default logger, including for a stored nil.
*/
func TestGetLogger(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctx))

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	assert.Same(t, logger, ctxutil.GetLogger(ctxutil.WithLogger(ctx, logger)))

	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctxutil.WithLogger(ctx, nil)))
}

/*
TestPrincipal separates anonymous requests from authenticated ones.
*/
func TestPrincipal(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetPrincipal(ctx))

	ctx = ctxutil.WithPrincipal(ctx, &sec.Principal{SubjectID: 7, Email: "ana@example.com"})

	principal := ctxutil.GetPrincipal(ctx)
	require.NotNil(t, principal)
	assert.Equal(t, int64(7), principal.SubjectID)
	assert.Equal(t, "ana@example.com", principal.Email)
}
