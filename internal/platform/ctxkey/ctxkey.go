// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines typed context slots shared by middleware and handlers.
//
// A [Key] carries the value type in its type parameter, so a slot can only be
// filled and read with that type. Two keys never collide unless they share
// both the name and the value type.
package ctxkey

import (
	"context"
	"log/slog"
)

// Key is a typed context slot.
type Key[T any] struct {
	name string
}

// New declares a slot. The name only shows up in debug output.
func New[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// With returns a copy of ctx holding value in this slot.
func (k Key[T]) With(ctx context.Context, value T) context.Context {
	return context.WithValue(ctx, k, value)
}

// From reads the slot. ok is false when the slot was never filled.
func (k Key[T]) From(ctx context.Context) (value T, ok bool) {
	value, ok = ctx.Value(k).(T)
	return value, ok
}

func (k Key[T]) String() string { return "ctxkey." + k.name }

// Request-scoped slots filled by the HTTP middleware chain.
var (
	// RequestID holds the X-Request-ID correlation value.
	RequestID = New[string]("request_id")

	// Logger holds the per-request child logger.
	Logger = New[*slog.Logger]("logger")
)
