// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil reads what handlers need from an incoming request: JSON
bodies, numeric path IDs and the authenticated caller. Every failure is
already an [apperr.AppError], so handlers pass it straight to respond.Error.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/platform/ctxutil"
	"github.com/taibuivan/tasklist/internal/platform/sec"
	"github.com/taibuivan/tasklist/internal/platform/validate"
)

// MaxJSONBodyBytes caps JSON payloads; the largest legitimate one is a task.
const MaxJSONBodyBytes = 1 << 20

/*
DecodeJSON decodes exactly one JSON value from the body into target.

Description: Empty bodies, syntax errors, type mismatches, bodies over
[MaxJSONBodyBytes] and trailing data all map to validate.ErrInvalidJSON.
Unknown fields are ignored.

Parameters:
  - request: *http.Request
  - target: any (pointer to the destination struct)
*/
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(io.LimitReader(request.Body, MaxJSONBodyBytes))

	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return validate.ErrInvalidJSON
	}
	return nil
}

// IntID parses the named path parameter as a positive int64.
func IntID(request *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, validate.Invalid(name, "Must be a positive integer")
	}
	return id, nil
}

// Principal returns the caller, or nil for anonymous requests.
func Principal(request *http.Request) *sec.Principal {
	return ctxutil.GetPrincipal(request.Context())
}

// RequiredPrincipal returns the caller or UNAUTHORIZED.
func RequiredPrincipal(request *http.Request) (*sec.Principal, error) {
	if principal := Principal(request); principal != nil {
		return principal, nil
	}
	return nil, apperr.Unauthorized("Authentication required")
}
