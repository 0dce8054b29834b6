// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination reads limit/offset windows from list requests and
// describes the returned window in the response "meta" block.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is a requested window: skip Offset rows, return at most Limit.
type Params struct {
	Limit  int
	Offset int
}

// Meta describes the window actually returned. NextOffset is set only when
// the window came back full, i.e. more rows may follow.
type Meta struct {
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	Count      int  `json:"count"`
	NextOffset *int `json:"next_offset,omitempty"`
}

// NewMeta describes a window of count rows returned for params.
func NewMeta(params Params, count int) Meta {
	meta := Meta{Limit: params.Limit, Offset: params.Offset, Count: count}
	if count > 0 && count >= params.Limit {
		next := params.Offset + count
		meta.NextOffset = &next
	}
	return meta
}

// FromRequest reads ?limit= and ?offset=. Missing, malformed or negative
// values fall back to the defaults; limits above [MaxLimit] are capped.
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()

	limit := queryInt(query.Get("limit"), DefaultLimit)
	if limit < 1 {
		limit = DefaultLimit
	}

	return Params{
		Limit:  min(limit, MaxLimit),
		Offset: max(queryInt(query.Get("offset"), 0), 0),
	}
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
