// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tasks_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasklist/internal/platform/middleware"
	"github.com/taibuivan/tasklist/internal/platform/sec"
	"github.com/taibuivan/tasklist/internal/tasks"
)

type taskEnvelope struct {
	Data tasks.Task `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// newTaskRouter mounts the handler behind the real bearer middleware.
func newTaskRouter(t *testing.T) (http.Handler, *sec.TokenService) {
	t.Helper()

	tokens, err := sec.NewTokenService(sec.TokenConfig{Secret: "tasks-http-secret", TTL: time.Hour, Audience: "tasklist-clients", Issuer: "tasklist-api"})
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.Mount("/tasks", tasks.NewHandler(tasks.NewService(newMemoryRepository())).Routes())

	return router, tokens
}

func bearer(t *testing.T, tokens *sec.TokenService, subjectID int64) string {
	t.Helper()
	token, _, err := tokens.Issue(subjectID, "user@example.com")
	require.NoError(t, err)
	return "Bearer " + token
}

func do(router http.Handler, method, path, auth, body string) *httptest.ResponseRecorder {
	var request *http.Request
	if body != "" {
		request = httptest.NewRequest(method, path, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	} else {
		request = httptest.NewRequest(method, path, nil)
	}
	if auth != "" {
		request.Header.Set("Authorization", auth)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_Lifecycle walks create, public read, owner update, and delete.
*/
func TestHandler_Lifecycle(t *testing.T) {
	router, tokens := newTaskRouter(t)
	ownerAuth := bearer(t, tokens, 1)

	// Create
	recorder := do(router, http.MethodPost, "/tasks", ownerAuth, `{"name":"Ship","description":"v1"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created taskEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.Data.UserID)

	// Anonymous read
	recorder = do(router, http.MethodGet, "/tasks/1", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	// Partial update
	recorder = do(router, http.MethodPatch, "/tasks/1", ownerAuth, `{"completed":true}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var updated taskEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
	assert.True(t, updated.Data.Completed)
	assert.Equal(t, "Ship", updated.Data.Name)

	// Delete
	recorder = do(router, http.MethodDelete, "/tasks/1", ownerAuth, "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = do(router, http.MethodGet, "/tasks/1", "", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestHandler_Guards covers the authentication and ownership failures.
*/
func TestHandler_Guards(t *testing.T) {
	router, tokens := newTaskRouter(t)
	ownerAuth := bearer(t, tokens, 1)
	strangerAuth := bearer(t, tokens, 2)

	require.Equal(t, http.StatusCreated,
		do(router, http.MethodPost, "/tasks", ownerAuth, `{"name":"Ship","description":"v1"}`).Code)

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		body   string
		status int
		code   string
	}{
		{"create_anonymous", http.MethodPost, "/tasks", "", `{"name":"a","description":"b"}`, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"create_bad_token", http.MethodPost, "/tasks", "Bearer nope", `{"name":"a","description":"b"}`, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"create_invalid", http.MethodPost, "/tasks", ownerAuth, `{"name":"","description":""}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"update_foreign", http.MethodPatch, "/tasks/1", strangerAuth, `{"name":"x"}`, http.StatusNotFound, "NOT_FOUND"},
		{"delete_foreign", http.MethodDelete, "/tasks/1", strangerAuth, "", http.StatusNotFound, "NOT_FOUND"},
		{"delete_missing", http.MethodDelete, "/tasks/42", strangerAuth, "", http.StatusNotFound, "NOT_FOUND"},
		{"bad_id", http.MethodGet, "/tasks/abc", "", "", http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := do(router, tt.method, tt.path, tt.auth, tt.body)
			assert.Equal(t, tt.status, recorder.Code)

			var body errorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

/*
TestHandler_List reports the window in the meta block.
*/
func TestHandler_List(t *testing.T) {
	router, tokens := newTaskRouter(t)
	ownerAuth := bearer(t, tokens, 1)

	for range 3 {
		require.Equal(t, http.StatusCreated,
			do(router, http.MethodPost, "/tasks", ownerAuth, `{"name":"n","description":"d"}`).Code)
	}

	recorder := do(router, http.MethodGet, "/tasks?limit=2&offset=1", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []tasks.Task `json:"data"`
		Meta struct {
			Limit  int `json:"limit"`
			Offset int `json:"offset"`
			Count  int `json:"count"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Len(t, body.Data, 2)
	assert.Equal(t, 2, body.Meta.Limit)
	assert.Equal(t, 1, body.Meta.Offset)
	assert.Equal(t, 2, body.Meta.Count)
}
