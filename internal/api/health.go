// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/tasklist/internal/platform/constants"
	"github.com/taibuivan/tasklist/internal/platform/respond"
)

// HealthDependencies are the probes behind GET /ready. A nil probe is skipped.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func(ctx context.Context) error

	// CheckCache pings Redis. Nil when REDIS_URL is unset.
	CheckCache func(ctx context.Context) error
}

type probe struct {
	name  string
	check func(ctx context.Context) error
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type healthHandler struct {
	probes []probe
	logger *slog.Logger
}

// NewHealthHandlers returns the liveness (/health) and readiness (/ready) handlers.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{logger: logger}
	for _, candidate := range []probe{
		{"postgres", deps.CheckDatabase},
		{"redis", deps.CheckCache},
	} {
		if candidate.check != nil {
			handler.probes = append(handler.probes, candidate)
		}
	}
	return handler.liveness, handler.readiness
}

func (handler *healthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
}

// readiness runs every probe concurrently, each bounded by ReadinessProbeTimeout,
// and answers 503 "degraded" when any fails.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	results := make([]checkResult, len(handler.probes))

	var group errgroup.Group
	for i, current := range handler.probes {
		group.Go(func() error {
			probeCtx, cancel := context.WithTimeout(ctx, constants.ReadinessProbeTimeout)
			defer cancel()

			results[i] = checkResult{Name: current.name, IsOK: true}
			if err := current.check(probeCtx); err != nil {
				results[i].IsOK = false
				results[i].Error = err.Error()
				handler.logger.ErrorContext(ctx, "readiness_check_failed",
					slog.String("dependency", current.name),
					slog.Any("error", err),
				)
			}
			return nil
		})
	}
	_ = group.Wait()

	status, code := "ready", http.StatusOK
	for _, result := range results {
		if !result.IsOK {
			status, code = "degraded", http.StatusServiceUnavailable
			break
		}
	}

	respond.JSON(writer, code, respond.SuccessEnvelope{Data: map[string]any{
		constants.FieldStatus: status,
		constants.FieldChecks: results,
	}})
}
