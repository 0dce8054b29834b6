// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tasks

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tasklist/internal/platform/middleware"
	requestutil "github.com/taibuivan/tasklist/internal/platform/request"
	"github.com/taibuivan/tasklist/internal/platform/respond"
	"github.com/taibuivan/tasklist/pkg/pagination"
)

// Handler implements the HTTP layer for tasks.
type Handler struct {
	taskService *Service
}

// NewHandler constructs a new task [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{taskService: service}
}

// Routes returns a [chi.Router] configured with the task endpoints.
//
// # Endpoints
//   - GET    /      : Public, newest-first list (limit/offset).
//   - GET    /{id}  : Public, single task.
//   - POST   /      : Authenticated, create.
//   - PATCH  /{id}  : Owner only, partial update.
//   - DELETE /{id}  : Owner only, delete.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/", handler.create)
		protected.Patch("/{id}", handler.update)
		protected.Delete("/{id}", handler.delete)
	})

	return router
}

/*
GET /tasks.

Response:
  - 200: []Task with pagination meta
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	tasks, err := handler.taskService.List(request.Context(), params.Limit, params.Offset)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tasks, pagination.NewMeta(params, len(tasks)))
}

/*
GET /tasks/{id}.

Response:
  - 200: Task
  - 404: Task not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.taskService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, task)
}

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

/*
POST /tasks.

Response:
  - 201: Task
  - 400: Validation failure
  - 401: Authentication required
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.taskService.Create(request.Context(), principal, CreateInput{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, task)
}

type updateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

/*
PATCH /tasks/{id}.

Response:
  - 200: Task
  - 404: Missing or not owned by the caller
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.taskService.Update(request.Context(), principal, id, UpdateInput{
		Name:        input.Name,
		Description: input.Description,
		Completed:   input.Completed,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, task)
}

/*
DELETE /tasks/{id}.

Response:
  - 200: The deleted Task
  - 404: Missing or not owned by the caller
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.taskService.Delete(request.Context(), principal, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, task)
}
