// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/platform/middleware"
	requestutil "github.com/taibuivan/tasklist/internal/platform/request"
	"github.com/taibuivan/tasklist/internal/platform/respond"
)

// multipartOverhead is the slack allowed on top of the avatar size for form boundaries and headers.
const multipartOverhead = 64 << 10

// avatarField is the multipart field carrying the image.
const avatarField = "file"

// Handler implements the HTTP layer for the user directory.
type Handler struct {
	userService *Service
}

// NewHandler constructs a new user [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{userService: service}
}

// Routes returns a [chi.Router] configured with the user endpoints.
//
// # Endpoints
//   - POST   /        : Public, register.
//   - GET    /{id}    : Public, profile with tasks.
//   - PATCH  /{id}    : Self only, update name/password.
//   - DELETE /{id}    : Self only, delete account.
//   - POST   /avatar  : Authenticated, upload own avatar.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.register)
	router.Get("/{id}", handler.get)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Patch("/{id}", handler.update)
		protected.Delete("/{id}", handler.delete)
		protected.Post("/avatar", handler.uploadAvatar)
	})

	return router
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
POST /users.

Response:
  - 201: Summary
  - 400: Validation failure
  - 409: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Application Execution ──────────────────────────────────────────
	user, err := handler.userService.Register(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Presentation Output ────────────────────────────────────────────
	respond.Created(writer, user)
}

/*
GET /users/{id}.

Response:
  - 200: Profile
  - 404: User not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.userService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

type updateRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

/*
PATCH /users/{id}.

Response:
  - 200: Summary
  - 400: Validation failure or ACCESS_DENIED
  - 404: User not found
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

	user, err := handler.userService.Update(request.Context(), principal, id, UpdateInput{
		Name:     input.Name,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /users/{id}.

Response:
  - 200: The deleted Summary
  - 400: ACCESS_DENIED
  - 404: User not found
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

	user, err := handler.userService.Delete(request.Context(), principal, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
POST /users/avatar.

Request: multipart/form-data with the image in field "file".

Response:
  - 200: AvatarResult
  - 401: Authentication required
  - 422: Missing, oversized or non-image file
*/
func (handler *Handler) uploadAvatar(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 1. Bounded Multipart Parsing ──────────────────────────────────────
	limit := handler.userService.MaxAvatarBytes()
	request.Body = http.MaxBytesReader(writer, request.Body, limit+multipartOverhead)

	if err := request.ParseMultipartForm(limit); err != nil {
		respond.Error(writer, request, apperr.Unprocessable("Avatar must be a multipart upload within the size limit"))
		return
	}

	file, header, err := request.FormFile(avatarField)
	if err != nil {
		respond.Error(writer, request, apperr.Unprocessable(`Avatar file is required in field "file"`))
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		respond.Error(writer, request, apperr.Unprocessable("Avatar file could not be read"))
		return
	}

	// ── 2. Application Execution ──────────────────────────────────────────
	result, err := handler.userService.UploadAvatar(request.Context(), principal, AvatarUpload{
		Filename: header.Filename,
		Data:     data,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
