// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/platform/ctxutil"
	"github.com/taibuivan/tasklist/internal/platform/sec"
	"github.com/taibuivan/tasklist/internal/platform/validate"
	"github.com/taibuivan/tasklist/pkg/pointer"
)

// ownerPolicy distinguishes a missing profile (404) from a foreign one (ACCESS_DENIED).
var ownerPolicy = sec.OwnerPolicy{Resource: "User", Mode: sec.DenyAsAccessDenied}

var (
	nameRules     = []validate.Rule{validate.Required, validate.MaxRunes(MaxNameLength)}
	passwordRules = []validate.Rule{validate.Required, validate.MinRunes(MinPasswordLength), validate.MaxBytes(sec.MaxPasswordBytes)}
)

// allowedAvatarTypes maps accepted file extensions to the sniffed content type they must carry.
var allowedAvatarTypes = map[string]string{
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"png":  "image/png",
}

// Hasher produces password hashes for storage.
type Hasher interface {
	Hash(plaintext string) (string, error)
}

// # Service Layer

// Service orchestrates user directory use cases.
type Service struct {
	userRepository Repository
	hasher         Hasher
	avatars        AvatarStorage
	maxAvatarBytes int64
}

// NewService constructs a new user [Service].
func NewService(repository Repository, hasher Hasher, avatars AvatarStorage, maxAvatarBytes int64) *Service {
	return &Service{
		userRepository: repository,
		hasher:         hasher,
		avatars:        avatars,
		maxAvatarBytes: maxAvatarBytes,
	}
}

// MaxAvatarBytes is the largest accepted avatar upload.
func (service *Service) MaxAvatarBytes() int64 {
	return service.maxAvatarBytes
}

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a new account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Summary: The created account
  - error: Validation, Conflict (email taken) or storage failures
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Summary, error) {
	validator := &validate.Validator{}
	validator.
		Check("name", input.Name, nameRules...).
		Check("email", input.Email, validate.Required, validate.Email).
		Check("password", input.Password, passwordRules...)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("users_service_hash_failed: %w", err)
	}

	user := &User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("users_service_register_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_registered", slog.Int64("user_id", user.ID))

	return user.Summarize(), nil
}

// Get returns the public profile of any user.
func (service *Service) Get(context context.Context, id int64) (*Profile, error) {
	profile, err := service.userRepository.FindProfile(context, id)
	if err != nil {
		return nil, service.lookupError(err, "get")
	}
	return profile, nil
}

// UpdateInput is a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name     *string
	Password *string
}

/*
Update changes the caller's own name and/or password.

Parameters:
  - context: context.Context
  - principal: *sec.Principal
  - id: int64 (target user)
  - input: UpdateInput

Returns:
  - *Summary: The updated account
  - error: Unauthorized, NotFound, AccessDenied, validation or storage failures
*/
func (service *Service) Update(context context.Context, principal *sec.Principal, id int64, input UpdateInput) (*Summary, error) {
	user, err := service.loadOwned(context, principal, id, "update")
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.
		CheckOptional("name", input.Name, nameRules...).
		CheckOptional("password", input.Password, passwordRules...)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	pointer.Assign(&user.Name, input.Name)
	if input.Password != nil {
		hashedPassword, err := service.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("users_service_hash_failed: %w", err)
		}
		user.PasswordHash = hashedPassword
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("users_service_update_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_updated", slog.Int64("user_id", user.ID))

	return user.Summarize(), nil
}

// Delete removes the caller's own account and returns its last summary.
func (service *Service) Delete(context context.Context, principal *sec.Principal, id int64) (*Summary, error) {
	user, err := service.loadOwned(context, principal, id, "delete")
	if err != nil {
		return nil, err
	}

	if err := service.userRepository.Delete(context, user.ID); err != nil {
		return nil, fmt.Errorf("users_service_delete_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_deleted", slog.Int64("user_id", user.ID))

	return user.Summarize(), nil
}

// AvatarUpload is an image received from the client.
type AvatarUpload struct {
	Filename string
	Data     []byte
}

/*
UploadAvatar stores a new avatar for the caller.

Description: The extension must be jpeg, jpg or png and the sniffed content
must match it. The file is saved as "<user id>.<ext>".

Parameters:
  - context: context.Context
  - principal: *sec.Principal
  - upload: AvatarUpload

Returns:
  - *AvatarResult: Account summary with the new avatar location
  - error: Unauthorized, Unprocessable (bad file), NotFound or storage failures
*/
func (service *Service) UploadAvatar(context context.Context, principal *sec.Principal, upload AvatarUpload) (*AvatarResult, error) {
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	// ── 1. File Checks ────────────────────────────────────────────────────
	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(upload.Filename), "."))
	expectedType, ok := allowedAvatarTypes[extension]
	if !ok {
		return nil, apperr.Unprocessable("Avatar must be a jpeg, jpg or png image")
	}
	if len(upload.Data) == 0 {
		return nil, apperr.Unprocessable("Avatar file is empty")
	}
	if int64(len(upload.Data)) > service.maxAvatarBytes {
		return nil, apperr.Unprocessable(fmt.Sprintf("Avatar must not exceed %d bytes", service.maxAvatarBytes))
	}
	if http.DetectContentType(upload.Data) != expectedType {
		return nil, apperr.Unprocessable("Avatar content does not match its extension")
	}

	// ── 2. Owner Lookup ───────────────────────────────────────────────────
	user, err := service.loadOwned(context, principal, principal.SubjectID, "avatar")
	if err != nil {
		return nil, err
	}

	// ── 3. Persist ────────────────────────────────────────────────────────
	name := fmt.Sprintf("%d.%s", user.ID, extension)
	location, err := service.avatars.Save(context, name, expectedType, upload.Data)
	if err != nil {
		return nil, fmt.Errorf("users_service_avatar_save_failed: %w", err)
	}

	if err := service.userRepository.UpdateAvatar(context, user.ID, location); err != nil {
		return nil, fmt.Errorf("users_service_avatar_update_failed: %w", err)
	}
	user.Avatar = pointer.To(location)

	ctxutil.GetLogger(context).InfoContext(context, "avatar_uploaded",
		slog.Int64("user_id", user.ID),
		slog.String("avatar", location),
	)

	return &AvatarResult{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Avatar: pointer.Val(user.Avatar),
	}, nil
}

// loadOwned fetches a user and enforces self-ownership.
func (service *Service) loadOwned(context context.Context, principal *sec.Principal, id int64, action string) (*User, error) {
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	user, err := service.userRepository.FindByID(context, id)
	if err != nil {
		return nil, service.lookupError(err, action)
	}

	if err := ownerPolicy.Check(principal, user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

func (service *Service) lookupError(err error, action string) error {
	if apperr.HasCode(err, apperr.CodeNotFound) {
		return ownerPolicy.Missing()
	}
	return fmt.Errorf("users_service_%s_lookup_failed: %w", action, err)
}
