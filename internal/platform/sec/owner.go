// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
)

// # Ownership

var (
	// ErrNoPrincipal is returned when an owner-action runs without an authenticated caller.
	ErrNoPrincipal = errors.New("sec: no authenticated principal")

	// ErrNotOwner is returned when the caller is not the owner of the resource.
	ErrNotOwner = errors.New("sec: principal does not own resource")
)

// AuthorizeOwnerAction allows the action iff the principal's subject is the owner.
//
// There is no role or admin override.
func AuthorizeOwnerAction(principal *Principal, ownerID int64) error {
	if principal == nil {
		return ErrNoPrincipal
	}
	if principal.SubjectID != ownerID {
		return ErrNotOwner
	}
	return nil
}

// # Denial Shapes

// DenialMode selects how an ownership failure is reported to the client.
type DenialMode int

const (
	// DenyAsNotFound hides the resource: foreign and missing look identical.
	DenyAsNotFound DenialMode = iota

	// DenyAsAccessDenied reports the resource exists but belongs to someone else.
	DenyAsAccessDenied
)

// OwnerPolicy binds [AuthorizeOwnerAction] to the client error shape of one resource type.
type OwnerPolicy struct {
	// Resource names the entity in NotFound messages (e.g. "Task").
	Resource string
	Mode     DenialMode
}

// Check runs the ownership rule and converts failures into [apperr.AppError] values.
func (policy OwnerPolicy) Check(principal *Principal, ownerID int64) error {
	err := AuthorizeOwnerAction(principal, ownerID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNoPrincipal):
		return apperr.Unauthorized("Authentication required")
	case policy.Mode == DenyAsAccessDenied:
		return apperr.AccessDenied("Access denied")
	default:
		return apperr.NotFound(policy.Resource)
	}
}

// Missing returns the error reported when the resource does not exist at all.
func (policy OwnerPolicy) Missing() error {
	return apperr.NotFound(policy.Resource)
}
