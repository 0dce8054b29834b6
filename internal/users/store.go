// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users

import "context"

// Repository defines the data access contract for user accounts.
type Repository interface {
	// FindByID returns the user with the given ID or [apperr.NotFound].
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindProfile returns the user with their tasks, oldest task first.
	FindProfile(ctx context.Context, id int64) (*Profile, error)

	// Create persists a new user and fills in ID, Active and CreatedAt.
	//
	// Returns [apperr.Conflict] when the email is already registered.
	Create(ctx context.Context, user *User) error

	// Update persists name and password hash.
	Update(ctx context.Context, user *User) error

	// UpdateAvatar stores the avatar location for a user.
	UpdateAvatar(ctx context.Context, id int64, avatar string) error

	// Delete removes the user; their tasks go with them.
	Delete(ctx context.Context, id int64) error
}
