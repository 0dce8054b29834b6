// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tasks

import "context"

// Repository defines the data access contract for tasks.
type Repository interface {
	// List returns tasks newest first.
	List(ctx context.Context, limit, offset int) ([]*Task, error)

	// FindByID returns the task with the given ID.
	//
	// Returns [apperr.NotFound] if the task does not exist.
	FindByID(ctx context.Context, id int64) (*Task, error)

	// Create persists a new task and fills in its ID and CreatedAt.
	Create(ctx context.Context, task *Task) error

	// Update persists name, description and completed.
	Update(ctx context.Context, task *Task) error

	// Delete removes the task permanently.
	Delete(ctx context.Context, id int64) error
}
