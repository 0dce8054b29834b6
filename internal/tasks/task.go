// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tasks implements the personal task board: public listing and
// owner-only mutation of tasks.
package tasks

import "time"

// Task is a single to-do item owned by exactly one user.
//
// # Rules
//   - UserID is set from the authenticated caller at creation and never changes.
//   - Completed starts false.
type Task struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      int64     `json:"user_id"`
}

// Field limits enforced on create and update.
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 2000
)
