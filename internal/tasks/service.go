// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/platform/ctxutil"
	"github.com/taibuivan/tasklist/internal/platform/sec"
	"github.com/taibuivan/tasklist/internal/platform/validate"
	"github.com/taibuivan/tasklist/pkg/pointer"
)

// ownerPolicy hides tasks owned by someone else behind a plain 404.
var ownerPolicy = sec.OwnerPolicy{Resource: "Task", Mode: sec.DenyAsNotFound}

var (
	nameRules        = []validate.Rule{validate.Required, validate.MaxRunes(MaxNameLength)}
	descriptionRules = []validate.Rule{validate.Required, validate.MaxRunes(MaxDescriptionLength)}
)

// # Service Layer

// Service orchestrates task use cases.
//
// Reads are public. Every mutation loads the task first and runs the
// ownership check before touching storage.
type Service struct {
	taskRepository Repository
}

// NewService constructs a new task [Service].
func NewService(repository Repository) *Service {
	return &Service{taskRepository: repository}
}

/*
List returns a newest-first window of tasks.

Parameters:
  - context: context.Context
  - limit: int (page size)
  - offset: int (rows to skip)

Returns:
  - []*Task: The requested window, possibly empty
  - error: Storage failures
*/
func (service *Service) List(context context.Context, limit, offset int) ([]*Task, error) {
	tasks, err := service.taskRepository.List(context, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("tasks_service_list_failed: %w", err)
	}
	return tasks, nil
}

// Get returns a single task; anyone may read any task.
func (service *Service) Get(context context.Context, id int64) (*Task, error) {
	task, err := service.taskRepository.FindByID(context, id)
	if err != nil {
		return nil, service.lookupError(err, "get")
	}
	return task, nil
}

// CreateInput holds the fields a caller supplies for a new task.
type CreateInput struct {
	Name        string
	Description string
}

/*
Create stores a new task owned by the caller.

Parameters:
  - context: context.Context
  - principal: *sec.Principal (the authenticated caller)
  - input: CreateInput

Returns:
  - *Task: The stored task with ID and CreatedAt populated
  - error: Unauthorized, validation, or storage failures
*/
func (service *Service) Create(context context.Context, principal *sec.Principal, input CreateInput) (*Task, error) {
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	validator := &validate.Validator{}
	validator.
		Check("name", input.Name, nameRules...).
		Check("description", input.Description, descriptionRules...)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	task := &Task{
		Name:        input.Name,
		Description: input.Description,
		Completed:   false,
		UserID:      principal.SubjectID,
	}

	if err := service.taskRepository.Create(context, task); err != nil {
		return nil, fmt.Errorf("tasks_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "task_created",
		slog.Int64("task_id", task.ID),
		slog.Int64("user_id", task.UserID),
	)

	return task, nil
}

// UpdateInput is a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name        *string
	Description *string
	Completed   *bool
}

/*
Update applies a partial change to a task the caller owns.

Description: Missing tasks and tasks owned by someone else both surface as NotFound.

Parameters:
  - context: context.Context
  - principal: *sec.Principal
  - id: int64
  - input: UpdateInput

Returns:
  - *Task: The updated task
  - error: NotFound, validation, or storage failures
*/
func (service *Service) Update(context context.Context, principal *sec.Principal, id int64, input UpdateInput) (*Task, error) {
	task, err := service.loadOwned(context, principal, id, "update")
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.
		CheckOptional("name", input.Name, nameRules...).
		CheckOptional("description", input.Description, descriptionRules...)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Apply delta updates
	pointer.Assign(&task.Name, input.Name)
	pointer.Assign(&task.Description, input.Description)
	pointer.Assign(&task.Completed, input.Completed)

	if err := service.taskRepository.Update(context, task); err != nil {
		return nil, fmt.Errorf("tasks_service_update_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "task_updated", slog.Int64("task_id", task.ID))

	return task, nil
}

// Delete removes a task the caller owns and returns its last state.
func (service *Service) Delete(context context.Context, principal *sec.Principal, id int64) (*Task, error) {
	task, err := service.loadOwned(context, principal, id, "delete")
	if err != nil {
		return nil, err
	}

	if err := service.taskRepository.Delete(context, task.ID); err != nil {
		return nil, fmt.Errorf("tasks_service_delete_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "task_deleted", slog.Int64("task_id", task.ID))

	return task, nil
}

// loadOwned fetches a task and enforces ownership in one step.
func (service *Service) loadOwned(context context.Context, principal *sec.Principal, id int64, action string) (*Task, error) {
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	task, err := service.taskRepository.FindByID(context, id)
	if err != nil {
		return nil, service.lookupError(err, action)
	}

	if err := ownerPolicy.Check(principal, task.UserID); err != nil {
		return nil, err
	}

	return task, nil
}

// lookupError keeps NotFound client-facing and wraps everything else.
func (service *Service) lookupError(err error, action string) error {
	if apperr.HasCode(err, apperr.CodeNotFound) {
		return ownerPolicy.Missing()
	}
	return fmt.Errorf("tasks_service_%s_lookup_failed: %w", action, err)
}
