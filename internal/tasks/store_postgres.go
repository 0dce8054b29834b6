// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tasks

import (
	"context"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/platform/dberr"
	"github.com/taibuivan/tasklist/internal/platform/postgres"
)

const taskColumns = `id, name, description, completed, created_at, user_id`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository creates a new PostgreSQL implementation of the task Repository.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns a window of tasks ordered by creation time, newest first.
func (repository *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*Task, error) {
	const query = `
		SELECT ` + taskColumns + `
		FROM tasks
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "Task", "postgres_task_repo_list_failed")
	}
	defer rows.Close()

	tasks := make([]*Task, 0, limit)
	for rows.Next() {
		task := &Task{}
		if err := rows.Scan(
			&task.ID,
			&task.Name,
			&task.Description,
			&task.Completed,
			&task.CreatedAt,
			&task.UserID,
		); err != nil {
			return nil, dberr.Wrap(err, "Task", "postgres_task_repo_list_scan_failed")
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Task", "postgres_task_repo_list_rows_failed")
	}

	return tasks, nil
}

// FindByID retrieves a task by its ID.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Task, error) {
	const query = `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1`

	task := &Task{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.Name,
		&task.Description,
		&task.Completed,
		&task.CreatedAt,
		&task.UserID,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Task", "postgres_task_repo_find_by_id_failed")
	}

	return task, nil
}

// Create inserts a task and reads back the generated ID and timestamp.
func (repository *PostgresRepository) Create(ctx context.Context, task *Task) error {
	const query = `
		INSERT INTO tasks (name, description, completed, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := repository.db.QueryRow(ctx, query,
		task.Name,
		task.Description,
		task.Completed,
		task.UserID,
	).Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "User", "postgres_task_repo_create_failed")
	}

	return nil
}

// Update writes the mutable fields of a task.
func (repository *PostgresRepository) Update(ctx context.Context, task *Task) error {
	const query = `
		UPDATE tasks
		SET name = $2, description = $3, completed = $4
		WHERE id = $1`

	tag, err := repository.db.Exec(ctx, query,
		task.ID,
		task.Name,
		task.Description,
		task.Completed,
	)
	if err != nil {
		return dberr.Wrap(err, "Task", "postgres_task_repo_update_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Task")
	}

	return nil
}

// Delete removes a task by ID.
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := repository.db.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return dberr.Wrap(err, "Task", "postgres_task_repo_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Task")
	}

	return nil
}
