// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users

import (
	"context"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/platform/dberr"
	"github.com/taibuivan/tasklist/internal/platform/postgres"
)

const userColumns = `id, name, email, password_hash, avatar, active, created_at`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository creates a new PostgreSQL implementation of the user Repository.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
FindByID retrieves a user by primary key.

Parameters:
  - ctx: context.Context
  - id: int64

Returns:
  - *User: Hydrated entity
  - error: apperr.NotFound or database failure
*/
func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user := &User{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Avatar,
		&user.Active,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User", "postgres_user_repo_find_by_id_failed")
	}

	return user, nil
}

// FindProfile loads the public profile and the user's tasks in two queries.
func (repository *PostgresRepository) FindProfile(ctx context.Context, id int64) (*Profile, error) {
	const userQuery = `SELECT id, name, email, avatar FROM users WHERE id = $1`

	profile := &Profile{}
	err := repository.db.QueryRow(ctx, userQuery, id).Scan(
		&profile.ID,
		&profile.Name,
		&profile.Email,
		&profile.Avatar,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User", "postgres_user_repo_find_profile_failed")
	}

	const taskQuery = `
		SELECT id, name, description, completed
		FROM tasks
		WHERE user_id = $1
		ORDER BY id`

	rows, err := repository.db.Query(ctx, taskQuery, id)
	if err != nil {
		return nil, dberr.Wrap(err, "User", "postgres_user_repo_profile_tasks_failed")
	}
	defer rows.Close()

	profile.Tasks = []TaskSummary{}
	for rows.Next() {
		var task TaskSummary
		if err := rows.Scan(&task.ID, &task.Name, &task.Description, &task.Completed); err != nil {
			return nil, dberr.Wrap(err, "User", "postgres_user_repo_profile_scan_failed")
		}
		profile.Tasks = append(profile.Tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "User", "postgres_user_repo_profile_rows_failed")
	}

	return profile, nil
}

// Create inserts a user; a duplicate email becomes a Conflict.
func (repository *PostgresRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, active, created_at`

	err := repository.db.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
	).Scan(&user.ID, &user.Active, &user.CreatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Email is already registered").WithCause(err)
		}
		return dberr.Wrap(err, "User", "postgres_user_repo_create_failed")
	}

	return nil
}

// Update writes name and password hash.
func (repository *PostgresRepository) Update(ctx context.Context, user *User) error {
	const query = `UPDATE users SET name = $2, password_hash = $3 WHERE id = $1`

	tag, err := repository.db.Exec(ctx, query, user.ID, user.Name, user.PasswordHash)
	if err != nil {
		return dberr.Wrap(err, "User", "postgres_user_repo_update_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// UpdateAvatar sets the avatar location.
func (repository *PostgresRepository) UpdateAvatar(ctx context.Context, id int64, avatar string) error {
	tag, err := repository.db.Exec(ctx, `UPDATE users SET avatar = $2 WHERE id = $1`, id, avatar)
	if err != nil {
		return dberr.Wrap(err, "User", "postgres_user_repo_update_avatar_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// Delete removes a user; tasks are removed by ON DELETE CASCADE.
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := repository.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "User", "postgres_user_repo_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}
