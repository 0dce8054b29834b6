// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/tasklist/internal/platform/dberr"
	"github.com/taibuivan/tasklist/internal/platform/postgres"
)

// PostgresCredentialRepository implements [CredentialRepository] on the users table.
type PostgresCredentialRepository struct {
	db postgres.DB
}

// NewPostgresCredentialRepository creates a new Postgres-backed [CredentialRepository].
func NewPostgresCredentialRepository(db postgres.DB) *PostgresCredentialRepository {
	return &PostgresCredentialRepository{db: db}
}

/*
FindActiveByEmail fetches login credentials.

Description: The email match is exact; inactive accounts are treated as absent.

Parameters:
  - ctx: context.Context
  - email: string

Returns:
  - *Account: Credential record
  - error: apperr.NotFound or database failure
*/
func (repository *PostgresCredentialRepository) FindActiveByEmail(ctx context.Context, email string) (*Account, error) {
	const query = `
		SELECT id, name, email, password_hash, avatar
		FROM users
		WHERE email = $1 AND active`

	account := &Account{}
	err := repository.db.QueryRow(ctx, query, email).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.Avatar,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Account", "postgres_credential_repo_find_failed")
	}

	return account, nil
}
