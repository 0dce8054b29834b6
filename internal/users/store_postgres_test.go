// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/users"
)

/*
TestPostgresRepository_Create maps a unique violation to a Conflict.
*/
func TestPostgresRepository_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantCode  string
	}{
		{
			name: "inserted",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("Ana", "ana@example.com", "hash").
					WillReturnRows(pgxmock.NewRows([]string{"id", "active", "created_at"}).
						AddRow(int64(7), true, time.Now()))
			},
		},
		{
			name: "duplicate_email",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("Ana", "ana@example.com", "hash").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"})
			},
			wantCode: "CONFLICT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			user := &users.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "hash"}
			err = users.NewPostgresRepository(mock).Create(context.Background(), user)

			if tt.wantCode != "" {
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, tt.wantCode, ae.Code)
				assert.Equal(t, "Email is already registered", ae.Message)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(7), user.ID)
				assert.True(t, user.Active)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

/*
TestPostgresRepository_FindProfile joins the user's tasks.
*/
func TestPostgresRepository_FindProfile(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	avatar := "/files/3.png"
	mock.ExpectQuery(`SELECT id, name, email, avatar FROM users`).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "avatar"}).
			AddRow(int64(3), "Ana", "ana@example.com", &avatar))
	mock.ExpectQuery(`FROM tasks`).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "completed"}).
			AddRow(int64(1), "a", "first", false).
			AddRow(int64(2), "b", "second", true))

	profile, err := users.NewPostgresRepository(mock).FindProfile(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, "Ana", profile.Name)
	assert.Equal(t, avatar, *profile.Avatar)
	require.Len(t, profile.Tasks, 2)
	assert.True(t, profile.Tasks[1].Completed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresRepository_FindProfile_Missing stops after the user lookup.
*/
func TestPostgresRepository_FindProfile_Missing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, email, avatar FROM users`).
		WithArgs(int64(3)).
		WillReturnError(pgx.ErrNoRows)

	_, err = users.NewPostgresRepository(mock).FindProfile(context.Background(), 3)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresRepository_Mutations checks the affected-row handling.
*/
func TestPostgresRepository_Mutations(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE users SET name`).
		WithArgs(int64(3), "Ana", "hash").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE users SET avatar`).
		WithArgs(int64(3), "/files/3.png").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(`DELETE FROM users`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	repo := users.NewPostgresRepository(mock)

	require.NoError(t, repo.Update(context.Background(), &users.User{ID: 3, Name: "Ana", PasswordHash: "hash"}))
	assert.True(t, apperr.HasCode(repo.UpdateAvatar(context.Background(), 3, "/files/3.png"), "NOT_FOUND"))
	require.NoError(t, repo.Delete(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}
