// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasklist/data"
)

/*
TestPgx5URL rewrites libpq URL schemes and leaves others untouched.
*/
func TestPgx5URL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/tasklist", "pgx5://u:p@db:5432/tasklist"},
		{"postgresql://u:p@db/tasklist?sslmode=disable", "pgx5://u:p@db/tasklist?sslmode=disable"},
		{"pgx5://db/tasklist", "pgx5://db/tasklist"},
		{"host=db dbname=tasklist", "host=db dbname=tasklist"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, pgx5URL(tt.in))
		})
	}
}

/*
TestEmbeddedSource walks the schema shipped in the binary: users first, then tasks.
*/
func TestEmbeddedSource(t *testing.T) {
	src := Embedded(data.Migrations, data.MigrationsDir)
	assert.Equal(t, "embedded:migrations", src.String())

	driver, err := src.driver()
	require.NoError(t, err)
	defer driver.Close()

	first, err := driver.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := driver.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)

	body, identifier, err := driver.ReadUp(next)
	require.NoError(t, err)
	defer body.Close()
	assert.Equal(t, "create_tasks", identifier)
}

func TestDirSource(t *testing.T) {
	assert.Equal(t, "file://./data/migrations", Dir("./data/migrations").String())
}
