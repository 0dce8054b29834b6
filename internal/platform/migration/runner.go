// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the users/tasks schema with golang-migrate before
// the API starts serving.
//
// Migrations come either from the copy embedded in the binary or, when
// MIGRATION_PATH is set, from a directory on disk.
package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers the "pgx5" scheme.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source"
	// file driver serves Dir sources.
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Source says where migration files are read from.
type Source struct {
	dir  string
	fsys fs.FS
}

// Dir reads migrations from a directory on disk.
func Dir(path string) Source {
	return Source{dir: path}
}

// Embedded reads migrations from dir inside fsys.
func Embedded(fsys fs.FS, dir string) Source {
	return Source{dir: dir, fsys: fsys}
}

func (s Source) String() string {
	if s.fsys != nil {
		return "embedded:" + s.dir
	}
	return "file://" + s.dir
}

// open builds a migrator for the source against databaseURL.
func (s Source) open(databaseURL string) (*migrate.Migrate, error) {
	if s.fsys == nil {
		return migrate.New("file://"+s.dir, databaseURL)
	}

	driver, err := s.driver()
	if err != nil {
		return nil, err
	}
	return migrate.NewWithSourceInstance("iofs", driver, databaseURL)
}

func (s Source) driver() (source.Driver, error) {
	driver, err := iofs.New(s.fsys, s.dir)
	if err != nil {
		return nil, fmt.Errorf("migration: open embedded source: %w", err)
	}
	return driver, nil
}

/*
RunUp applies every pending UP migration.

Description: A dirty schema version stops startup; it needs a manual fix.
Being already up to date is not an error.

Parameters:
  - dsn: postgres:// URL of the target database
  - src: Source (embedded or on disk)
  - verbose: forward golang-migrate's per-step output at debug level
  - logger: *slog.Logger

Returns:
  - error: Initialization, dirty-state or apply failures
*/
func RunUp(dsn string, src Source, verbose bool, logger *slog.Logger) error {
	migrator, err := src.open(pgx5URL(dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceErr, databaseErr := migrator.Close()
		if err := errors.Join(sourceErr, databaseErr); err != nil {
			logger.Warn("migration_close_failed", slog.Any("error", err))
		}
	}()

	migrator.Log = &slogAdapter{logger: logger, verbose: verbose}

	from, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to read version: %w", err)
	}
	if dirty {
		return fmt.Errorf("migration: schema is dirty at version %d", from)
	}

	logger.Info("migration_started", slog.Uint64("current_version", uint64(from)), slog.String("source", src.String()))

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_already_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	to, _, _ := migrator.Version()
	logger.Info("migration_successful", slog.Uint64("from_version", uint64(from)), slog.Uint64("to_version", uint64(to)))

	return nil
}

// pgx5URL rewrites postgres:// and postgresql:// to the pgx5:// scheme the
// golang-migrate pgx driver registers.
func pgx5URL(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// slogAdapter implements migrate.Logger.
type slogAdapter struct {
	logger  *slog.Logger
	verbose bool
}

func (a *slogAdapter) Printf(format string, args ...any) {
	a.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (a *slogAdapter) Verbose() bool { return a.verbose }
