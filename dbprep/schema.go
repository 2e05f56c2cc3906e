// linkedinsolvers - interactive solvers for grid logic puzzles.
// Copyright (C) 2025 the LinkedInSolvers authors.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.

package dbprep

import (
	"embed"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// The migrations travel inside the binary, so deployed images don't
// need the source tree alongside them.
//
//go:embed migrations/*.sql
var migrations embed.FS

// databaseURL figures out the migration target
func databaseURL() string {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = "postgres://localhost/linkedinsolvers?sslmode=disable"
	}
	return url
}

// newMigrator builds a migrator over the embedded migrations.  The
// caller owns the close.
func newMigrator() (*migrate.Migrate, error) {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("Couldn't read embedded migrations: %v", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL())
	if err != nil {
		return nil, fmt.Errorf("Couldn't open migration target: %v", err)
	}
	return m, nil
}

// SchemaUp creates the database with the right schema
func SchemaUp() error {
	m, err := newMigrator()
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("Table creation had errors: %v", err)
	}
	return nil
}

// SchemaDown tears down the database
func SchemaDown() error {
	m, err := newMigrator()
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Down(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("Table deletion had errors: %v", err)
	}
	return nil
}

// SchemaVersion returns the version of the database; a database
// that has never been migrated is version 0.
func SchemaVersion() (uint64, error) {
	m, err := newMigrator()
	if err != nil {
		return 0, err
	}
	defer m.Close()
	version, dirty, err := m.Version()
	if err == migrate.ErrNilVersion {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if dirty {
		return 0, fmt.Errorf("Database is mid-migration at version %d", version)
	}
	return uint64(version), nil
}
