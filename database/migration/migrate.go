// Package migration runs versioned SQL migrations through golang-migrate
// against the connection pool of a GORM database.
//
// Migration files follow the pattern VERSION_name.up.sql and
// VERSION_name.down.sql and are read from any fs.FS, typically an embed.FS:
//
//	//go:embed sqlite/*.sql
//	var files embed.FS
//
//	err := migration.Up(gormDB, "sqlite", migration.Source{FS: files, Path: "sqlite"})
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

// DriverFunc creates a migrate database driver from sql.DB.
type DriverFunc func(*sql.DB) (database.Driver, error)

// Source locates a directory of migration files inside a filesystem.
type Source struct {
	FS   fs.FS
	Path string
}

// DriverFor returns the migrate driver matching a database driver name
// ("sqlite" or "postgres").
func DriverFor(name string) (DriverFunc, error) {
	switch name {
	case "sqlite":
		return func(db *sql.DB) (database.Driver, error) {
			return sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
		}, nil
	case "postgres":
		return func(db *sql.DB) (database.Driver, error) {
			return pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
		}, nil
	default:
		return nil, fmt.Errorf("no migration driver for %q", name)
	}
}

// Up runs all pending migrations. No pending migrations is not an error.
func Up(gormDB *gorm.DB, driver string, src Source) error {
	m, err := newMigrator(gormDB, driver, src)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down rolls back all applied migrations.
func Down(gormDB *gorm.DB, driver string, src Source) error {
	m, err := newMigrator(gormDB, driver, src)
	if err != nil {
		return err
	}
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Version returns the current migration version and dirty flag.
// A database without migrations reports version 0.
func Version(gormDB *gorm.DB, driver string, src Source) (version uint, dirty bool, err error) {
	m, err := newMigrator(gormDB, driver, src)
	if err != nil {
		return 0, false, err
	}
	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// newMigrator creates a golang-migrate instance over src.
// Callers must NOT call m.Close(): it would close the shared sql.DB.
func newMigrator(gormDB *gorm.DB, driver string, src Source) (*migrate.Migrate, error) {
	driverFunc, err := DriverFor(driver)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	dbDriver, err := driverFunc(sqlDB)
	if err != nil {
		return nil, fmt.Errorf("create database driver: %w", err)
	}

	source, err := iofs.New(src.FS, src.Path)
	if err != nil {
		return nil, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, dbDriver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}
