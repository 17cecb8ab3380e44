// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/kbukum/todoapi/database"
	"github.com/kbukum/todoapi/database/migration"
	"github.com/kbukum/todoapi/logger"
)

var seq atomic.Int64

// NewSQLite opens a private in-memory SQLite database with foreign keys
// enabled, applies the given migrations and closes it when the test ends.
func NewSQLite(t testing.TB, migrations ...migration.Source) *database.DB {
	t.Helper()

	cfg := database.Config{
		Driver:     database.DriverSQLite,
		DSN:        fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_foreign_keys=on", seq.Add(1)),
		MaxRetries: 1,
		LogLevel:   "silent",
	}
	db, err := database.New(context.Background(), cfg, logger.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	for _, src := range migrations {
		if err := migration.Up(db.GormDB, database.DriverSQLite, src); err != nil {
			t.Fatalf("migrate %s: %v", src.Path, err)
		}
	}
	return db
}
