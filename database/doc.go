// Package database provides a GORM-based database component with connection
// pooling, retrying connects, health checks, transactions and versioned SQL
// migrations.
//
// The driver is chosen by configuration: "sqlite" (gorm.io/driver/sqlite) or
// "postgres" (gorm.io/driver/postgres). Connections are opened with
// TranslateError so unique-index violations surface as gorm.ErrDuplicatedKey.
//
//	db := database.NewComponent(cfg.Database, log).
//	    WithMigrations(schema.Source(cfg.Database.Driver))
//	registry.Register(db)
//
// FromDatabase maps driver errors to *errors.AppError for handlers that have
// no more specific translation.
package database
