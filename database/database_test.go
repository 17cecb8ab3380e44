package database

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kbukum/todoapi/component"
	apperrors "github.com/kbukum/todoapi/errors"
	"github.com/kbukum/todoapi/database/migration"
	"github.com/kbukum/todoapi/logger"
)

var testMigrations = migration.Source{
	FS: fstest.MapFS{
		"sql/000001_things.up.sql":   {Data: []byte("CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT NOT NULL UNIQUE);")},
		"sql/000001_things.down.sql": {Data: []byte("DROP TABLE things;")},
	},
	Path: "sql",
}

type thing struct {
	ID   int64
	Name string
}

func memoryConfig(name string) Config {
	return Config{
		Driver:   DriverSQLite,
		DSN:      "file:" + name + "?mode=memory&cache=shared",
		LogLevel: "silent",
		Migrate:  true,
	}
}

func TestConfigDefaults(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		cfg := Config{}
		cfg.ApplyDefaults()
		assert.Equal(t, DriverSQLite, cfg.Driver)
		assert.NotEmpty(t, cfg.DSN)
		assert.Equal(t, 1, cfg.MaxOpenConns)
		assert.Equal(t, 1, cfg.MaxIdleConns)
		assert.Empty(t, cfg.ConnMaxIdleTime, "idle reaping would drop in-memory databases")
		require.NoError(t, cfg.Validate())
	})

	t.Run("postgres", func(t *testing.T) {
		cfg := Config{Driver: DriverPostgres, DSN: "postgres://localhost/todos"}
		cfg.ApplyDefaults()
		assert.Equal(t, 25, cfg.MaxOpenConns)
		assert.Equal(t, 5, cfg.MaxIdleConns)
		assert.Equal(t, "1h", cfg.ConnMaxLifetime)
		require.NoError(t, cfg.Validate())
	})
}

func TestConfigValidate(t *testing.T) {
	base := Config{Driver: DriverPostgres, DSN: "postgres://x"}
	base.ApplyDefaults()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Driver = "mysql" }},
		{"missing dsn", func(c *Config) { c.DSN = "" }},
		{"idle above open", func(c *Config) { c.MaxIdleConns = 100 }},
		{"bad duration", func(c *Config) { c.ConnMaxLifetime = "soon" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNewTranslatesDuplicateKey(t *testing.T) {
	ctx := context.Background()
	db, err := New(ctx, memoryConfig("dup"), logger.Nop())
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, migration.Up(db.GormDB, DriverSQLite, testMigrations))
	require.NoError(t, db.WithContext(ctx).Create(&thing{Name: "a"}).Error)

	err = db.WithContext(ctx).Create(&thing{Name: "a"}).Error
	assert.True(t, IsDuplicateError(err), "got %v", err)

	var missing thing
	err = db.WithContext(ctx).First(&missing, 999).Error
	assert.True(t, IsNotFoundError(err))
}

func TestWithTransaction(t *testing.T) {
	ctx := context.Background()
	db, err := New(ctx, memoryConfig("tx"), logger.Nop())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, migration.Up(db.GormDB, DriverSQLite, testMigrations))

	boom := errors.New("boom")
	err = db.WithTransaction(ctx, func(tx *gorm.DB) error {
		require.NoError(t, tx.Create(&thing{Name: "rolled-back"}).Error)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.WithContext(ctx).Model(&thing{}).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, db.WithTransaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(&thing{Name: "kept"}).Error
	}))
	require.NoError(t, db.WithContext(ctx).Model(&thing{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNewCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(ctx, memoryConfig("canceled"), logger.Nop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMigrationVersion(t *testing.T) {
	db, err := New(context.Background(), memoryConfig("version"), logger.Nop())
	require.NoError(t, err)
	defer db.Close()

	v, _, err := migration.Version(db.GormDB, DriverSQLite, testMigrations)
	require.NoError(t, err)
	assert.Zero(t, v)

	require.NoError(t, migration.Up(db.GormDB, DriverSQLite, testMigrations))
	require.NoError(t, migration.Up(db.GormDB, DriverSQLite, testMigrations), "re-running is a no-op")

	v, dirty, err := migration.Version(db.GormDB, DriverSQLite, testMigrations)
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)
	assert.False(t, dirty)

	_, err = migration.DriverFor("oracle")
	assert.Error(t, err)
}

func TestComponentLifecycle(t *testing.T) {
	ctx := context.Background()
	c := NewComponent(memoryConfig("component"), logger.Nop()).WithMigrations(testMigrations)

	assert.Nil(t, c.DB())
	assert.Equal(t, component.StatusUnhealthy, c.Health(ctx).Status)

	require.NoError(t, c.Start(ctx))
	require.NotNil(t, c.DB())
	assert.True(t, c.DB().GormDB.Migrator().HasTable("things"))
	assert.Equal(t, component.StatusHealthy, c.Health(ctx).Status)
	assert.Contains(t, c.Describe().Details, "sqlite pool=1/1 migrate=on")

	require.NoError(t, c.Stop(ctx))
	require.NoError(t, c.DB().Close(), "close is idempotent")
}

func TestFromDatabase(t *testing.T) {
	assert.Nil(t, FromDatabase(nil, "todo"))

	appErr := FromDatabase(gorm.ErrRecordNotFound, "todo")
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)

	appErr = FromDatabase(gorm.ErrDuplicatedKey, "user")
	assert.Equal(t, apperrors.ErrCodeAlreadyExists, appErr.Code)
	assert.Equal(t, 409, appErr.HTTPStatus)

	appErr = FromDatabase(errors.New("dial tcp: connection refused"), "user")
	assert.Equal(t, apperrors.ErrCodeDatabaseError, appErr.Code)
	assert.True(t, appErr.Retryable)

	appErr = FromDatabase(errors.New("syntax error"), "user")
	assert.Equal(t, apperrors.ErrCodeDatabaseError, appErr.Code)
	assert.Equal(t, 500, appErr.HTTPStatus)
}
