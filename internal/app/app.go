package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/todoapi/auth/password"
	"github.com/kbukum/todoapi/auth/token"
	"github.com/kbukum/todoapi/bootstrap"
	"github.com/kbukum/todoapi/database"
	"github.com/kbukum/todoapi/internal/catalog"
	"github.com/kbukum/todoapi/internal/identity"
	"github.com/kbukum/todoapi/internal/schema"
	"github.com/kbukum/todoapi/internal/todo"
	"github.com/kbukum/todoapi/logger"
	"github.com/kbukum/todoapi/observability"
	"github.com/kbukum/todoapi/server"
	"github.com/kbukum/todoapi/server/middleware"
)

// App is the assembled service.
type App = bootstrap.App[*Config]

// New assembles the service: observability, database and HTTP server
// components, and a configure step that mounts the domain routes once the
// database is up.
func New(cfg *Config, opts ...bootstrap.Option) (*App, *server.Server, error) {
	a, err := bootstrap.NewApp(cfg, opts...)
	if err != nil {
		return nil, nil, err
	}
	log := a.Logger

	tokens, err := token.NewService(&cfg.Auth.Token)
	if err != nil {
		return nil, nil, fmt.Errorf("token service: %w", err)
	}

	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return nil, nil, fmt.Errorf("metrics: %w", err)
	}

	obs := observability.NewComponent(cfg.Observability, log)
	db := database.NewComponent(cfg.Database, log).WithMigrations(schema.Source(cfg.Database.Driver))

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware(metrics)
	srv.RegisterDefaultEndpoints(cfg.Name, a.Components.HealthAll)

	if err := a.RegisterComponent(obs); err != nil {
		return nil, nil, err
	}
	if err := a.RegisterComponent(db); err != nil {
		return nil, nil, err
	}
	if err := a.RegisterComponent(server.NewComponent(srv)); err != nil {
		return nil, nil, err
	}

	a.OnConfigure(func(_ context.Context, a *App) error {
		users := identity.NewService(
			identity.NewGormStore(db.DB()),
			password.NewHasher(cfg.Auth.Password),
			tokens,
			a.Logger,
			metrics,
		)
		requireAuth := middleware.Auth(users)

		var loginLimit gin.HandlerFunc
		if cfg.Server.LoginRateLimit > 0 {
			loginLimit = middleware.RateLimit(middleware.RateLimitConfig{RequestsPerMinute: cfg.Server.LoginRateLimit})
		}

		r := srv.Engine()
		identity.NewHandler(users).RegisterRoutes(r, requireAuth, loginLimit)
		todo.NewHandler(todo.NewService(todo.NewGormStore(db.DB()), a.Logger)).RegisterRoutes(r, requireAuth)
		catalog.NewHandler(catalog.New(catalog.Seed()...), a.Logger).RegisterRoutes(r)

		a.Logger.Info("Routes mounted", logger.Fields("auth", cfg.Auth.Describe()))
		return nil
	})

	return a, srv, nil
}
