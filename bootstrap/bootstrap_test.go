package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/todoapi/component"
	"github.com/kbukum/todoapi/config"
	"github.com/kbukum/todoapi/logger"
)

type testConfig struct {
	config.ServiceConfig `mapstructure:",squash"`
}

type mockComponent struct {
	name     string
	startErr error
	health   component.HealthStatus
	calls    *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(context.Context) error {
	*m.calls = append(*m.calls, "start:"+m.name)
	return m.startErr
}
func (m *mockComponent) Stop(context.Context) error {
	*m.calls = append(*m.calls, "stop:"+m.name)
	return nil
}
func (m *mockComponent) Health(context.Context) component.Health {
	status := m.health
	if status == "" {
		status = component.StatusHealthy
	}
	return component.Health{Name: m.name, Status: status}
}
func (m *mockComponent) Describe() component.Description {
	return component.Description{Type: "test", Details: "mock " + m.name, Port: 9}
}
func (m *mockComponent) Routes() []component.Route {
	return []component.Route{{Method: "GET", Path: "/" + m.name, Handler: "mock.Get"}}
}

func newTestApp(t *testing.T, out *bytes.Buffer) *App[*testConfig] {
	t.Helper()
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "test-svc", Version: "1.0.0"}}
	app, err := NewApp(cfg, WithLogger(logger.Nop()), WithSummaryOutput(out), WithGracefulTimeout(time.Second))
	require.NoError(t, err)
	return app
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t, &bytes.Buffer{})
	assert.Equal(t, "test-svc", app.Name)
	assert.Equal(t, "1.0.0", app.Version)
	assert.Equal(t, "development", app.Cfg.Environment)
	assert.Equal(t, time.Second, app.gracefulTimeout)
}

func TestNewAppInvalidConfig(t *testing.T) {
	_, err := NewApp(&testConfig{}, WithLogger(logger.Nop()))
	assert.ErrorContains(t, err, "config.name is required")
}

func TestLifecycleOrder(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(t, &out)

	var calls []string
	require.NoError(t, app.RegisterComponent(&mockComponent{name: "db", calls: &calls}))
	require.NoError(t, app.RegisterComponent(&mockComponent{name: "http", calls: &calls}))

	hook := func(name string) Hook {
		return func(context.Context) error {
			calls = append(calls, name)
			return nil
		}
	}
	app.OnStart(hook("onStart"))
	app.OnReady(hook("onReady"))
	app.OnStop(hook("onStop"))
	app.OnConfigure(func(_ context.Context, a *App[*testConfig]) error {
		calls = append(calls, "configure:"+a.Cfg.Name)
		return nil
	})

	require.NoError(t, app.Start(context.Background()))
	require.NoError(t, app.Shutdown())

	assert.Equal(t, []string{
		"start:db", "start:http", "onStart", "configure:test-svc", "onReady",
		"onStop", "stop:http", "stop:db",
	}, calls)

	summary := out.String()
	assert.Contains(t, summary, "test-svc 1.0.0 started")
	assert.Contains(t, summary, "mock db (:9)")
	assert.Contains(t, summary, "/http → mock.Get")
	assert.Contains(t, summary, "Routes (2)")
}

func TestConfigureFailureStopsComponents(t *testing.T) {
	app := newTestApp(t, &bytes.Buffer{})
	var calls []string
	require.NoError(t, app.RegisterComponent(&mockComponent{name: "db", calls: &calls}))
	app.OnConfigure(func(context.Context, *App[*testConfig]) error {
		return errors.New("boom")
	})

	err := app.Start(context.Background())
	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, []string{"start:db", "stop:db"}, calls)
}

func TestStartFailure(t *testing.T) {
	app := newTestApp(t, &bytes.Buffer{})
	var calls []string
	require.NoError(t, app.RegisterComponent(&mockComponent{name: "db", calls: &calls}))
	require.NoError(t, app.RegisterComponent(&mockComponent{name: "http", calls: &calls, startErr: errors.New("port in use")}))

	err := app.Start(context.Background())
	assert.ErrorContains(t, err, "port in use")
	assert.Equal(t, []string{"start:db", "start:http", "stop:db"}, calls)
}

func TestReadyCheck(t *testing.T) {
	app := newTestApp(t, &bytes.Buffer{})
	var calls []string
	require.NoError(t, app.RegisterComponent(&mockComponent{name: "ok", calls: &calls}))
	assert.NoError(t, app.ReadyCheck(context.Background()))

	require.NoError(t, app.RegisterComponent(&mockComponent{name: "db", calls: &calls, health: component.StatusUnhealthy}))
	assert.ErrorContains(t, app.ReadyCheck(context.Background()), "db=unhealthy")
}

func TestRunStopsWhenContextCanceled(t *testing.T) {
	app := newTestApp(t, &bytes.Buffer{})
	var calls []string
	require.NoError(t, app.RegisterComponent(&mockComponent{name: "db", calls: &calls}))

	ctx, cancel := context.WithCancel(context.Background())
	app.OnReady(func(context.Context) error {
		cancel()
		return nil
	})

	require.NoError(t, app.Run(ctx))
	assert.Equal(t, []string{"start:db", "stop:db"}, calls)
}
