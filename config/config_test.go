package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Auth          struct {
		Token struct {
			Secret         string        `mapstructure:"secret"`
			AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
		} `mapstructure:"token"`
	} `mapstructure:"auth"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		assert.Equal(t, "development", cfg.Environment)
		assert.True(t, cfg.Debug)
		assert.Equal(t, "svc", cfg.Logging.ServiceName)
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		assert.False(t, cfg.Debug)
		assert.True(t, cfg.IsProduction())
	})
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    ServiceConfig
		errMsg string
	}{
		{"valid staging", ServiceConfig{Name: "svc", Environment: "staging"}, ""},
		{"missing name", ServiceConfig{Environment: "production"}, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "qa"}, "config.environment must be one of"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", `
name: todoapi
environment: staging
auth:
  token:
    secret: from-file
    access_token_ttl: 45m
`)

	var cfg testConfig
	require.NoError(t, LoadConfig("todoapi", &cfg, WithConfigFile(path)))

	assert.Equal(t, "todoapi", cfg.Name)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "from-file", cfg.Auth.Token.Secret)
	assert.Equal(t, 45*time.Minute, cfg.Auth.Token.AccessTokenTTL)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "auth:\n  token:\n    secret: from-file\n")
	t.Setenv("AUTH_TOKEN_SECRET", "from-env")
	t.Setenv("AUTH_TOKEN_ACCESS_TOKEN_TTL", "10m")

	var cfg testConfig
	require.NoError(t, LoadConfig("todoapi", &cfg, WithConfigFile(path)))

	assert.Equal(t, "from-env", cfg.Auth.Token.Secret)
	assert.Equal(t, 10*time.Minute, cfg.Auth.Token.AccessTokenTTL)
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg,
		WithConfigFile("/nonexistent/path.yml"),
		WithEnvFile("/nonexistent/.env"))
	assert.NoError(t, err)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "name: [unclosed\n")
	var cfg testConfig
	assert.Error(t, LoadConfig("todoapi", &cfg, WithConfigFile(path)))
}

type mockFS struct {
	files  map[string]bool
	loaded []string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error {
	m.loaded = append(m.loaded, path)
	return nil
}

func TestResolverSearchesStandardLocations(t *testing.T) {
	cfgPath := filepath.Join(".", "cmd", "todoapi", "config.yml")
	envPath := filepath.Join(".", ".env")
	fs := &mockFS{files: map[string]bool{cfgPath: true, envPath: true}}

	files := (&Resolver{FileSystem: fs}).ResolveFiles("todoapi", LoaderConfig{})
	assert.Equal(t, cfgPath, files.ConfigFile)
	assert.Equal(t, envPath, files.EnvFile)
}

func TestResolverPrefersExplicitPaths(t *testing.T) {
	fs := &mockFS{files: map[string]bool{filepath.Join(".", "config.yml"): true}}
	files := (&Resolver{FileSystem: fs}).ResolveFiles("todoapi", LoaderConfig{ConfigFile: "/etc/todoapi.yml"})
	assert.Equal(t, "/etc/todoapi.yml", files.ConfigFile)
}

func TestLoadConfigLoadsResolvedEnvFile(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"custom.env": true}}
	var cfg testConfig
	require.NoError(t, LoadConfig("todoapi", &cfg, WithFileSystem(fs), WithEnvFile("custom.env")))
	assert.Equal(t, []string{"custom.env"}, fs.loaded)
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("AUTH_TOKEN_SECRET")
	assert.ElementsMatch(t, []string{
		"auth_token_secret",
		"auth.token.secret",
		"auth.token_secret",
		"auth_token.secret",
	}, got)
	assert.Equal(t, []string{"port"}, envKeyVariants("PORT"))
}
