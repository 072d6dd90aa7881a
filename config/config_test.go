package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLambdaEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"AWS_LAMBDA_FUNCTION_NAME", "LAMBDA_TASK_ROOT", "AWS_EXECUTION_ENV", "PORT"} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearLambdaEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "recon-tracker", cfg.ServiceName)
	assert.Equal(t, "http", cfg.Adapters.Runtime)
	assert.Equal(t, "sqlite", cfg.Adapters.Database)
	assert.Equal(t, "recon.db", cfg.Database.Path)
	assert.Equal(t, 5*time.Second, cfg.Database.BusyTimeout)
	assert.Equal(t, ":8000", cfg.HTTP.Addr)
	assert.Equal(t, int64(1048576), cfg.Handler.MaxRequestSize)
	assert.True(t, cfg.Handler.EnableMetrics)
	assert.True(t, cfg.IsLocal())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearLambdaEnv(t)
	t.Setenv("ADAPTER_DATABASE", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("HTTP_READ_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("HANDLER_ENABLE_TRACING", "false")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Adapters.Database)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Handler.EnableTracing)
}

func TestFromEnv_PortFallback(t *testing.T) {
	clearLambdaEnv(t)
	t.Setenv("PORT", "9090")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)

	t.Setenv("HTTP_ADDR", "127.0.0.1:7000")
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.HTTP.Addr)
}

func TestFromEnv_LambdaDetection(t *testing.T) {
	clearLambdaEnv(t)
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "recon-tracker")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "lambda", cfg.Adapters.Runtime)
}

func TestFromEnv_ParseError(t *testing.T) {
	clearLambdaEnv(t)
	t.Setenv("DB_PORT", "not-a-number")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ServiceName: "recon-tracker",
			LogLevel:    "info",
			Adapters:    AdapterConfig{Runtime: "http", Database: "sqlite"},
			Database:    DatabaseConfig{Path: "recon.db", MaxOpenConns: 10, MaxIdleConns: 5},
			HTTP: HTTPConfig{
				Addr:            ":8000",
				ReadTimeout:     time.Second,
				WriteTimeout:    time.Second,
				ShutdownTimeout: time.Second,
			},
			Handler: HandlerConfig{MaxRequestSize: 1024},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "unknown database driver",
			mutate:  func(c *Config) { c.Adapters.Database = "mysql" },
			wantErr: "invalid database adapter: mysql",
		},
		{
			name:    "unknown runtime",
			mutate:  func(c *Config) { c.Adapters.Runtime = "rabbitmq" },
			wantErr: "invalid runtime adapter: rabbitmq",
		},
		{
			name:    "missing sqlite path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "DB_PATH is required",
		},
		{
			name: "postgres without host",
			mutate: func(c *Config) {
				c.Adapters.Database = "postgres"
				c.Database.Port = 5432
				c.Database.Database = "recon"
				c.Database.Username = "recon"
			},
			wantErr: "DB_HOST is required",
		},
		{
			name:    "idle above open",
			mutate:  func(c *Config) { c.Database.MaxIdleConns = 20 },
			wantErr: "DB_MAX_IDLE_CONNS cannot be greater than DB_MAX_OPEN_CONNS",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: "invalid LOG_LEVEL",
		},
		{
			name:    "non-positive request size",
			mutate:  func(c *Config) { c.Handler.MaxRequestSize = 0 },
			wantErr: "HANDLER_MAX_REQUEST_SIZE must be positive",
		},
		{
			name:    "lambda skips http checks",
			mutate:  func(c *Config) { c.Adapters.Runtime = "lambda"; c.HTTP = HTTPConfig{} },
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := &Config{LogLevel: "info", Adapters: AdapterConfig{Runtime: "http", Database: "sqlite"}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVICE_NAME is required")
	assert.Contains(t, err.Error(), "HTTP_ADDR is required")
	assert.Contains(t, err.Error(), "DB_PATH is required")
}

func TestLoad_ReadsDotEnvOnce(t *testing.T) {
	clearLambdaEnv(t)
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("SERVICE_NAME", "")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("SERVICE_NAME=from-dotenv\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		Reset()
	})

	Reset()
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.ServiceName)
	assert.True(t, IsLoaded())

	again, err := Load()
	require.NoError(t, err)
	assert.Same(t, cfg, again)
}

func TestLoad_EnvironmentOverlayFollowsEnvironmentKey(t *testing.T) {
	clearLambdaEnv(t)
	t.Setenv("SERVICE_NAME", "")
	t.Setenv("ENV", "prod")
	t.Setenv("ENVIRONMENT", "")
	require.NoError(t, os.Unsetenv("ENVIRONMENT"))

	dir := t.TempDir()
	files := map[string]string{
		".env":         "ENVIRONMENT=staging\n",
		".env.staging": "SERVICE_NAME=from-staging\n",
		".env.prod":    "SERVICE_NAME=from-prod\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		Reset()
	})

	Reset()
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "from-staging", cfg.ServiceName)
}

func TestLoad_LocalOverridesEnvironmentFile(t *testing.T) {
	clearLambdaEnv(t)
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("SERVICE_NAME", "")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("SERVICE_NAME=from-test\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("SERVICE_NAME=from-local\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		Reset()
	})

	Reset()
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-local", cfg.ServiceName)
}
