package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	t.Run("app", func(t *testing.T) {
		assert.Equal(t, "sales-portal", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8090", cfg.App.Port)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("backend and client", func(t *testing.T) {
		assert.Equal(t, SourceREST, cfg.Backend.Source)
		assert.Equal(t, "http://localhost:8000", cfg.Client.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
		assert.Zero(t, cfg.Client.MaxRetries, "retries are opt-in")
		assert.Zero(t, cfg.Client.RateLimit)
	})

	t.Run("cache and export", func(t *testing.T) {
		assert.False(t, cfg.Redis.Enabled)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, "json", cfg.Export.Format)
		assert.Equal(t, SinkStdout, cfg.Export.Sink)
	})

	t.Run("telemetry", func(t *testing.T) {
		assert.False(t, cfg.Telemetry.Enabled)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
		assert.Equal(t, "sales-portal", cfg.Telemetry.ServiceName)
		assert.Equal(t, time.Minute, cfg.Telemetry.MetricsInterval)
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORTAL_APP_PORT", "9999")
	t.Setenv("PORTAL_CLIENT_BASE_URL", "https://erp.example.com/api")
	t.Setenv("PORTAL_CLIENT_TOKEN", "abc")
	t.Setenv("PORTAL_CLIENT_MAX_RETRIES", "3")
	t.Setenv("PORTAL_CLIENT_RATE_LIMIT", "5")
	t.Setenv("PORTAL_CACHE_TTL", "30s")
	t.Setenv("PORTAL_EXPORT_FORMAT", "YAML")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.App.Port)
	assert.Equal(t, "https://erp.example.com/api", cfg.Client.BaseURL)
	assert.Equal(t, "abc", cfg.Client.Token)
	assert.Equal(t, 3, cfg.Client.MaxRetries)
	assert.Equal(t, 5.0, cfg.Client.RateLimit)
	assert.Equal(t, 1, cfg.Client.RateBurst, "burst defaults to 1 when limiting")
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "yaml", cfg.Export.Format)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.toml")
	content := `
[app]
env = "staging"

[backend]
source = "sql"

[database]
driver = "sqlite"
dsn = "file::memory:"
company_id = 4

[export]
sink = "s3"
[export.s3]
bucket = "reports"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.App.Env)
	assert.Equal(t, SourceSQL, cfg.Backend.Source)
	assert.Equal(t, int64(4), cfg.Database.CompanyID)
	assert.Equal(t, "file::memory:", cfg.Database.ConnectionString())
	assert.Equal(t, "reports", cfg.Export.S3.Bucket)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"unknown source", map[string]string{"PORTAL_BACKEND_SOURCE": "ftp"}, "backend.source"},
		{"relative base url", map[string]string{"PORTAL_CLIENT_BASE_URL": "/api"}, "client.base_url"},
		{"negative retries", map[string]string{"PORTAL_CLIENT_MAX_RETRIES": "-1"}, "client.max_retries"},
		{"bad sampling ratio", map[string]string{"PORTAL_TELEMETRY_SAMPLING_RATIO": "1.5"}, "sampling_ratio"},
		{"bad export format", map[string]string{"PORTAL_EXPORT_FORMAT": "xml"}, "export.format"},
		{"s3 without bucket", map[string]string{"PORTAL_EXPORT_SINK": "s3"}, "export.s3.bucket"},
		{"sqlite without dsn", map[string]string{"PORTAL_BACKEND_SOURCE": "sql", "PORTAL_DATABASE_DRIVER": "sqlite"}, "database.dsn"},
		{"profiling without server", map[string]string{"PORTAL_TELEMETRY_PROFILING_ENABLED": "true"}, "server_address"},
		{"production without token", map[string]string{"PORTAL_APP_ENV": "production"}, "client.token"},
		{"production demo", map[string]string{"PORTAL_APP_ENV": "production", "PORTAL_BACKEND_SOURCE": "demo"}, "demo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "erp", Password: "p@ss", DBName: "sales", SSLMode: "require"}
	assert.Equal(t, "postgres://erp:p%40ss@db:5433/sales?sslmode=require", d.ConnectionString())
}
