package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MhmdALii1/employee-management-system/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "APP_ENV", "PORT", "DB_HOST", "DB_NAME",
		"REDIS_ADDR", "EMPLOYEE_PAGE_SIZE", "TIMESHEET_PAGE_SIZE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.HTTP.Port)
	assert.Equal(t, 4, cfg.Query.EmployeePageSize)
	assert.Equal(t, 10, cfg.Query.TimesheetPageSize)
	assert.Equal(t, 10*time.Minute, cfg.Redis.IdempotencyTTL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "app.yaml")
	content := `
app:
  env: production
http:
  port: "8080"
  read_timeout: 2s
db:
  host: db.internal
  name: hr
query:
  employee_page_size: 20
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DB_HOST", "override.internal")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 2*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "override.internal", cfg.DB.Host)
	assert.Equal(t, "hr", cfg.DB.Name)
	assert.Equal(t, 20, cfg.Query.EmployeePageSize)
	assert.Contains(t, cfg.DB.DSN(), "host=override.internal")
}

func TestLoad_InvalidPageSize(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMPLOYEE_PAGE_SIZE", "0")

	_, err := config.Load()
	assert.ErrorContains(t, err, "page sizes")
}

func TestLoad_BrokenFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [unclosed"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	_, err := config.Load()
	assert.ErrorContains(t, err, "read config")
}
