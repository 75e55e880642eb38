package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("testdata/does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "https://api.karangnongkofarm.com/api", cfg.FarmAPI.BaseURL)
	assert.False(t, cfg.FarmAPI.DemoMode)
	assert.Equal(t, "goatherd", cfg.MongoDB.DBName)
	assert.False(t, cfg.Reporting.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DEMO_MODE", "true")
	t.Setenv("MONGODB_DB_NAME", "goatherd_test")

	cfg, err := Load("testdata/does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.FarmAPI.DemoMode)
	assert.Equal(t, "goatherd_test", cfg.MongoDB.DBName)
}

func TestValidateReportingNeedsSheets(t *testing.T) {
	t.Setenv("REPORT_ENABLED", "true")

	_, err := Load("testdata/does-not-exist.env")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_SHEETS_CREDENTIALS_PATH")
}

func TestValidateReportingComplete(t *testing.T) {
	t.Setenv("REPORT_ENABLED", "true")
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/etc/goatherd/sheets.json")
	t.Setenv("GOOGLE_SHEET_REPORT_ID", "sheet-1")
	t.Setenv("REPORT_SERVICE_USERNAME", "reporter")
	t.Setenv("REPORT_SERVICE_PASSWORD", "s3cret")

	cfg, err := Load("testdata/does-not-exist.env")
	require.NoError(t, err)
	assert.True(t, cfg.Reporting.Enabled)
	assert.Equal(t, "0 6 1 * *", cfg.Reporting.CronSchedule)
}
