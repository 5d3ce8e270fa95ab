package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/aws-cost-watch/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFile_Formats(t *testing.T) {
	files := map[string]string{
		"config.toml": `
report_bucket = "cost-reports"
daily_threshold = 25.5
write_html = true
`,
		"config.yaml": `
report_bucket: cost-reports
daily_threshold: 25.5
write_html: true
`,
		"config.json": `{"report_bucket": "cost-reports", "daily_threshold": 25.5, "write_html": true}`,
	}

	repo := NewConfigRepository()
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			cfg, err := repo.LoadConfigFile(writeFile(t, name, content))
			require.NoError(t, err)

			assert.Equal(t, "cost-reports", cfg.ReportBucket)
			assert.Equal(t, 25.5, cfg.DailyThreshold)
			assert.True(t, cfg.WriteHTML)

			// campos ausentes ficam com o padrão
			assert.Equal(t, 30, cfg.Days)
			assert.Equal(t, "reports/weekly/", cfg.ReportPrefix)
			assert.Equal(t, types.StorageS3, cfg.Storage)
		})
	}
}

func TestLoadConfigFile_ZeroThresholdOverridesDefault(t *testing.T) {
	cfg, err := NewConfigRepository().LoadConfigFile(writeFile(t, "c.yml", "daily_threshold: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.DailyThreshold)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	repo := NewConfigRepository()

	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = repo.LoadConfigFile(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")

	_, err = repo.LoadConfigFile(writeFile(t, "config.ini", "x=1"))
	assert.ErrorContains(t, err, "unsupported config file format")

	_, err = repo.LoadConfigFile(writeFile(t, "config.json", "{"))
	assert.ErrorContains(t, err, "error parsing JSON")
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv(EnvReportBucket, "env-bucket")
	t.Setenv(EnvSNSTopicARN, "arn:aws:sns:us-east-1:123456789012:cost")
	t.Setenv(EnvDailyThreshold, "42.75")
	t.Setenv(EnvDays, "7")
	t.Setenv(EnvReportPrefix, "exports/")
	t.Setenv(EnvWriteHTML, "true")
	t.Setenv(EnvWritePDF, "yes")
	t.Setenv(EnvTelegramBotToken, "123:abc")
	t.Setenv(EnvTelegramChatID, "-100200")
	t.Setenv(EnvTransport, "nats")
	t.Setenv(EnvNATSURL, "nats://localhost:4222")

	cfg := types.DefaultConfig()
	require.NoError(t, NewConfigRepository().LoadEnv(cfg))

	assert.Equal(t, "env-bucket", cfg.ReportBucket)
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:cost", cfg.SNSTopicARN)
	assert.Equal(t, 42.75, cfg.DailyThreshold)
	assert.Equal(t, 7, cfg.Days)
	assert.Equal(t, "exports/", cfg.ReportPrefix)
	assert.True(t, cfg.WriteHTML)
	assert.True(t, cfg.WritePDF)
	assert.True(t, cfg.ChatEnabled())
	assert.Equal(t, types.TransportNATS, cfg.Transport)
	assert.True(t, cfg.NotificationsEnabled())
}

func TestLoadEnv_EmptyValuesKeepDefaults(t *testing.T) {
	t.Setenv(EnvDailyThreshold, "")
	t.Setenv(EnvSNSTopicARN, "  ")

	cfg := types.DefaultConfig()
	require.NoError(t, NewConfigRepository().LoadEnv(cfg))

	assert.Equal(t, 10.0, cfg.DailyThreshold)
	assert.False(t, cfg.NotificationsEnabled())
}

func TestLoadEnv_InvalidValues(t *testing.T) {
	cases := map[string]string{
		EnvDailyThreshold: "ten",
		EnvDays:           "30d",
		EnvWriteHTML:      "maybe",
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(name, value)
			err := NewConfigRepository().LoadEnv(types.DefaultConfig())
			assert.ErrorContains(t, err, name)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	repo := NewConfigRepository()
	path := writeFile(t, "test.env", "COST_WATCH_OUTPUT_DIR=/tmp/cost-reports\n")
	t.Setenv(EnvOutputDir, "")
	os.Unsetenv(EnvOutputDir)

	require.NoError(t, repo.LoadDotEnv(path))
	assert.Equal(t, "/tmp/cost-reports", os.Getenv(EnvOutputDir))

	assert.Error(t, repo.LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestLoadDotEnv_DefaultFileIsOptional(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.NoError(t, NewConfigRepository().LoadDotEnv(""))
}

func TestConfigValidate(t *testing.T) {
	cfg := types.DefaultConfig()
	assert.ErrorIs(t, cfg.Validate(), types.ErrMissingBucket)

	cfg.ReportBucket = "cost-reports"
	assert.NoError(t, cfg.Validate())

	cfg.Storage = "gcs"
	assert.ErrorIs(t, cfg.Validate(), types.ErrUnsupportedStorage)

	cfg.Storage = types.StorageLocal
	assert.ErrorIs(t, cfg.Validate(), types.ErrUnsupportedStorage)
	cfg.OutputDir = t.TempDir()
	assert.NoError(t, cfg.Validate())

	cfg.Days = 0
	assert.Error(t, cfg.Validate())
	cfg.Days = 30

	cfg.DailyThreshold = -1
	assert.Error(t, cfg.Validate())
}
