package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[database]
host = "localhost"
dbname = "barbers"
user = "barbers"
password = "from-file"

[auth]
jwt_secret = "file-secret"

[invite_service]
url = "http://invites:8080"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv(envConfigPath, "")
	t.Setenv(envDBPassword, "")
	t.Setenv(envJWTSecret, "")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 3, cfg.Database.TxRetries)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "09:00", cfg.Slots.OpenTime)
	assert.Equal(t, "20:00", cfg.Slots.CloseTime)
	assert.Equal(t, 30, cfg.Slots.GranularityMinutes)
	assert.Equal(t, "0 3 * * *", cfg.AutoSettle.Schedule)

	def, err := cfg.Commission.Default()
	require.NoError(t, err)
	assert.Equal(t, "50", def.String())

	product, err := cfg.Commission.Product()
	require.NoError(t, err)
	assert.Equal(t, "10", product.String())

	assert.Equal(t, "host=localhost port=5432 user=barbers password=from-file dbname=barbers sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv(envConfigPath, "")
	t.Setenv(envDBPassword, "from-env")
	t.Setenv(envJWTSecret, "env-secret")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	path := writeConfig(t, minimalConfig+"\n[server]\nhttp_port = 9090\n")
	t.Setenv(envConfigPath, path)
	t.Setenv(envDBPassword, "")
	t.Setenv(envJWTSecret, "")

	cfg, err := Load("does-not-exist.toml")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		extra string
	}{
		{name: "close before open", extra: "[slots]\nopen_time = \"18:00\"\nclose_time = \"09:00\"\n"},
		{name: "bad open time", extra: "[slots]\nopen_time = \"9am\"\n"},
		{name: "unknown timezone", extra: "[slots]\ntimezone = \"Mars/Olympus\"\n"},
		{name: "percent above 100", extra: "[commission]\ndefault_percent = \"120\"\n"},
		{name: "percent not a number", extra: "[commission]\nproduct_percent = \"ten\"\n"},
		{name: "bad cron", extra: "[autosettle]\nenabled = true\nschedule = \"every day\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envConfigPath, "")
			t.Setenv(envDBPassword, "")
			t.Setenv(envJWTSecret, "")

			_, err := Load(writeConfig(t, minimalConfig+"\n"+tt.extra))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv(envConfigPath, "")
	t.Setenv(envDBPassword, "")
	t.Setenv(envJWTSecret, "")

	content := `
[database]
host = "localhost"
dbname = "barbers"

[invite_service]
url = "http://invites:8080"
`
	_, err := Load(writeConfig(t, content))
	assert.Error(t, err)
}

func TestSlotsConfig_WorkingWindow(t *testing.T) {
	window, err := SlotsConfig{
		OpenTime:           "10:00",
		CloseTime:          "19:00",
		GranularityMinutes: 15,
		MinNoticeMinutes:   60,
		Timezone:           "UTC",
	}.WorkingWindow()
	require.NoError(t, err)

	assert.Equal(t, "10:00", window.OpenTime.String())
	assert.Equal(t, "19:00", window.CloseTime.String())
	assert.Equal(t, 15, window.GranularityMinutes)
	assert.Equal(t, 60, window.MinNoticeMinutes)
	assert.Equal(t, "UTC", window.Loc().String())
}
