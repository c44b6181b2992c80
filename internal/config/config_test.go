package config_test

import (
	"accounts/internal/config"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "environment: production\n"))
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, "accounts", cfg.Database.DatabaseName)
	require.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	require.Equal(t, 86400, cfg.Verification.TTLSeconds)
	require.EqualValues(t, 65536, cfg.Password.Memory)
	require.Equal(t, 10, cfg.Worker.MaxWorkers)
	require.Equal(t, config.MailerLog, cfg.Mailer.Driver)
	require.Equal(t, 10*time.Second, cfg.Mailer.Timeout)
	require.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
}

func TestLoad_CORSOrigins(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "http:\n  corsOrigins: [\"https://app.example.com\"]\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"https://app.example.com"}, cfg.HTTP.CORSOrigins)

	t.Setenv("HTTP_CORS_ORIGINS", "https://a.example.com,https://b.example.com")
	cfg, err = config.Load(writeConfig(t, "environment: test\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.HTTP.CORSOrigins)
}

func TestLoad_FileAndEnv(t *testing.T) {
	t.Setenv("VERIFICATION_TTL_SECONDS", "600")

	cfg, err := config.Load(writeConfig(t, `
jwt:
  ttl: 1h
verification:
  ttlSeconds: 60
  maxAttempts: 3
`))
	require.NoError(t, err)
	require.Equal(t, time.Hour, cfg.JWT.TTL)
	require.Equal(t, 600, cfg.Verification.TTLSeconds, "environment wins over the file")
	require.Equal(t, 3, cfg.Verification.MaxAttempts)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := config.Load(writeConfig(t, "verification:\n  ttlSeconds: -1\n"))
	require.ErrorContains(t, err, "verification ttl")

	_, err = config.Load(writeConfig(t, "mailer:\n  driver: smtp\n"))
	require.ErrorContains(t, err, `unknown mailer driver "smtp"`)

	cfg, err := config.Load(writeConfig(t, "mailer:\n  driver: ses\n"))
	require.NoError(t, err)
	require.Equal(t, "us-east-1", cfg.Mailer.Region)

	_, err = config.Load(writeConfig(t, "mailer:\n  driver: http\n"))
	require.ErrorContains(t, err, "mailer endpoint is required")

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
