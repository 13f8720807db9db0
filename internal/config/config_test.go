package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadInDir(t *testing.T, dir string) Config {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := loadInDir(t, t.TempDir())

	assert.Equal(t, "http://localhost:3000/api", cfg.BaseURL)
	assert.Equal(t, "admin@abc.com", cfg.AdminEmail)
	assert.Equal(t, "password", cfg.AdminPassword)
	assert.Equal(t, "ahmet@abc.com", cfg.TechEmail)
	assert.Equal(t, "123456", cfg.TechPIN)
	assert.Equal(t, 20, cfg.PollAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.PollDelay)
	assert.Equal(t, "test_report.json", cfg.Output)
	assert.Equal(t, FormatJSON, cfg.Format)
}

func TestLegacyEnvOverrides(t *testing.T) {
	t.Setenv("BASE", "http://backend:9000/api")
	t.Setenv("EMAIL", "ops@example.com")
	t.Setenv("PASS", "s3cret")

	cfg := loadInDir(t, t.TempDir())

	assert.Equal(t, "http://backend:9000/api", cfg.BaseURL)
	assert.Equal(t, "ops@example.com", cfg.AdminEmail)
	assert.Equal(t, "s3cret", cfg.AdminPassword)
}

func TestPrefixedEnvOverrides(t *testing.T) {
	t.Setenv("MUAYENE_POLL_ATTEMPTS", "5")
	t.Setenv("MUAYENE_POLL_DELAY", "50ms")
	t.Setenv("MUAYENE_TECH_EMAIL", "tech@example.com")
	t.Setenv("MUAYENE_OUTPUT", "out.json")
	t.Setenv("MUAYENE_FORMAT", "pretty")

	cfg := loadInDir(t, t.TempDir())

	assert.Equal(t, 5, cfg.PollAttempts)
	assert.Equal(t, 50*time.Millisecond, cfg.PollDelay)
	assert.Equal(t, "tech@example.com", cfg.TechEmail)
	assert.Equal(t, "out.json", cfg.Output)
	assert.Equal(t, FormatPretty, cfg.Format)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := []byte("base: http://filehost/api\npoll_attempts: 3\n")
	require.NoError(t, os.WriteFile(dir+"/muayenecheck.yaml", file, 0o644))

	cfg := loadInDir(t, dir)

	assert.Equal(t, "http://filehost/api", cfg.BaseURL)
	assert.Equal(t, 3, cfg.PollAttempts)
}

func TestEnvBeatsConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/muayenecheck.yaml", []byte("base: http://filehost/api\n"), 0o644))
	t.Setenv("BASE", "http://envhost/api")

	cfg := loadInDir(t, dir)
	assert.Equal(t, "http://envhost/api", cfg.BaseURL)
}

func TestBadPollValuesFallBack(t *testing.T) {
	t.Setenv("MUAYENE_POLL_ATTEMPTS", "-2")
	t.Setenv("MUAYENE_POLL_DELAY", "0s")

	cfg := loadInDir(t, t.TempDir())
	assert.Equal(t, 20, cfg.PollAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.PollDelay)
}
