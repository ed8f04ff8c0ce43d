package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "config.yaml", `
poll:
  interval: 250ms
  max_attempts: 10
run:
  character_delay: 2s
browser:
  enabled: true
  remote_url: http://127.0.0.1:9222
io:
  output_file: out.xlsx
  output_format: xlsx
mapping:
  trait_sources:
    other: other
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Poll.Interval)
	assert.Equal(t, 10, cfg.Poll.MaxAttempts)
	assert.Equal(t, DefaultMinInputs, cfg.Poll.MinInputs, "unset fields keep defaults")
	assert.Equal(t, 2*time.Second, cfg.Run.CharacterDelay)
	assert.Equal(t, DefaultSettleDelay, cfg.Run.SettleDelay)
	assert.True(t, cfg.Browser.Enabled)
	assert.Equal(t, "http://127.0.0.1:9222", cfg.Browser.RemoteURL)
	assert.Equal(t, "xlsx", cfg.IO.OutputFormat)
	assert.Equal(t, "other", cfg.Mapping.TraitSources.Other)
	assert.Equal(t, "Racial", cfg.Mapping.TraitSources.Racial)
	assert.Equal(t, DefaultUserAgents, cfg.Source.UserAgents)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "bad.yaml", "poll:\n  interval: soon\n"))
	assert.Error(t, err)
}

func TestCreateDefault(t *testing.T) {
	cfg := CreateDefault("file:///tmp/snap", false, "", "party.xlsx", "xlsx", time.Second, 5, 20)

	assert.Equal(t, "file:///tmp/snap", cfg.Source.BaseURL)
	assert.False(t, cfg.Browser.Enabled)
	assert.Equal(t, "party.xlsx", cfg.IO.OutputFile)
	assert.Equal(t, PollConfig{Interval: time.Second, MaxAttempts: 5, MinInputs: 20}, cfg.Poll)
	assert.Equal(t, DefaultCharacterDelay, cfg.Run.CharacterDelay)
}

func TestApplyEnv(t *testing.T) {
	envFile := writeFile(t, ".env", "PARTY_SCRAPER_REMOTE_URL=http://localhost:9222\nPARTY_SCRAPER_STORE_PATH=runs.db\n")
	t.Setenv("PARTY_SCRAPER_POST_URL", "http://example.test/party")
	// godotenv does not override variables that are already set
	t.Setenv("PARTY_SCRAPER_REMOTE_URL", "")
	os.Unsetenv("PARTY_SCRAPER_REMOTE_URL")
	t.Setenv("PARTY_SCRAPER_STORE_PATH", "")
	os.Unsetenv("PARTY_SCRAPER_STORE_PATH")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envFile))

	assert.True(t, cfg.Browser.Enabled)
	assert.Equal(t, "http://localhost:9222", cfg.Browser.RemoteURL)
	assert.True(t, cfg.Store.Enabled)
	assert.Equal(t, "runs.db", cfg.Store.Path)
	assert.Equal(t, "http://example.test/party", cfg.IO.PostURL)
	assert.Empty(t, cfg.Source.BaseURL)
}

func TestApplyEnv_MissingFile(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.ApplyEnv(filepath.Join(t.TempDir(), ".env")))
}
