package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at fresh temp dirs
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	for _, key := range []string{
		"GRADECARD_BASE_URL", "GRADECARD_CARD_ID", "GRADECARD_FLASH_DELAY",
		"GRADECARD_REQUEST_TIMEOUT", "GRADECARD_LISTEN", "GRADECARD_JOURNAL",
		"GRADECARD_LOG_FILE", "GRADECARD_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	home, _ := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, "4", cfg.CardID)
	assert.Equal(t, 3*time.Second, cfg.FlashDelay)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
	assert.Equal(t, filepath.Join(home, ".gradecard", "journal.db"), cfg.JournalPath)
	assert.Equal(t, "Guilherme Romanholi Santos", cfg.Profile.Name)
	assert.Len(t, cfg.Profile.Links, 3)
}

func TestLoadProjectBeforeGlobal(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(home, ".gradecard", "config.yaml"), "base_url: http://global:1\n")
	writeFile(t, filepath.Join(work, ".gradecard", "config.yaml"), "base_url: http://project:2\ncard_id: \"7\"\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://project:2", cfg.BaseURL)
	assert.Equal(t, "7", cfg.CardID)
}

func TestLoadGlobalFallback(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".gradecard", "config.yaml"), "base_url: http://global:1\nflash_delay: 5s\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://global:1", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.FlashDelay)
}

func TestLoadExplicitPath(t *testing.T) {
	_, work := isolate(t)

	t.Run("reads the given file", func(t *testing.T) {
		p := filepath.Join(work, "custom.yaml")
		writeFile(t, p, "profile:\n  name: Outra Pessoa\n")
		cfg, err := Load(p)
		require.NoError(t, err)
		assert.Equal(t, "Outra Pessoa", cfg.Profile.Name)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(work, "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		p := filepath.Join(work, "bad.yaml")
		writeFile(t, p, "base_url: [\n")
		_, err := Load(p)
		assert.Error(t, err)
	})
}

func TestEnvOverrides(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, ".gradecard", "config.yaml"), "base_url: http://project:2\n")

	t.Setenv("GRADECARD_BASE_URL", "https://env.example")
	t.Setenv("GRADECARD_FLASH_DELAY", "1500ms")
	t.Setenv("GRADECARD_REQUEST_TIMEOUT", "10s")
	t.Setenv("GRADECARD_JOURNAL", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://env.example", cfg.BaseURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.FlashDelay)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestOverridesRunBeforeValidation(t *testing.T) {
	isolate(t)
	t.Setenv("GRADECARD_BASE_URL", "ftp://bad")

	_, err := Load("")
	require.Error(t, err)

	cfg, err := Load("", func(c *Config) { c.BaseURL = "http://localhost:3000" })
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
}

func TestDotEnvFile(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, ".env"), "GRADECARD_CARD_ID=12\n")
	// godotenv never overrides a variable that is already set, even to ""
	require.NoError(t, os.Unsetenv("GRADECARD_CARD_ID"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "12", cfg.CardID)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.BaseURL = "" }},
		{"non http base url", func(c *Config) { c.BaseURL = "ftp://x" }},
		{"missing host", func(c *Config) { c.BaseURL = "http://" }},
		{"empty card", func(c *Config) { c.CardID = "" }},
		{"zero flash delay", func(c *Config) { c.FlashDelay = 0 }},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, DefaultConfig().Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	_, work := isolate(t)
	p := filepath.Join(work, "out", "config.yaml")

	cfg := DefaultConfig()
	cfg.FlashDelay = 4 * time.Second
	cfg.BaseURL = "http://saved:9"
	require.NoError(t, Save(p, cfg))

	loaded, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, cfg.BaseURL, loaded.BaseURL)
	assert.Equal(t, cfg.FlashDelay, loaded.FlashDelay)
	assert.Equal(t, cfg.Profile, loaded.Profile)
}
