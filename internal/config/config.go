package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/portfolio-cards/gradecard/internal/portfolio"
)

// Config represents the card's configuration
type Config struct {
	// Grade store location: {BaseURL}/api/base-notas/{CardID}
	BaseURL string `yaml:"base_url"`
	CardID  string `yaml:"card_id"`

	// RequestTimeout bounds each store request. Zero disables the timeout.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// FlashDelay is how long confirmation messages stay on screen
	FlashDelay time.Duration `yaml:"flash_delay"`

	// Listen is the address used by the web rendition
	Listen string `yaml:"listen"`

	// JournalPath is the sqlite mutation journal; empty disables it
	JournalPath string `yaml:"journal"`

	Log     LogConfig         `yaml:"log"`
	Profile portfolio.Profile `yaml:"profile"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // used by the terminal client
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	dir, err := globalConfigDir()
	if err != nil {
		dir = ".gradecard"
	}
	return &Config{
		BaseURL:     "http://localhost:3000",
		CardID:      "4",
		FlashDelay:  3 * time.Second,
		Listen:      ":8080",
		JournalPath: filepath.Join(dir, "journal.db"),
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "gradecard.log"),
		},
		Profile: portfolio.DefaultProfile(),
	}
}

// globalConfigDir returns the global config directory path (~/.gradecard)
func globalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gradecard"), nil
}

// GlobalPath returns the global config file path (~/.gradecard/config.yaml)
func GlobalPath() (string, error) {
	dir, err := globalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ProjectPath returns the project-level config path (.gradecard/config.yaml in cwd)
func ProjectPath() string {
	return filepath.Join(".gradecard", "config.yaml")
}

// Override adjusts a loaded config after env overrides, before validation.
// Command-line flags are applied this way.
type Override func(*Config)

// Load reads the configuration. An explicit path is used as-is; otherwise the
// project config is tried first, then the global one, then defaults.
// A .env file in the working directory is loaded before env overrides apply,
// and overrides run last.
func Load(path string, overrides ...Override) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := DefaultConfig()

	candidates := []string{path}
	if path == "" {
		candidates = []string{ProjectPath()}
		if global, err := GlobalPath(); err == nil {
			candidates = append(candidates, global)
		}
	}

	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) && path == "" {
				continue
			}
			return nil, fmt.Errorf("read config %s: %w", p, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", p, err)
		}
		break
	}

	cfg.applyEnvOverrides()
	for _, o := range overrides {
		o(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields every command relies on
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url must be an http(s) URL, got %q", c.BaseURL)
	}
	if c.CardID == "" {
		return fmt.Errorf("card_id must not be empty")
	}
	if c.FlashDelay <= 0 {
		return fmt.Errorf("flash_delay must be positive, got %s", c.FlashDelay)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}

// Save writes the config as YAML to path, creating its directory
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
