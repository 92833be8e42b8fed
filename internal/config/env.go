package config

import (
	"os"
	"time"
)

// applyEnvOverrides lets GRADECARD_* variables win over file values
func (c *Config) applyEnvOverrides() {
	c.BaseURL = envStr("GRADECARD_BASE_URL", c.BaseURL)
	c.CardID = envStr("GRADECARD_CARD_ID", c.CardID)
	c.FlashDelay = envDuration("GRADECARD_FLASH_DELAY", c.FlashDelay)
	c.RequestTimeout = envDuration("GRADECARD_REQUEST_TIMEOUT", c.RequestTimeout)
	c.Listen = envStr("GRADECARD_LISTEN", c.Listen)
	c.JournalPath = envStr("GRADECARD_JOURNAL", c.JournalPath)
	c.Log.File = envStr("GRADECARD_LOG_FILE", c.Log.File)
	c.Log.Level = envStr("GRADECARD_LOG_LEVEL", c.Log.Level)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
