package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("DIGEST_TIME", "")
	t.Setenv("DIGEST_INTERVAL_HOURS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "taskboard.db", cfg.DatabaseURL)
	assert.Equal(t, "09:00", cfg.DigestTime)
	assert.Empty(t, cfg.TelegramToken)
	assert.Equal(t, time.Duration(0), cfg.DigestInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DATABASE_URL", "data/board.db")
	t.Setenv("TELEGRAM_TOKEN", "token-123")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("DIGEST_TIME", "18:30")
	t.Setenv("DIGEST_INTERVAL_HOURS", "6")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "data/board.db", cfg.DatabaseURL)
	assert.Equal(t, "token-123", cfg.TelegramToken)
	assert.Equal(t, int64(42), cfg.TelegramChatID)
	assert.Equal(t, "18:30", cfg.DigestTime)
	assert.Equal(t, 6*time.Hour, cfg.DigestInterval)
}

func TestLoad_DigestInterval_Invalid(t *testing.T) {
	tests := []string{"abc", "-3", "0"}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			t.Setenv("DIGEST_INTERVAL_HOURS", raw)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, time.Duration(0), cfg.DigestInterval)
		})
	}
}

func TestLoad_TokenWithoutChatID(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token-123")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_CHAT_ID")
}
