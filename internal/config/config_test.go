package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("DEP_STR", "value")
	t.Setenv("DEP_INT", "42")
	t.Setenv("DEP_BAD_INT", "forty-two")
	t.Setenv("DEP_DUR", "750ms")
	t.Setenv("DEP_BOOL", "false")
	t.Setenv("DEP_EMPTY", "")

	assert.Equal(t, "value", GetEnv("DEP_STR", "fallback"))
	assert.Equal(t, "fallback", GetEnv("DEP_EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("DEP_MISSING", "fallback"))

	assert.Equal(t, 42, GetIntEnv("DEP_INT", 1))
	assert.Equal(t, 1, GetIntEnv("DEP_BAD_INT", 1))

	assert.Equal(t, 750*time.Millisecond, GetDurationEnv("DEP_DUR", time.Second))
	assert.Equal(t, time.Second, GetDurationEnv("DEP_MISSING", time.Second))

	assert.False(t, GetBoolEnv("DEP_BOOL", true))
	assert.True(t, GetBoolEnv("DEP_MISSING", true))
}

func TestLoad(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("MAIL_WORKERS", "8")
	t.Setenv("DEPOSIT_WRITE_TIMEOUT", "3s")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 8, cfg.Mail.Workers)
	assert.Equal(t, 3*time.Second, cfg.DepositWriteTimeout)
	assert.Equal(t, "queue:mail", cfg.Mail.QueueKey)
	assert.Equal(t, "1000000", cfg.DepositMaxAmount)
}
