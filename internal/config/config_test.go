package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"INVADERS_WIDTH", "INVADERS_HEIGHT", "INVADERS_SEED", "INVADERS_AUDIO",
	"INVADERS_FPS", "LOG_LEVEL", "SSH_HOST", "SSH_PORT", "SSH_HOST_KEY",
	"INACTIVITY_WARN", "INACTIVITY_DISCONNECT",
}

// isolate runs the test in an empty directory with every config variable
// unset; t.Setenv restores the previous values afterwards.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("INVADERS_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("INVADERS_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("INVADERS_TEST_MISSING", "fallback"))
}

func TestGetEnvTyped(t *testing.T) {
	t.Setenv("INVADERS_TEST_INT", " 42 ")
	t.Setenv("INVADERS_TEST_BOOL", "false")
	t.Setenv("INVADERS_TEST_DURATION", "1m30s")
	t.Setenv("INVADERS_TEST_EMPTY", "")

	n, err := GetEnvInt("INVADERS_TEST_INT", 1)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	b, err := GetEnvBool("INVADERS_TEST_BOOL", true)
	require.NoError(t, err)
	assert.False(t, b)

	d, err := GetEnvDuration("INVADERS_TEST_DURATION", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	n, err = GetEnvInt("INVADERS_TEST_EMPTY", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestGetEnvTypedRejectsGarbage(t *testing.T) {
	t.Setenv("INVADERS_TEST_INT", "many")

	n, err := GetEnvInt("INVADERS_TEST_INT", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVADERS_TEST_INT")
	assert.Equal(t, 3, n)
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Zero(t, cfg.Seed)
	assert.True(t, cfg.Audio)
	assert.Equal(t, 60, cfg.FPS)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "2222", cfg.SSHPort)
	assert.Equal(t, 90*time.Second, cfg.InactivityWarn)
	assert.Equal(t, 120*time.Second, cfg.InactivityDisconnect)
	assert.Equal(t, time.Second/60, cfg.FrameTime())
}

func TestLoadReadsDotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(".", ".env"),
		[]byte("INVADERS_SEED=7\nINVADERS_AUDIO=false\nINVADERS_WIDTH=640\n"), 0o600))
	// The environment wins over the file.
	t.Setenv("INVADERS_WIDTH", "1024")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.False(t, cfg.Audio)
	assert.Equal(t, 1024, cfg.Width)
}

func TestLoadCollectsErrors(t *testing.T) {
	isolate(t)
	t.Setenv("INVADERS_FPS", "fast")
	t.Setenv("INVADERS_HEIGHT", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVADERS_FPS")
	assert.Contains(t, err.Error(), "playfield must be positive")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn")
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	logger.Warn("shown", "score", 100)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "score=100")

	_, err = NewLogger(&buf, "loud")
	assert.Error(t, err)
}
