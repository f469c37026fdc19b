package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	defaultWidth                = 800
	defaultHeight               = 600
	defaultFPS                  = 60
	defaultSSHHost              = "::"
	defaultSSHPort              = "2222"
	defaultHostKeyPath          = "/app/keys/host_key"
	defaultInactivityWarn       = 90 * time.Second
	defaultInactivityDisconnect = 120 * time.Second
)

// Config is the host configuration read from the environment.
type Config struct {
	Width, Height int   // Logical playfield size
	Seed          int64 // 0 seeds from the clock
	Audio         bool
	FPS           int
	LogLevel      string

	SSHHost    string
	SSHPort    string
	SSHHostKey string

	InactivityWarn       time.Duration
	InactivityDisconnect time.Duration
}

// Load reads a .env file from the working directory, if present, and then
// the environment. Variables already set win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		LogLevel:   GetEnv("LOG_LEVEL", "info"),
		SSHHost:    GetEnv("SSH_HOST", defaultSSHHost),
		SSHPort:    GetEnv("SSH_PORT", defaultSSHPort),
		SSHHostKey: GetEnv("SSH_HOST_KEY", defaultHostKeyPath),
	}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	var err error
	cfg.Width, err = GetEnvInt("INVADERS_WIDTH", defaultWidth)
	collect(err)
	cfg.Height, err = GetEnvInt("INVADERS_HEIGHT", defaultHeight)
	collect(err)
	cfg.Seed, err = GetEnvInt64("INVADERS_SEED", 0)
	collect(err)
	cfg.Audio, err = GetEnvBool("INVADERS_AUDIO", true)
	collect(err)
	cfg.FPS, err = GetEnvInt("INVADERS_FPS", defaultFPS)
	collect(err)
	cfg.InactivityWarn, err = GetEnvDuration("INACTIVITY_WARN", defaultInactivityWarn)
	collect(err)
	cfg.InactivityDisconnect, err = GetEnvDuration("INACTIVITY_DISCONNECT", defaultInactivityDisconnect)
	collect(err)

	if cfg.Width <= 0 || cfg.Height <= 0 {
		collect(fmt.Errorf("playfield must be positive, got %dx%d", cfg.Width, cfg.Height))
	}
	if cfg.FPS <= 0 {
		collect(fmt.Errorf("INVADERS_FPS must be positive, got %d", cfg.FPS))
	}

	if len(errs) > 0 {
		return cfg, fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// FrameTime returns the duration of one host frame.
func (c Config) FrameTime() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// NewLogger creates a leveled logger writing to w.
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "invaders",
	}), nil
}
