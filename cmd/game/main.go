package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/console"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// The terminal belongs to the game; logs go to stderr and stay quiet
	// unless asked for.
	logger, err := config.NewLogger(os.Stderr, config.GetEnv("LOG_LEVEL", "error"))
	if err != nil {
		return err
	}

	sound := audio.NewSoundManager()
	if cfg.Audio {
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio unavailable, playing silently", "err", err)
		}
		defer sound.Cleanup()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	session, err := console.NewSession(bufio.NewReader(os.Stdin), os.Stdout, console.Options{
		Audio:                sound,
		Logger:               logger,
		Rand:                 newRand(cfg.Seed),
		Width:                cfg.Width,
		Height:               cfg.Height,
		FrameTime:            cfg.FrameTime(),
		InactivityWarn:       cfg.InactivityWarn,
		InactivityDisconnect: cfg.InactivityDisconnect,
	})
	if err != nil {
		return err
	}
	return session.Run()
}

// newRand seeds from the clock unless a seed is configured.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
