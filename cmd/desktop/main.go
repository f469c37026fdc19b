package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/desktop"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", "err", err)
	}
	logger, err := config.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatal("create logger", "err", err)
	}

	sound := audio.NewSoundManager()
	if cfg.Audio {
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio unavailable, playing silently", "err", err)
		}
		defer sound.Cleanup()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	game, err := desktop.NewGame(desktop.Options{
		Width:  cfg.Width,
		Height: cfg.Height,
		Audio:  sound,
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("create game", "err", err)
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Invaders")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	logger.Info("starting", "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), "seed", seed)
	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game error", "err", err)
		sound.Cleanup()
		os.Exit(1)
	}
}
