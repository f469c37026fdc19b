// Package desktop runs the game in a window with Ebitengine.
package desktop

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

// bannerDuration is how long the end-of-game message stays on screen.
const bannerDuration = 3 * time.Second

// Options configures a Game. Zero values fall back to the defaults.
type Options struct {
	Width, Height int
	Audio         loop.Audio // nil plays nothing
	Rand          object.Rand
	Logger        *log.Logger
}

// Game adapts the driver to ebiten.Game. Ebitengine calls Update and Draw
// from one goroutine, so the world handed to Render is safe to draw.
type Game struct {
	driver *loop.Driver
	world  *loop.World // Last rendered world
	width  int
	height int
	log    *log.Logger

	ticks int64
	now   time.Duration

	score, lives, shield int
	banner               string
	bannerUntil          time.Duration

	whiteImage *ebiten.Image
}

// NewGame creates a windowed game.
func NewGame(opts Options) (*Game, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = config.DefaultWidth, config.DefaultHeight
	}
	if opts.Audio == nil {
		opts.Audio = audio.NewSoundManager()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	g := &Game{
		width:      opts.Width,
		height:     opts.Height,
		log:        opts.Logger,
		whiteImage: ebiten.NewImage(3, 3),
	}
	g.whiteImage.Fill(object.ColorWhite)

	driver, err := loop.NewDriver(loop.Sinks{
		Renderer:   g,
		Audio:      opts.Audio,
		Scoreboard: g,
		Controls:   g,
		Notifier:   g,
	}, loop.Options{
		Width:  opts.Width,
		Height: opts.Height,
		Rand:   opts.Rand,
		Logger: opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("new driver: %w", err)
	}
	g.driver = driver
	return g, nil
}

// Update advances the game by one tick on a clock derived from the tick
// count, so timing follows the game's TPS rather than the wall clock.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.ticks++
	g.now = time.Duration(g.ticks) * time.Second / time.Duration(ebiten.TPS())
	return g.driver.Tick(g.now)
}

// Layout keeps the logical playfield size regardless of window size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Render keeps w for the next Draw.
func (g *Game) Render(w *loop.World) error {
	g.world = w
	return nil
}

// Poll reads held movement keys and the fire key's down edge.
func (g *Game) Poll() input.Input {
	return input.Input{
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Fire:  inpututil.IsKeyJustPressed(ebiten.KeySpace),
	}
}

// Reset is a no-op: key state is read live from Ebitengine, and the last
// rendered world stays on screen until the new game's first Render.
func (g *Game) Reset() {}

func (g *Game) SetScore(score int)   { g.score = score }
func (g *Game) SetLives(lives int)   { g.lives = lives }
func (g *Game) SetShield(shield int) { g.shield = shield }

// GameOver shows the final score for bannerDuration.
func (g *Game) GameOver(outcome loop.Phase, score int) {
	g.banner = loop.GameOverMessage(outcome, score)
	g.bannerUntil = g.now + bannerDuration
	g.log.Info(g.banner)
}

var _ ebiten.Game = (*Game)(nil)
