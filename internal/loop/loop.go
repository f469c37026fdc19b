// Package loop drives the game: it owns the world, advances it one tick at a
// time and reports to the host through its sinks.
package loop

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

// Options configures a Driver. Zero values fall back to the defaults.
type Options struct {
	Width, Height int
	Rows, Cols    int
	Rand          object.Rand
	Logger        *log.Logger
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = config.DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = config.DefaultHeight
	}
	if o.Rows <= 0 {
		o.Rows = config.GridRows
	}
	if o.Cols <= 0 {
		o.Cols = config.GridCols
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Driver is the game's state machine. Hosts call Tick once per frame with a
// monotonic timestamp; all timers in the game are measured against it.
type Driver struct {
	sinks   Sinks
	screen  object.Screen
	spawner *object.Spawner
	rng     object.Rand
	log     *log.Logger

	world   *World
	resetAt time.Duration
}

// NewDriver creates a Driver in the initializing phase. Every sink is
// required.
func NewDriver(sinks Sinks, opts Options) (*Driver, error) {
	if err := sinks.validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	d := &Driver{
		sinks:   sinks,
		screen:  object.NewScreen(opts.Width, opts.Height),
		spawner: object.NewSpawner(opts.Rows, opts.Cols, opts.Rand),
		rng:     opts.Rand,
		log:     opts.Logger,
	}
	d.world = NewWorld(d.screen, d.spawner)
	return d, nil
}

// World returns the current world. It is replaced on every reset.
func (d *Driver) World() *World {
	return d.world
}

// Phase returns the current phase.
func (d *Driver) Phase() Phase {
	return d.world.Phase
}

// ResetAt returns the time a finished game resets, and whether one is
// pending.
func (d *Driver) ResetAt() (time.Duration, bool) {
	return d.resetAt, d.world.Phase.Terminal()
}

// Start builds a fresh game and enters the playing phase.
func (d *Driver) Start(now time.Duration) {
	d.world = NewWorld(d.screen, d.spawner)
	d.resetAt = 0

	d.sinks.Scoreboard.SetScore(d.world.Score)
	d.sinks.Scoreboard.SetLives(d.world.Player.Lives)
	d.sinks.Scoreboard.SetShield(d.world.Player.Shield)
	d.sinks.Controls.Reset()

	d.sinks.Audio.Play(cueAmbientMove)
	d.world.lastAmbientCue = now

	d.world.Phase = PhasePlaying
	d.log.Debug("game started", "enemies", len(d.world.Enemies))
}

// Tick advances the game by one frame.
func (d *Driver) Tick(now time.Duration) error {
	if d.world.Phase == PhaseInitializing {
		d.Start(now)
	}

	switch d.world.Phase {
	case PhasePlaying:
		d.update(now)
		if err := d.sinks.Renderer.Render(d.world); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		if d.world.Phase.Terminal() {
			d.scheduleReset(now)
		}
	case PhaseWon, PhaseLost:
		if now >= d.resetAt {
			d.sinks.Notifier.GameOver(d.world.Phase, d.world.Score)
			d.Start(now)
		}
	}
	return nil
}

// update runs one playing tick in its fixed order.
func (d *Driver) update(now time.Duration) {
	d.world.Input = d.sinks.Controls.Poll()

	d.movePlayer(now)
	d.moveEnemies(now)
	d.playAmbientCue(now)
	d.advanceProjectiles()
	d.updatePowerUps()
	d.checkCollisions(now)
	d.checkWinCondition()
	d.updateExplosions()
}

// finish moves a playing game into a terminal phase. Later calls are no-ops,
// so a loss recorded first is not overwritten by a win in the same tick.
func (d *Driver) finish(outcome Phase) {
	if d.world.Phase != PhasePlaying {
		return
	}
	d.world.Phase = outcome
}

func (d *Driver) scheduleReset(now time.Duration) {
	d.sinks.Audio.Stop(SoundAmbientMove)
	d.resetAt = now + config.ResetDelay
	d.log.Info("game over", "outcome", d.world.Phase, "score", d.world.Score)
}
