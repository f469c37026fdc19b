package loop

import (
	"image/color"
	"math"
	"time"

	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/object"
)

// never is the timestamp of a cadence that has not fired yet, so the first
// check after initialization is always eligible.
const never = time.Duration(math.MinInt64 / 2)

// Phase represents the game's top-level state.
type Phase int

const (
	PhaseInitializing Phase = iota // Building a fresh world
	PhasePlaying                   // Active gameplay
	PhaseWon                       // Enemy roster emptied, waiting for reset
	PhaseLost                      // Player out of lives, waiting for reset
)

// String returns the phase's name.
func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends a game.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// World holds the live game state. It is owned and mutated by the Driver
// only; renderers receive it read-only, once per tick.
type World struct {
	Screen     object.Screen
	Player     *object.Player
	Enemies    []*object.Enemy
	PowerUps   []*object.PowerUp
	Explosions []*object.Explosion
	Input      input.Input // Controls polled this tick
	Score      int
	Phase      Phase

	lastGroupMove  time.Duration
	lastAmbientCue time.Duration
}

// NewWorld creates a fresh world: a new ship and a new enemy grid.
func NewWorld(screen object.Screen, spawner *object.Spawner) *World {
	return &World{
		Screen:         screen,
		Player:         object.NewPlayer(screen),
		Enemies:        spawner.BuildGrid(),
		Phase:          PhaseInitializing,
		lastGroupMove:  never,
		lastAmbientCue: never,
	}
}

// AddExplosion spawns an explosion at (x, y).
func (w *World) AddExplosion(x, y float64, clr color.RGBA) {
	w.Explosions = append(w.Explosions, object.NewExplosion(x, y, clr))
}
