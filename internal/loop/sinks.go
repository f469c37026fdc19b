package loop

import (
	"errors"
	"fmt"

	"github.com/tomz197/invaders/internal/input"
)

// ErrMissingSink is returned when a Driver is built without one of its
// external collaborators.
var ErrMissingSink = errors.New("missing sink")

// Renderer draws the world. It is invoked once per playing tick.
type Renderer interface {
	Render(w *World) error
}

// Sound names an audio event.
type Sound string

const (
	SoundShoot       Sound = "shoot"
	SoundEnemyShoot  Sound = "enemyShoot"
	SoundExplosion   Sound = "explosion"
	SoundPowerUp     Sound = "powerup"
	SoundAmbientMove Sound = "ambientMove"
)

// Cue is a fire-and-forget sound trigger with playback hints.
type Cue struct {
	Sound  Sound
	Volume float64 // 0..1
	Rate   float64 // Playback rate, 1 = normal
}

// Audio plays sound cues. Implementations must not block.
type Audio interface {
	Play(c Cue)
	Stop(s Sound)
}

// Scoreboard displays score, lives and shield. Each setter is called
// whenever its value changes.
type Scoreboard interface {
	SetScore(score int)
	SetLives(lives int)
	SetShield(shield int)
}

// Controls provides polled key state. Reset is called on every game
// initialization and must be idempotent.
type Controls interface {
	Poll() input.Input
	Reset()
}

// Notifier surfaces the end of a game. Returning signals readiness to reset.
type Notifier interface {
	GameOver(outcome Phase, score int)
}

// Sinks groups the Driver's external collaborators.
type Sinks struct {
	Renderer   Renderer
	Audio      Audio
	Scoreboard Scoreboard
	Controls   Controls
	Notifier   Notifier
}

// validate reports the first missing collaborator.
func (s Sinks) validate() error {
	switch {
	case s.Renderer == nil:
		return fmt.Errorf("%w: renderer", ErrMissingSink)
	case s.Audio == nil:
		return fmt.Errorf("%w: audio", ErrMissingSink)
	case s.Scoreboard == nil:
		return fmt.Errorf("%w: scoreboard", ErrMissingSink)
	case s.Controls == nil:
		return fmt.Errorf("%w: controls", ErrMissingSink)
	case s.Notifier == nil:
		return fmt.Errorf("%w: notifier", ErrMissingSink)
	}
	return nil
}

// Cues used by the game, with the volume and rate hints of each event.
var (
	cueShoot       = Cue{Sound: SoundShoot, Volume: 1.0, Rate: 1.0}
	cueEnemyShoot  = Cue{Sound: SoundEnemyShoot, Volume: 0.4, Rate: 1.0}
	cueExplosion   = Cue{Sound: SoundExplosion, Volume: 1.0, Rate: 1.0}
	cuePowerUp     = Cue{Sound: SoundPowerUp, Volume: 0.4, Rate: 1.0}
	cueAmbientMove = Cue{Sound: SoundAmbientMove, Volume: 0.5, Rate: 1.5}
)

// GameOverMessage is the text notifiers show when a game ends.
func GameOverMessage(outcome Phase, score int) string {
	if outcome == PhaseWon {
		return fmt.Sprintf("You win! Final Score: %d", score)
	}
	return fmt.Sprintf("Game Over! Final Score: %d", score)
}
