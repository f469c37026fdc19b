package object

import (
	"image/color"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

// PowerUpKind identifies the effect of a power-up.
type PowerUpKind int

const (
	PowerUpDoubleShot PowerUpKind = iota
	PowerUpShield
)

// String returns the kind's name.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpDoubleShot:
		return "doubleShot"
	case PowerUpShield:
		return "shield"
	default:
		return "unknown"
	}
}

// PowerUp is a collectible dropped by a destroyed enemy. It falls until
// collected or until it leaves the bottom of the screen.
type PowerUp struct {
	X, Y          float64
	Width, Height float64
	Kind          PowerUpKind
	Speed         float64 // Fall speed per tick
}

// NewPowerUp creates a power-up of the given kind at (x, y).
func NewPowerUp(x, y float64, kind PowerUpKind) *PowerUp {
	return &PowerUp{
		X:      x,
		Y:      y,
		Width:  config.PowerUpSize,
		Height: config.PowerUpSize,
		Kind:   kind,
		Speed:  config.PowerUpFallSpeed,
	}
}

// Update moves the power-up down.
func (p *PowerUp) Update() {
	p.Y += p.Speed
}

// OffScreen reports whether the power-up has fallen below the playfield.
func (p *PowerUp) OffScreen(screen Screen) bool {
	return p.Y > screen.H()
}

// Bounds returns the power-up's bounding box.
func (p *PowerUp) Bounds() physics.Box {
	return physics.Box{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Color returns the display color for the power-up's kind.
func (p *PowerUp) Color() color.RGBA {
	if p.Kind == PowerUpDoubleShot {
		return ColorDoubleShot
	}
	return ColorShield
}
