package object

import (
	"image/color"
	"math"

	"github.com/tomz197/invaders/internal/loop/config"
)

// Particle is one fragment of an explosion.
type Particle struct {
	X, Y   float64 // Position
	VX, VY float64 // Constant velocity per tick
}

// Explosion is a short-lived burst of particles radiating from an origin.
type Explosion struct {
	X, Y      float64 // Origin
	Particles [config.ExplosionParticles]Particle
	Color     color.RGBA
	Age       int // Ticks since creation
	MaxAge    int
}

// NewExplosion creates an explosion at (x, y). Particles leave the origin at
// equal angular spacing with the same speed.
func NewExplosion(x, y float64, clr color.RGBA) *Explosion {
	e := &Explosion{
		X:      x,
		Y:      y,
		Color:  clr,
		MaxAge: config.ExplosionMaxAge,
	}
	for i := range e.Particles {
		angle := 2 * math.Pi / config.ExplosionParticles * float64(i)
		e.Particles[i] = Particle{
			X:  x,
			Y:  y,
			VX: math.Cos(angle) * config.ExplosionParticleSpeed,
			VY: math.Sin(angle) * config.ExplosionParticleSpeed,
		}
	}
	return e
}

// Update ages the explosion by one tick and moves its particles.
func (e *Explosion) Update() {
	e.Age++
	for i := range e.Particles {
		p := &e.Particles[i]
		p.X += p.VX
		p.Y += p.VY
	}
}

// Finished reports whether the explosion has reached its maximum age.
func (e *Explosion) Finished() bool {
	return e.Age >= e.MaxAge
}
