package object

import (
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

// Projectile is a bullet owned by the player or by a single enemy.
// The sign of VY is its direction of travel: negative moves up the screen.
type Projectile struct {
	X, Y float64 // Top-left position
	VY   float64 // Vertical velocity per tick
}

// NewProjectile creates a projectile at (x, y) moving vy per tick.
func NewProjectile(x, y, vy float64) *Projectile {
	return &Projectile{X: x, Y: y, VY: vy}
}

// Update moves the projectile by its velocity.
func (p *Projectile) Update() {
	p.Y += p.VY
}

// OnScreen reports whether the projectile is still inside the playfield in
// its direction of travel: above the top for upward shots, below the bottom
// for downward ones.
func (p *Projectile) OnScreen(screen Screen) bool {
	if p.VY < 0 {
		return p.Y > 0
	}
	return p.Y < screen.H()
}

// Position returns the projectile's anchor point.
func (p *Projectile) Position() physics.Point {
	return physics.Point{X: p.X, Y: p.Y}
}

// Center returns the visual centroid of the projectile.
func (p *Projectile) Center() physics.Point {
	return p.Bounds().Center()
}

// Bounds returns the projectile's rendering box.
func (p *Projectile) Bounds() physics.Box {
	return physics.Box{X: p.X, Y: p.Y, W: config.BulletWidth, H: config.BulletHeight}
}

// advanceProjectiles drops projectiles that have left the playfield, then
// moves the remaining ones.
func advanceProjectiles(projectiles []*Projectile, screen Screen) []*Projectile {
	kept := projectiles[:0] // reuse backing array
	for _, p := range projectiles {
		if p.OnScreen(screen) {
			kept = append(kept, p)
		}
	}
	clear(projectiles[len(kept):])

	for _, p := range kept {
		p.Update()
	}
	return kept
}

// Bolt returns the zig-zag polyline enemy bullets are drawn as.
func (p *Projectile) Bolt() [4]physics.Point {
	return [4]physics.Point{
		{X: p.X, Y: p.Y},
		{X: p.X + 4, Y: p.Y + 5},
		{X: p.X - 2, Y: p.Y + 10},
		{X: p.X + 2, Y: p.Y + 15},
	}
}
