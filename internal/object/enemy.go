package object

import (
	"time"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

// Enemy is a single invader of the descending grid.
type Enemy struct {
	X, Y          float64 // Top-left position
	Width, Height float64
	Direction     int     // +1 moving right, -1 moving left
	Speed         float64 // Horizontal step per group move
	Bullets       []*Projectile

	ShootDelay time.Duration // Minimum time between shots
	lastShot   time.Duration
}

// NewEnemy creates an enemy at (x, y) heading right.
func NewEnemy(x, y float64) *Enemy {
	return &Enemy{
		X:          x,
		Y:          y,
		Width:      config.EnemyWidth,
		Height:     config.EnemyHeight,
		Direction:  1,
		Speed:      config.EnemySpeed,
		ShootDelay: config.EnemyShootDelay,
		lastShot:   never,
	}
}

// Step moves the enemy one group step in its current direction.
func (e *Enemy) Step() {
	e.X += e.Speed * float64(e.Direction)
}

// AtBound reports whether the enemy has reached the horizontal bound it is
// heading towards.
func (e *Enemy) AtBound(screen Screen) bool {
	return (e.X <= 0 && e.Direction < 0) ||
		(e.X+e.Width >= screen.W() && e.Direction > 0)
}

// Reverse flips the enemy's direction and drops it down by drop.
func (e *Enemy) Reverse(drop float64) {
	e.Direction = -e.Direction
	e.Y += drop
}

// AttemptShoot fires from the enemy's bottom-center if its cooldown has
// elapsed, reporting whether a shot was fired.
func (e *Enemy) AttemptShoot(now time.Duration) bool {
	if now-e.lastShot < e.ShootDelay {
		return false
	}
	e.Bullets = append(e.Bullets, NewProjectile(e.X+e.Width/2, e.Y+e.Height, config.EnemyBulletSpeed))
	e.lastShot = now
	return true
}

// UpdateBullets drops bullets that left the bottom of the screen and moves the rest.
func (e *Enemy) UpdateBullets(screen Screen) {
	e.Bullets = advanceProjectiles(e.Bullets, screen)
}

// Bounds returns the enemy's bounding box.
func (e *Enemy) Bounds() physics.Box {
	return physics.Box{X: e.X, Y: e.Y, W: e.Width, H: e.Height}
}

// Center returns the center of the enemy.
func (e *Enemy) Center() physics.Point {
	return e.Bounds().Center()
}

// Hull returns the enemy's pentagon outline: top-middle, right-middle,
// bottom-right, bottom-left, left-middle.
func (e *Enemy) Hull() [5]physics.Point {
	return [5]physics.Point{
		{X: e.X + e.Width/2, Y: e.Y},
		{X: e.X + e.Width, Y: e.Y + e.Height/2},
		{X: e.X + e.Width - config.EnemyHullInset, Y: e.Y + e.Height},
		{X: e.X + config.EnemyHullInset, Y: e.Y + e.Height},
		{X: e.X, Y: e.Y + e.Height/2},
	}
}

// Eyes returns the centers of the enemy's two eyes.
func (e *Enemy) Eyes() (left, right physics.Point) {
	y := e.Y + e.Height/3
	return physics.Point{X: e.X + e.Width/3, Y: y}, physics.Point{X: e.X + e.Width*2/3, Y: y}
}
