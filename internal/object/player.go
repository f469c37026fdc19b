package object

import (
	"time"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

// Player is the ship at the bottom of the playfield.
type Player struct {
	X, Y          float64 // Top-left position
	Width, Height float64
	Speed         float64 // Lateral movement per tick
	Bullets       []*Projectile
	Lives         int
	Shield        int  // 0..ShieldMax
	DoubleShot    bool // Two bullets per shot while active

	// Shooting
	ShootDelay      time.Duration // Minimum time between shots
	lastShot        time.Duration
	doubleShotUntil time.Duration
}

// NewPlayer creates a ship centered horizontally near the bottom of screen.
func NewPlayer(screen Screen) *Player {
	return &Player{
		X:          screen.W()/2 - config.PlayerWidth/2,
		Y:          screen.H() - config.PlayerHeight - config.PlayerBottomMargin,
		Width:      config.PlayerWidth,
		Height:     config.PlayerHeight,
		Speed:      config.PlayerSpeed,
		Lives:      config.InitialLives,
		ShootDelay: config.ShootDelay,
		lastShot:   never,
	}
}

// Move shifts the ship one step left and/or right, staying on screen.
func (p *Player) Move(left, right bool, screen Screen) {
	if left && p.X > 0 {
		p.X -= p.Speed
	}
	if right && p.X+p.Width < screen.W() {
		p.X += p.Speed
	}
}

// Update advances the ship's timers. Double shot reverts once its
// deadline has passed.
func (p *Player) Update(now time.Duration) {
	if p.DoubleShot && now >= p.doubleShotUntil {
		p.DoubleShot = false
	}
}

// AttemptShoot fires if the shot cooldown has elapsed and reports whether a
// shot was fired. Bullets leave from the nose, or from two symmetric points
// while double shot is active.
func (p *Player) AttemptShoot(now time.Duration) bool {
	if now-p.lastShot < p.ShootDelay {
		return false
	}

	if p.DoubleShot {
		p.Bullets = append(p.Bullets,
			NewProjectile(p.X+config.DoubleShotInset, p.Y, -config.PlayerBulletSpeed),
			NewProjectile(p.X+p.Width-config.DoubleShotInset, p.Y, -config.PlayerBulletSpeed),
		)
	} else {
		p.Bullets = append(p.Bullets, NewProjectile(p.X+p.Width/2, p.Y, -config.PlayerBulletSpeed))
	}
	p.lastShot = now
	return true
}

// UpdateBullets drops bullets that left the top of the screen and moves the rest.
func (p *Player) UpdateBullets(screen Screen) {
	p.Bullets = advanceProjectiles(p.Bullets, screen)
}

// ActivateDoubleShot enables double shot until now+DoubleShotDuration.
func (p *Player) ActivateDoubleShot(now time.Duration) {
	p.DoubleShot = true
	p.doubleShotUntil = now + config.DoubleShotDuration
}

// DoubleShotUntil returns when the current double shot expires.
func (p *Player) DoubleShotUntil() time.Duration {
	return p.doubleShotUntil
}

// ChargeShield sets the shield to full, replacing any remaining charge.
func (p *Player) ChargeShield() {
	p.Shield = config.ShieldMax
}

// TakeHit applies one enemy hit. A charged shield absorbs it and loses
// ShieldHit; otherwise the ship loses a life. Both values floor at zero.
// Returns true if the shield absorbed the hit.
func (p *Player) TakeHit() bool {
	if p.Shield > 0 {
		p.Shield -= config.ShieldHit
		if p.Shield < 0 {
			p.Shield = 0
		}
		return true
	}

	p.Lives--
	if p.Lives < 0 {
		p.Lives = 0
	}
	return false
}

// Dead reports whether the ship has no lives left.
func (p *Player) Dead() bool {
	return p.Lives <= 0
}

// Bounds returns the ship's bounding box.
func (p *Player) Bounds() physics.Box {
	return physics.Box{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Hitbox returns the ship's triangular silhouette: apex at top-center,
// base corners at bottom-left and bottom-right.
func (p *Player) Hitbox() (apex, left, right physics.Point) {
	apex = physics.Point{X: p.X + p.Width/2, Y: p.Y}
	left = physics.Point{X: p.X, Y: p.Y + p.Height}
	right = physics.Point{X: p.X + p.Width, Y: p.Y + p.Height}
	return apex, left, right
}

// Hits reports whether pt lies within the ship's triangular silhouette.
func (p *Player) Hits(pt physics.Point) bool {
	apex, left, right := p.Hitbox()
	return physics.PointInTriangle(pt, apex, left, right)
}

// ShieldRing returns the center and radius of the shield ring.
func (p *Player) ShieldRing() (center physics.Point, radius float64) {
	return p.Bounds().Center(), p.Width * config.ShieldRadiusFactor
}
