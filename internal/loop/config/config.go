// Package config centralizes all tunable game parameters.
package config

import "time"

// Playfield defaults, in logical pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Scoring
const (
	ScoreEnemyKill = 100
)

// Player
const (
	PlayerWidth        = 50
	PlayerHeight       = 30
	PlayerSpeed        = 5.0
	PlayerBottomMargin = 10 // Gap between the ship and the bottom edge
	InitialLives       = 3
	ShootDelay         = 250 * time.Millisecond
	PlayerBulletSpeed  = 7.0
	DoubleShotInset    = 10.0 // Horizontal inset of the two double-shot muzzles
	DoubleShotDuration = 10 * time.Second
)

// Shield
const (
	ShieldMax = 100
	ShieldHit = 25 // Shield lost per absorbed hit

	ShieldRadiusFactor = 0.8 // Ring radius as a fraction of the ship's width
)

// Enemies
const (
	EnemyWidth        = 40
	EnemyHeight       = 30
	EnemySpeed        = 3.0
	EnemyShootDelay   = 1500 * time.Millisecond
	EnemyBulletSpeed  = 5.0
	EnemyFireChance   = 0.01 // Per enemy, per group move
	EnemyDropDistance = 30.0
	EnemyHullInset    = 10.0 // Inset of the hull's bottom corners
	EnemyEyeRadius    = 5.0
	GroupMoveDelay    = 200 * time.Millisecond
)

// Enemy grid layout
const (
	GridRows    = 3
	GridCols    = 8
	GridSpacing = 60.0 // Column spacing
	GridRowGap  = 50.0 // Row spacing
	GridOffsetX = 100.0
	GridOffsetY = 50.0
)

// Projectiles
const (
	BulletWidth  = 3.0
	BulletHeight = 15.0
)

// Power-ups
const (
	PowerUpSize      = 20
	PowerUpFallSpeed = 2.0
	PowerUpChance    = 0.10
)

// Explosions
const (
	ExplosionParticles     = 8
	ExplosionParticleSpeed = 2.0
	ExplosionMaxAge        = 20 // Ticks
	ParticleSize           = 2.0
)

// Timing
const (
	AmbientCueDelay = 500 * time.Millisecond
	ResetDelay      = 100 * time.Millisecond
)

// Host rendering
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Terminal hosts
const (
	MaxTermWidth  = 200 // Columns beyond this are left as border
	MaxTermHeight = 75  // Rows beyond this are left as border
)
