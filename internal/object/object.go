// Package object holds the game entities: the player ship, the enemy grid,
// projectiles, power-ups and explosions. Entities own their position and
// timers but know nothing about each other; all interaction is driven by the
// loop package.
package object

import (
	"image/color"
	"math"
	"slices"
	"time"

	"golang.org/x/image/colornames"
)

// never is the timestamp of an event that has not happened yet. It is far
// enough in the past that any cooldown measured from it has already elapsed.
const never = time.Duration(math.MinInt64 / 2)

// Rand is the source of randomness used for spawning and enemy fire.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Screen represents the playfield dimensions.
type Screen struct {
	Width  int
	Height int
}

// NewScreen creates a playfield of the given size.
func NewScreen(width, height int) Screen {
	return Screen{Width: width, Height: height}
}

// W returns the width as a float.
func (s Screen) W() float64 {
	return float64(s.Width)
}

// H returns the height as a float.
func (s Screen) H() float64 {
	return float64(s.Height)
}

// Palette used by entities and renderers.
var (
	ColorBackground = color.RGBA{R: 0x00, G: 0x00, B: 0x33, A: 0xff}
	ColorPlayer     = colornames.Green
	ColorShield     = colornames.Magenta
	ColorBullet     = colornames.Yellow
	ColorDoubleShot = colornames.Cyan
	ColorEnemy      = colornames.Red
	ColorEnemyEyes  = colornames.Lime
	ColorOrange     = colornames.Orange
	ColorRed        = colornames.Red
	ColorMagenta    = colornames.Magenta
	ColorWhite      = colornames.White
)

// RemoveAt removes the element at index i, preserving order.
func RemoveAt[T any](items []*T, i int) []*T {
	return slices.Delete(items, i, i+1)
}
