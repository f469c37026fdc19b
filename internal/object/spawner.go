package object

import "github.com/tomz197/invaders/internal/loop/config"

// Spawner builds the enemy grid and decides power-up drops.
type Spawner struct {
	rows int
	cols int
	rng  Rand
}

// NewSpawner creates a spawner for a rows x cols enemy grid.
func NewSpawner(rows, cols int, rng Rand) *Spawner {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Spawner{
		rows: rows,
		cols: cols,
		rng:  rng,
	}
}

// BuildGrid creates the enemy formation, row by row.
func (s *Spawner) BuildGrid() []*Enemy {
	enemies := make([]*Enemy, 0, s.rows*s.cols)
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			enemies = append(enemies, NewEnemy(
				float64(col)*config.GridSpacing+config.GridOffsetX,
				float64(row)*config.GridRowGap+config.GridOffsetY,
			))
		}
	}
	return enemies
}

// RollPowerUp returns a power-up at (x, y) with probability PowerUpChance,
// or nil. The kind is chosen uniformly.
func (s *Spawner) RollPowerUp(x, y float64) *PowerUp {
	if s.rng.Float64() >= config.PowerUpChance {
		return nil
	}
	kind := PowerUpShield
	if s.rng.Float64() < 0.5 {
		kind = PowerUpDoubleShot
	}
	return NewPowerUp(x, y, kind)
}
