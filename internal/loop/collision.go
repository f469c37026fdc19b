package loop

import (
	"time"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// checkCollisions resolves the three collision passes in a fixed order.
func (d *Driver) checkCollisions(now time.Duration) {
	d.checkPlayerBullets()
	d.checkEnemyBullets()
	d.checkPowerUps(now)
}

// checkPlayerBullets matches player bullets against enemies. Both lists are
// scanned from the back so removals never skip an element; a bullet destroys
// at most one enemy.
func (d *Driver) checkPlayerBullets() {
	w := d.world
	p := w.Player

	for i := len(p.Bullets) - 1; i >= 0; i-- {
		pos := p.Bullets[i].Position()
		for j := len(w.Enemies) - 1; j >= 0; j-- {
			if !physics.PointInBox(pos, w.Enemies[j].Bounds()) {
				continue
			}
			d.destroyEnemy(j)
			p.Bullets = object.RemoveAt(p.Bullets, i)
			break
		}
	}
}

// destroyEnemy removes the j-th enemy, scores it and may drop a power-up.
func (d *Driver) destroyEnemy(j int) {
	w := d.world
	e := w.Enemies[j]

	d.sinks.Audio.Play(cueExplosion)
	c := e.Center()
	w.AddExplosion(c.X, c.Y, object.ColorOrange)
	w.AddExplosion(c.X, c.Y, object.ColorRed)

	w.Enemies = object.RemoveAt(w.Enemies, j)
	w.Score += config.ScoreEnemyKill
	d.sinks.Scoreboard.SetScore(w.Score)

	if pu := d.spawner.RollPowerUp(e.X, e.Y); pu != nil {
		w.PowerUps = append(w.PowerUps, pu)
	}
}

// checkEnemyBullets tests each enemy bullet's center against the ship's
// triangle. The shield absorbs a hit before a life is lost.
func (d *Driver) checkEnemyBullets() {
	w := d.world
	p := w.Player

	for _, e := range w.Enemies {
		for i := len(e.Bullets) - 1; i >= 0; i-- {
			c := e.Bullets[i].Center()
			if !p.Hits(c) {
				continue
			}
			e.Bullets = object.RemoveAt(e.Bullets, i)

			shield, lives := p.Shield, p.Lives
			if p.TakeHit() {
				w.AddExplosion(c.X, c.Y, object.ColorMagenta)
				if p.Shield != shield {
					d.sinks.Scoreboard.SetShield(p.Shield)
				}
				continue
			}
			w.AddExplosion(c.X, c.Y, object.ColorRed)
			if p.Lives != lives {
				d.sinks.Scoreboard.SetLives(p.Lives)
			}
			if p.Dead() {
				d.finish(PhaseLost)
			}
		}
	}
}

// checkPowerUps applies every power-up whose box overlaps the ship.
func (d *Driver) checkPowerUps(now time.Duration) {
	w := d.world
	p := w.Player

	for i := len(w.PowerUps) - 1; i >= 0; i-- {
		pu := w.PowerUps[i]
		if !physics.BoxesOverlap(pu.Bounds(), p.Bounds()) {
			continue
		}
		d.sinks.Audio.Play(cuePowerUp)

		switch pu.Kind {
		case object.PowerUpDoubleShot:
			p.ActivateDoubleShot(now)
		case object.PowerUpShield:
			p.ChargeShield()
			d.sinks.Scoreboard.SetShield(p.Shield)
		}
		w.PowerUps = object.RemoveAt(w.PowerUps, i)
	}
}

// checkWinCondition ends the game once the formation is gone.
func (d *Driver) checkWinCondition() {
	if len(d.world.Enemies) == 0 {
		d.finish(PhaseWon)
	}
}
