package loop

import (
	"time"

	"github.com/tomz197/invaders/internal/loop/config"
)

// movePlayer steers the ship from the polled controls and fires when the
// cooldown allows.
func (d *Driver) movePlayer(now time.Duration) {
	w := d.world
	p := w.Player

	p.Move(w.Input.Left, w.Input.Right, w.Screen)
	p.Update(now)

	if w.Input.Fire && p.AttemptShoot(now) {
		d.sinks.Audio.Play(cueShoot)
	}
}

// moveEnemies advances the whole formation once per group-move interval.
// Every enemy steps first; if any of them reached a screen edge the entire
// group reverses and drops. Fire rolls ride on the same cadence.
func (d *Driver) moveEnemies(now time.Duration) {
	w := d.world
	if now-w.lastGroupMove < config.GroupMoveDelay {
		return
	}

	reverse := false
	for _, e := range w.Enemies {
		e.Step()
		if e.AtBound(w.Screen) {
			reverse = true
		}
		if d.rng.Float64() < config.EnemyFireChance && e.AttemptShoot(now) {
			d.sinks.Audio.Play(cueEnemyShoot)
		}
	}

	if reverse {
		for _, e := range w.Enemies {
			e.Reverse(config.EnemyDropDistance)
		}
	}
	w.lastGroupMove = now
}

// playAmbientCue emits the marching cue at its own fixed cadence.
func (d *Driver) playAmbientCue(now time.Duration) {
	w := d.world
	if now-w.lastAmbientCue < config.AmbientCueDelay {
		return
	}
	d.sinks.Audio.Play(cueAmbientMove)
	w.lastAmbientCue = now
}

// advanceProjectiles moves every bullet, dropping those that left the screen.
func (d *Driver) advanceProjectiles() {
	w := d.world
	w.Player.UpdateBullets(w.Screen)
	for _, e := range w.Enemies {
		e.UpdateBullets(w.Screen)
	}
}

// updatePowerUps moves falling power-ups and purges those below the screen.
func (d *Driver) updatePowerUps() {
	w := d.world
	kept := w.PowerUps[:0]
	for _, pu := range w.PowerUps {
		pu.Update()
		if !pu.OffScreen(w.Screen) {
			kept = append(kept, pu)
		}
	}
	clear(w.PowerUps[len(kept):])
	w.PowerUps = kept
}

// updateExplosions ages explosions and removes the finished ones.
func (d *Driver) updateExplosions() {
	w := d.world
	kept := w.Explosions[:0]
	for _, ex := range w.Explosions {
		if ex.Finished() {
			continue
		}
		ex.Update()
		kept = append(kept, ex)
	}
	clear(w.Explosions[len(kept):])
	w.Explosions = kept
}
