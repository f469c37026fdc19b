package loop

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

const frame = 16 * time.Millisecond

type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

// recorder implements every sink and records what the driver reported.
type recorder struct {
	renders   int
	renderErr error

	cues  []Cue
	stops []Sound

	scores, lives, shields []int

	input  input.Input
	resets int

	outcomes    []Phase
	finalScores []int
}

func (r *recorder) Render(*World) error {
	r.renders++
	return r.renderErr
}

func (r *recorder) Play(c Cue)           { r.cues = append(r.cues, c) }
func (r *recorder) Stop(s Sound)         { r.stops = append(r.stops, s) }
func (r *recorder) SetScore(score int)   { r.scores = append(r.scores, score) }
func (r *recorder) SetLives(lives int)   { r.lives = append(r.lives, lives) }
func (r *recorder) SetShield(shield int) { r.shields = append(r.shields, shield) }
func (r *recorder) Poll() input.Input    { return r.input }
func (r *recorder) Reset()               { r.resets++ }

func (r *recorder) GameOver(outcome Phase, score int) {
	r.outcomes = append(r.outcomes, outcome)
	r.finalScores = append(r.finalScores, score)
}

func (r *recorder) sinks() Sinks {
	return Sinks{Renderer: r, Audio: r, Scoreboard: r, Controls: r, Notifier: r}
}

func (r *recorder) count(s Sound) int {
	n := 0
	for _, c := range r.cues {
		if c.Sound == s {
			n++
		}
	}
	return n
}

func last(values []int) int {
	if len(values) == 0 {
		return -1
	}
	return values[len(values)-1]
}

func newTestDriver(t *testing.T, rows, cols int, rng float64) (*Driver, *recorder) {
	t.Helper()
	rec := &recorder{}
	d, err := NewDriver(rec.sinks(), Options{Rows: rows, Cols: cols, Rand: fixedRand(rng)})
	require.NoError(t, err)
	return d, rec
}

func TestNewDriverRequiresEverySink(t *testing.T) {
	rec := &recorder{}
	tests := []struct {
		name  string
		strip func(*Sinks)
	}{
		{"renderer", func(s *Sinks) { s.Renderer = nil }},
		{"audio", func(s *Sinks) { s.Audio = nil }},
		{"scoreboard", func(s *Sinks) { s.Scoreboard = nil }},
		{"controls", func(s *Sinks) { s.Controls = nil }},
		{"notifier", func(s *Sinks) { s.Notifier = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sinks := rec.sinks()
			tt.strip(&sinks)
			d, err := NewDriver(sinks, Options{})
			assert.Nil(t, d)
			assert.ErrorIs(t, err, ErrMissingSink)
			assert.Contains(t, err.Error(), tt.name)
		})
	}
}

func TestNewDriverStartsInitializing(t *testing.T) {
	d, rec := newTestDriver(t, 0, 0, 0.5)
	assert.Equal(t, PhaseInitializing, d.Phase())
	assert.Len(t, d.World().Enemies, config.GridRows*config.GridCols)
	assert.Zero(t, rec.renders)
}

func TestStartResetsDisplaysAndControls(t *testing.T) {
	d, rec := newTestDriver(t, 0, 0, 0.5)
	d.Start(0)

	assert.Equal(t, PhasePlaying, d.Phase())
	assert.Equal(t, []int{0}, rec.scores)
	assert.Equal(t, []int{config.InitialLives}, rec.lives)
	assert.Equal(t, []int{0}, rec.shields)
	assert.Equal(t, 1, rec.resets)
	assert.Equal(t, 1, rec.count(SoundAmbientMove))
}

func TestFirstTickStartsAndRenders(t *testing.T) {
	d, rec := newTestDriver(t, 1, 1, 0.5)
	require.NoError(t, d.Tick(0))

	assert.Equal(t, PhasePlaying, d.Phase())
	assert.Equal(t, 1, rec.renders)
	assert.Equal(t, 1, rec.resets)
}

func TestRenderErrorIsReturned(t *testing.T) {
	d, rec := newTestDriver(t, 1, 1, 0.5)
	rec.renderErr = errors.New("closed pipe")

	err := d.Tick(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, rec.renderErr)
}

func TestPlayerFiresOnInput(t *testing.T) {
	d, rec := newTestDriver(t, 1, 1, 0.5)
	d.Start(0)
	rec.input = input.Input{Fire: true}

	require.NoError(t, d.Tick(frame))
	assert.Len(t, d.World().Player.Bullets, 1)
	assert.Equal(t, 1, rec.count(SoundShoot))

	// Still cooling down.
	require.NoError(t, d.Tick(2*frame))
	assert.Len(t, d.World().Player.Bullets, 1)
	assert.Equal(t, 1, rec.count(SoundShoot))
}

func TestPlayerMovesOnInput(t *testing.T) {
	d, rec := newTestDriver(t, 1, 1, 0.5)
	d.Start(0)
	x := d.World().Player.X

	rec.input = input.Input{Left: true}
	require.NoError(t, d.Tick(frame))
	assert.Equal(t, x-config.PlayerSpeed, d.World().Player.X)
}

func TestGroupMoveCadence(t *testing.T) {
	d, _ := newTestDriver(t, 1, 1, 0.5)
	d.Start(0)
	e := d.World().Enemies[0]

	require.NoError(t, d.Tick(frame))
	assert.Equal(t, float64(config.GridOffsetX)+config.EnemySpeed, e.X)

	require.NoError(t, d.Tick(100*time.Millisecond))
	assert.Equal(t, float64(config.GridOffsetX)+config.EnemySpeed, e.X, "moved before the group interval")

	require.NoError(t, d.Tick(frame+config.GroupMoveDelay))
	assert.Equal(t, float64(config.GridOffsetX)+2*config.EnemySpeed, e.X)
}

func TestGroupReversesAndDropsTogether(t *testing.T) {
	d, _ := newTestDriver(t, 1, 2, 0.5)
	d.Start(0)
	w := d.World()
	left, right := w.Enemies[0], w.Enemies[1]
	right.X = float64(config.DefaultWidth) - right.Width - config.EnemySpeed

	require.NoError(t, d.Tick(frame))

	for _, e := range w.Enemies {
		assert.Equal(t, -1, e.Direction)
		assert.Equal(t, float64(config.GridOffsetY)+config.EnemyDropDistance, e.Y)
	}
	assert.Equal(t, float64(config.GridOffsetX)+config.EnemySpeed, left.X)
}

func TestEnemyFireRollsOnGroupMove(t *testing.T) {
	d, rec := newTestDriver(t, 0, 0, 0.0)
	d.Start(0)

	require.NoError(t, d.Tick(frame))
	assert.Equal(t, config.GridRows*config.GridCols, rec.count(SoundEnemyShoot))
	for _, c := range rec.cues {
		if c.Sound == SoundEnemyShoot {
			assert.Equal(t, 0.4, c.Volume)
		}
	}

	// Every enemy is still cooling down on the next group move.
	require.NoError(t, d.Tick(frame+config.GroupMoveDelay))
	assert.Equal(t, config.GridRows*config.GridCols, rec.count(SoundEnemyShoot))
}

func TestEnemyHoldsFireAboveChance(t *testing.T) {
	d, rec := newTestDriver(t, 0, 0, config.EnemyFireChance)
	d.Start(0)

	require.NoError(t, d.Tick(frame))
	assert.Zero(t, rec.count(SoundEnemyShoot))
}

func TestAmbientCueCadence(t *testing.T) {
	d, rec := newTestDriver(t, 1, 1, 0.5)
	d.Start(0)

	var now time.Duration
	for now = frame; now < config.AmbientCueDelay; now += frame {
		require.NoError(t, d.Tick(now))
	}
	assert.Equal(t, 1, rec.count(SoundAmbientMove))

	require.NoError(t, d.Tick(now))
	assert.Equal(t, 2, rec.count(SoundAmbientMove))
	assert.Equal(t, 1.5, rec.cues[len(rec.cues)-1].Rate)
}

func TestPlayerBulletDestroysEnemy(t *testing.T) {
	// 0.05 drops a power-up and picks double shot.
	d, rec := newTestDriver(t, 0, 0, 0.05)
	d.Start(0)
	w := d.World()
	target := w.Enemies[5]
	c := target.Center()
	w.Player.Bullets = append(w.Player.Bullets, object.NewProjectile(c.X, c.Y, 0))

	require.NoError(t, d.Tick(frame))

	assert.Len(t, w.Enemies, config.GridRows*config.GridCols-1)
	assert.NotContains(t, w.Enemies, target)
	assert.Empty(t, w.Player.Bullets)
	assert.Equal(t, config.ScoreEnemyKill, w.Score)
	assert.Equal(t, config.ScoreEnemyKill, last(rec.scores))
	assert.Equal(t, 1, rec.count(SoundExplosion))

	require.Len(t, w.Explosions, 2)
	assert.Equal(t, object.ColorOrange, w.Explosions[0].Color)
	assert.Equal(t, object.ColorRed, w.Explosions[1].Color)

	require.Len(t, w.PowerUps, 1)
	assert.Equal(t, object.PowerUpDoubleShot, w.PowerUps[0].Kind)
	assert.Equal(t, target.X, w.PowerUps[0].X)
	assert.Equal(t, target.Y, w.PowerUps[0].Y)
}

func TestMissedBulletKeepsFlying(t *testing.T) {
	d, _ := newTestDriver(t, 1, 1, 0.5)
	d.Start(0)
	w := d.World()
	w.Player.Bullets = append(w.Player.Bullets, object.NewProjectile(700, 300, -config.PlayerBulletSpeed))

	require.NoError(t, d.Tick(frame))
	require.Len(t, w.Player.Bullets, 1)
	assert.Equal(t, 300-config.PlayerBulletSpeed, w.Player.Bullets[0].Y)
	assert.Len(t, w.Enemies, 1)
}

// enemyShotAt parks a motionless enemy bullet whose center is at (x, y).
func enemyShotAt(e *object.Enemy, x, y float64) {
	b := object.NewProjectile(x, y, 0)
	c := b.Center()
	b.X -= c.X - x
	b.Y -= c.Y - y
	e.Bullets = append(e.Bullets, b)
}

func TestShieldAbsorbsEnemyBullet(t *testing.T) {
	d, rec := newTestDriver(t, 1, 1, 0.5)
	d.Start(0)
	w := d.World()
	w.Player.Shield = 50
	apex, _, _ := w.Player.Hitbox()
	enemyShotAt(w.Enemies[0], apex.X, apex.Y+20)

	require.NoError(t, d.Tick(frame))

	assert.Empty(t, w.Enemies[0].Bullets)
	assert.Equal(t, 25, w.Player.Shield)
	assert.Equal(t, config.InitialLives, w.Player.Lives)
	assert.Equal(t, 25, last(rec.shields))
	require.Len(t, w.Explosions, 1)
	assert.Equal(t, object.ColorMagenta, w.Explosions[0].Color)
	assert.Equal(t, PhasePlaying, d.Phase())
}

func TestEnemyBulletCostsLife(t *testing.T) {
	d, rec := newTestDriver(t, 1, 1, 0.5)
	d.Start(0)
	w := d.World()
	apex, _, _ := w.Player.Hitbox()
	enemyShotAt(w.Enemies[0], apex.X, apex.Y+20)

	require.NoError(t, d.Tick(frame))

	assert.Equal(t, config.InitialLives-1, w.Player.Lives)
	assert.Equal(t, config.InitialLives-1, last(rec.lives))
	require.Len(t, w.Explosions, 1)
	assert.Equal(t, object.ColorRed, w.Explosions[0].Color)
	assert.Equal(t, PhasePlaying, d.Phase())
}

func TestEnemyBulletOutsideTriangleMisses(t *testing.T) {
	d, _ := newTestDriver(t, 1, 1, 0.5)
	d.Start(0)
	w := d.World()
	p := w.Player
	// Inside the bounding box, outside the silhouette.
	enemyShotAt(w.Enemies[0], p.X+2, p.Y+2)

	require.NoError(t, d.Tick(frame))
	assert.Len(t, w.Enemies[0].Bullets, 1)
	assert.Equal(t, config.InitialLives, p.Lives)
}

func TestCollectShieldPowerUp(t *testing.T) {
	d, rec := newTestDriver(t, 1, 1, 0.5)
	d.Start(0)
	w := d.World()
	p := w.Player
	w.PowerUps = append(w.PowerUps, object.NewPowerUp(p.X+10, p.Y, object.PowerUpShield))

	require.NoError(t, d.Tick(frame))

	assert.Empty(t, w.PowerUps)
	assert.Equal(t, config.ShieldMax, p.Shield)
	assert.Equal(t, config.ShieldMax, last(rec.shields))
	assert.Equal(t, 1, rec.count(SoundPowerUp))
}

func TestCollectDoubleShotPowerUp(t *testing.T) {
	d, rec := newTestDriver(t, 1, 1, 0.5)
	d.Start(0)
	w := d.World()
	p := w.Player
	w.PowerUps = append(w.PowerUps, object.NewPowerUp(p.X+10, p.Y, object.PowerUpDoubleShot))

	require.NoError(t, d.Tick(frame))

	assert.Empty(t, w.PowerUps)
	assert.True(t, p.DoubleShot)
	assert.Equal(t, frame+config.DoubleShotDuration, p.DoubleShotUntil())
	assert.Equal(t, 1, rec.count(SoundPowerUp))

	rec.input = input.Input{Fire: true}
	require.NoError(t, d.Tick(2*frame))
	assert.Len(t, p.Bullets, 2)
}

func TestPowerUpsFallAndLeave(t *testing.T) {
	d, _ := newTestDriver(t, 1, 1, 0.5)
	d.Start(0)
	w := d.World()
	w.PowerUps = append(w.PowerUps,
		object.NewPowerUp(10, 100, object.PowerUpShield),
		object.NewPowerUp(10, float64(config.DefaultHeight)-1, object.PowerUpShield),
	)

	require.NoError(t, d.Tick(frame))
	require.Len(t, w.PowerUps, 1)
	assert.Equal(t, 100+config.PowerUpFallSpeed, w.PowerUps[0].Y)
}

func TestExplosionsExpire(t *testing.T) {
	d, _ := newTestDriver(t, 1, 1, 0.5)
	d.Start(0)
	w := d.World()
	w.AddExplosion(300, 300, object.ColorRed)

	now := time.Duration(0)
	for range config.ExplosionMaxAge {
		now += frame
		require.NoError(t, d.Tick(now))
	}
	require.Len(t, w.Explosions, 1)
	assert.True(t, w.Explosions[0].Finished())

	require.NoError(t, d.Tick(now+frame))
	assert.Empty(t, w.Explosions)
}

func TestClearingGridWins(t *testing.T) {
	d, rec := newTestDriver(t, 1, 1, 0.99)
	d.Start(0)
	w := d.World()
	// Line the nose up under the enemy's path.
	w.Player.X = float64(config.GridOffsetX) + config.EnemyWidth/2 - w.Player.Width/2 + 15
	rec.input = input.Input{Fire: true}

	now := time.Duration(0)
	for d.Phase() == PhasePlaying && now < 5*time.Second {
		now += frame
		require.NoError(t, d.Tick(now))
	}

	assert.Equal(t, PhaseWon, d.Phase())
	assert.Equal(t, config.ScoreEnemyKill, w.Score)
	assert.Equal(t, config.ScoreEnemyKill, last(rec.scores))
	assert.Equal(t, []Sound{SoundAmbientMove}, rec.stops)

	resetAt, pending := d.ResetAt()
	assert.True(t, pending)
	assert.Equal(t, now+config.ResetDelay, resetAt)
}

func TestLosingLastLifeLoses(t *testing.T) {
	d, rec := newTestDriver(t, 1, 1, 0.99)
	d.Start(0)
	w := d.World()
	w.Player.Lives = 1
	apex, _, _ := w.Player.Hitbox()
	enemyShotAt(w.Enemies[0], apex.X, apex.Y+20)

	require.NoError(t, d.Tick(frame))

	assert.Equal(t, PhaseLost, d.Phase())
	assert.Zero(t, w.Player.Lives)
	assert.Equal(t, 0, last(rec.lives))
	assert.Equal(t, []Sound{SoundAmbientMove}, rec.stops)
}

func TestShieldCollectedAfterHitDoesNotAbsorbIt(t *testing.T) {
	d, rec := newTestDriver(t, 1, 1, 0.99)
	d.Start(0)
	w := d.World()
	p := w.Player
	apex, _, _ := p.Hitbox()
	enemyShotAt(w.Enemies[0], apex.X, apex.Y+20)
	w.PowerUps = append(w.PowerUps, object.NewPowerUp(p.X+10, p.Y, object.PowerUpShield))

	require.NoError(t, d.Tick(frame))

	assert.Equal(t, config.InitialLives-1, p.Lives)
	assert.Equal(t, config.ShieldMax, p.Shield)
	assert.Equal(t, []int{config.InitialLives, config.InitialLives - 1}, rec.lives)
	assert.Equal(t, config.ShieldMax, last(rec.shields))
	assert.Empty(t, w.PowerUps)
	assert.Equal(t, PhasePlaying, d.Phase())
}

func TestSecondFatalHitInOneTick(t *testing.T) {
	d, rec := newTestDriver(t, 1, 1, 0.99)
	d.Start(0)
	w := d.World()
	w.Player.Lives = 1
	apex, _, _ := w.Player.Hitbox()
	enemyShotAt(w.Enemies[0], apex.X, apex.Y+20)
	enemyShotAt(w.Enemies[0], apex.X, apex.Y+22)

	require.NoError(t, d.Tick(frame))

	assert.Equal(t, PhaseLost, d.Phase())
	assert.Zero(t, w.Player.Lives)
	assert.Empty(t, w.Enemies[0].Bullets)
	// Lives are reported on start and once more when they change.
	assert.Equal(t, []int{config.InitialLives, 0}, rec.lives)
	assert.Equal(t, []Sound{SoundAmbientMove}, rec.stops)
}

func TestLossIsNotOverwrittenByWin(t *testing.T) {
	d, _ := newTestDriver(t, 1, 1, 0.5)
	d.Start(0)
	d.finish(PhaseLost)
	d.World().Enemies = nil
	d.checkWinCondition()
	assert.Equal(t, PhaseLost, d.Phase())
}

func TestResetAfterDelay(t *testing.T) {
	d, rec := newTestDriver(t, 1, 1, 0.99)
	d.Start(0)
	w := d.World()
	w.Player.Lives = 1
	apex, _, _ := w.Player.Hitbox()
	enemyShotAt(w.Enemies[0], apex.X, apex.Y+20)
	require.NoError(t, d.Tick(frame))
	require.Equal(t, PhaseLost, d.Phase())
	renders := rec.renders

	require.NoError(t, d.Tick(frame+config.ResetDelay-time.Millisecond))
	assert.Equal(t, PhaseLost, d.Phase())
	assert.Empty(t, rec.outcomes)
	assert.Equal(t, renders, rec.renders, "rendered while waiting for reset")

	require.NoError(t, d.Tick(frame+config.ResetDelay))
	assert.Equal(t, []Phase{PhaseLost}, rec.outcomes)
	assert.Equal(t, []int{0}, rec.finalScores)

	assert.Equal(t, PhasePlaying, d.Phase())
	assert.NotSame(t, w, d.World())
	assert.Equal(t, config.InitialLives, d.World().Player.Lives)
	assert.Len(t, d.World().Enemies, 1)
	assert.Equal(t, 2, rec.resets)
	assert.Equal(t, config.InitialLives, last(rec.lives))
	_, pending := d.ResetAt()
	assert.False(t, pending)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "initializing", PhaseInitializing.String())
	assert.Equal(t, "playing", PhasePlaying.String())
	assert.Equal(t, "won", PhaseWon.String())
	assert.Equal(t, "lost", PhaseLost.String())
	assert.Equal(t, "unknown", Phase(42).String())
}

func TestGameOverMessage(t *testing.T) {
	assert.Equal(t, "You win! Final Score: 2400", GameOverMessage(PhaseWon, 2400))
	assert.Equal(t, "Game Over! Final Score: 300", GameOverMessage(PhaseLost, 300))
}
