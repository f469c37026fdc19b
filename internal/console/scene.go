package console

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

func pt(p physics.Point) draw.Point {
	return draw.Point{X: p.X, Y: p.Y}
}

// drawWorld paints one frame of w onto c, back to front in the order the
// entities are updated.
func drawWorld(c *draw.Canvas, w *loop.World) {
	c.SetBackground(object.ColorBackground)
	c.Clear()

	drawPlayer(c, w.Player)
	for _, e := range w.Enemies {
		drawEnemy(c, e)
	}
	for _, pu := range w.PowerUps {
		c.SetColor(pu.Color())
		center := pu.Bounds().Center()
		c.FillCircle(center.X, center.Y, pu.Width/2)
	}
	for _, ex := range w.Explosions {
		c.SetColor(ex.Color)
		for _, p := range ex.Particles {
			c.FillRect(p.X, p.Y, config.ParticleSize, config.ParticleSize)
		}
	}
}

func drawPlayer(c *draw.Canvas, p *object.Player) {
	if p.Shield > 0 {
		center, r := p.ShieldRing()
		c.SetColor(object.ColorShield)
		c.DrawCircle(center.X, center.Y, r)
	}

	apex, left, right := p.Hitbox()
	hull := [3]draw.Point{pt(apex), pt(left), pt(right)}
	c.SetColor(object.ColorPlayer)
	c.DrawPolygon(hull[:], true)

	c.SetColor(object.ColorBullet)
	if p.DoubleShot {
		c.SetColor(object.ColorDoubleShot)
	}
	for _, b := range p.Bullets {
		c.FillRect(b.X, b.Y, config.BulletWidth, config.BulletHeight)
	}
}

func drawEnemy(c *draw.Canvas, e *object.Enemy) {
	var hull [5]draw.Point
	for i, p := range e.Hull() {
		hull[i] = pt(p)
	}
	c.SetColor(object.ColorEnemy)
	c.DrawPolygon(hull[:], true)

	left, right := e.Eyes()
	c.SetColor(object.ColorEnemyEyes)
	c.FillCircle(left.X, left.Y, config.EnemyEyeRadius)
	c.FillCircle(right.X, right.Y, config.EnemyEyeRadius)

	c.SetColor(object.ColorRed)
	for _, b := range e.Bullets {
		bolt := b.Bolt()
		for i := 1; i < len(bolt); i++ {
			c.DrawLine(pt(bolt[i-1]), pt(bolt[i]))
		}
	}
}
