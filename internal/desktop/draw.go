package desktop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// Draw paints the last rendered world and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(object.ColorBackground)
	if g.world != nil {
		g.drawWorld(screen, g.world)
	}

	hud := fmt.Sprintf("Score: %d   Lives: %d   Shield: %d%%", g.score, g.lives, g.shield)
	ebitenutil.DebugPrintAt(screen, hud, 10, 8)
	if g.banner != "" && g.now < g.bannerUntil {
		ebitenutil.DebugPrintAt(screen, g.banner, g.width/2-len(g.banner)*3, g.height/3)
	}
}

func (g *Game) drawWorld(screen *ebiten.Image, w *loop.World) {
	g.drawPlayer(screen, w.Player)
	for _, e := range w.Enemies {
		g.drawEnemy(screen, e)
	}
	for _, pu := range w.PowerUps {
		c := pu.Bounds().Center()
		vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(pu.Width/2), pu.Color(), true)
	}
	for _, ex := range w.Explosions {
		for _, p := range ex.Particles {
			vector.DrawFilledRect(screen, float32(p.X), float32(p.Y),
				config.ParticleSize, config.ParticleSize, ex.Color, false)
		}
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image, p *object.Player) {
	if p.Shield > 0 {
		c, r := p.ShieldRing()
		vector.StrokeCircle(screen, float32(c.X), float32(c.Y), float32(r), 2, object.ColorShield, true)
	}

	apex, left, right := p.Hitbox()
	g.fillPolygon(screen, object.ColorPlayer, apex, left, right)

	clr := object.ColorBullet
	if p.DoubleShot {
		clr = object.ColorDoubleShot
	}
	for _, b := range p.Bullets {
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y),
			config.BulletWidth, config.BulletHeight, clr, false)
	}
}

func (g *Game) drawEnemy(screen *ebiten.Image, e *object.Enemy) {
	hull := e.Hull()
	g.fillPolygon(screen, object.ColorEnemy, hull[:]...)

	left, right := e.Eyes()
	vector.DrawFilledCircle(screen, float32(left.X), float32(left.Y), config.EnemyEyeRadius, object.ColorEnemyEyes, true)
	vector.DrawFilledCircle(screen, float32(right.X), float32(right.Y), config.EnemyEyeRadius, object.ColorEnemyEyes, true)

	for _, b := range e.Bullets {
		bolt := b.Bolt()
		for i := 1; i < len(bolt); i++ {
			vector.StrokeLine(screen,
				float32(bolt[i-1].X), float32(bolt[i-1].Y),
				float32(bolt[i].X), float32(bolt[i].Y),
				2, object.ColorRed, true)
		}
	}
}

// fillPolygon fills a convex outline with a solid color.
func (g *Game) fillPolygon(screen *ebiten.Image, clr color.RGBA, points ...physics.Point) {
	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(clr.R) / 255
		vs[i].ColorG = float32(clr.G) / 255
		vs[i].ColorB = float32(clr.B) / 255
		vs[i].ColorA = float32(clr.A) / 255
	}
	screen.DrawTriangles(vs, is, g.whiteImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
