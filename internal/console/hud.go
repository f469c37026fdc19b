package console

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/image/colornames"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop"
)

// bannerDuration is how long the end-of-game message stays on screen.
const bannerDuration = 3 * time.Second

// HUD is the terminal scoreboard and game-over notifier. It only records
// values; they are drawn with the next frame.
type HUD struct {
	score, lives, shield int

	banner      string
	bannerUntil time.Time

	now func() time.Time
	log *log.Logger
}

// NewHUD creates an empty HUD.
func NewHUD(logger *log.Logger) *HUD {
	return &HUD{now: time.Now, log: logger}
}

func (h *HUD) SetScore(score int)   { h.score = score }
func (h *HUD) SetLives(lives int)   { h.lives = lives }
func (h *HUD) SetShield(shield int) { h.shield = shield }

// GameOver shows the final score for bannerDuration.
func (h *HUD) GameOver(outcome loop.Phase, score int) {
	h.banner = loop.GameOverMessage(outcome, score)
	h.bannerUntil = h.now().Add(bannerDuration)
	h.log.Info(h.banner)
}

// BannerVisible reports whether the game-over banner is showing.
func (h *HUD) BannerVisible() bool {
	return h.banner != "" && h.now().Before(h.bannerUntil)
}

// Draw writes the status line and, while visible, the banner. Text is
// padded to a fixed width so shorter values overwrite longer ones.
func (h *HUD) Draw(cw *draw.ChunkWriter, width, height int, bg color.RGBA) {
	cw.WriteString(draw.Style(colornames.White, bg))

	score := fmt.Sprintf("Score: %-7d", h.score)
	shield := fmt.Sprintf("Shield: %3d%%", h.shield)
	lives := fmt.Sprintf("Lives: %d", h.lives)

	cw.WriteAt(2, 1, score)
	cw.WriteAt(width/2-len(shield)/2, 1, shield)
	cw.WriteAt(width-len(lives), 1, lives)

	if h.BannerVisible() {
		cw.WriteString(draw.Style(colornames.Yellow, bg))
		cw.WriteAt(width/2-len(h.banner)/2, height/3, h.banner)
	}
	cw.WriteString(draw.ResetStyle)
}
