// Package console runs a game in an ANSI terminal, locally or over SSH.
package console

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

const (
	defaultInactivityWarn       = 90 * time.Second
	defaultInactivityDisconnect = 120 * time.Second
)

// Options configures a Session. Zero values fall back to the defaults.
type Options struct {
	TermSizeFunc         draw.TermSizeFunc
	Audio                loop.Audio // nil plays nothing
	Logger               *log.Logger
	Rand                 object.Rand
	Width, Height        int // Logical playfield
	FrameTime            time.Duration
	InactivityWarn       time.Duration
	InactivityDisconnect time.Duration
}

func (o Options) withDefaults() Options {
	if o.TermSizeFunc == nil {
		o.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if o.Audio == nil {
		o.Audio = audio.NewSoundManager()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = config.DefaultWidth, config.DefaultHeight
	}
	if o.FrameTime <= 0 {
		o.FrameTime = config.TargetFrameTime
	}
	if o.InactivityWarn <= 0 {
		o.InactivityWarn = defaultInactivityWarn
	}
	if o.InactivityDisconnect <= 0 {
		o.InactivityDisconnect = defaultInactivityDisconnect
	}
	return o
}

// Session plays one independent game on one terminal. It is the driver's
// renderer and controls; its HUD is the scoreboard and notifier.
type Session struct {
	driver       *loop.Driver
	hud          *HUD
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	opts         Options
	log          *log.Logger

	input     input.Input // Polled once per frame
	lastInput time.Time
	running   bool
	inactive  bool
	overlay   bool // An overlay was on screen last frame
	now       func() time.Time
}

// NewSession creates a session reading keys from r and drawing to w.
func NewSession(r *bufio.Reader, w io.Writer, opts Options) (*Session, error) {
	opts = opts.withDefaults()

	termWidth, termHeight, _ := opts.TermSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, float64(opts.Width), float64(opts.Height))
	canvas.SetOffset(offsetCol, offsetRow)

	s := &Session{
		hud:          NewHUD(opts.Logger),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		termSizeFunc: opts.TermSizeFunc,
		opts:         opts,
		log:          opts.Logger,
		running:      true,
		now:          time.Now,
	}
	s.lastInput = s.now()

	driver, err := loop.NewDriver(loop.Sinks{
		Renderer:   s,
		Audio:      opts.Audio,
		Scoreboard: s.hud,
		Controls:   s,
		Notifier:   s.hud,
	}, loop.Options{
		Width:  opts.Width,
		Height: opts.Height,
		Rand:   opts.Rand,
		Logger: opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("new driver: %w", err)
	}
	s.driver = driver
	return s, nil
}

// Run plays until the player quits, goes idle for too long, or the
// terminal stops accepting output.
func (s *Session) Run() error {
	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	draw.ClearScreen(s.writer)

	start := s.now()
	for s.running {
		frameStart := s.now()

		s.processInput(frameStart)
		if !s.running {
			break
		}
		s.updateScreen()

		if err := s.driver.Tick(frameStart.Sub(start)); err != nil {
			return err
		}

		if elapsed := s.now().Sub(frameStart); elapsed < s.opts.FrameTime {
			time.Sleep(s.opts.FrameTime - elapsed)
		}
	}

	draw.ClearScreen(s.writer)
	return nil
}

// processInput reads this frame's keys and tracks inactivity.
func (s *Session) processInput(now time.Time) {
	s.input = input.ReadInput(s.inputStream)

	idle := now.Sub(s.lastInput)
	switch {
	case len(s.input.Pressed) > 0:
		s.lastInput = now
		s.inactive = false
	case idle > s.opts.InactivityDisconnect:
		s.log.Info("disconnecting idle session", "idle", idle.Round(time.Second))
		s.running = false
	case idle > s.opts.InactivityWarn:
		s.inactive = true
	}

	if s.input.Quit {
		s.running = false
	}
}

// Poll returns the keys read this frame.
func (s *Session) Poll() input.Input {
	return s.input
}

// Reset drops buffered and held keys.
func (s *Session) Reset() {
	s.inputStream.Reset()
	s.input = input.Input{}
}

// updateScreen handles terminal resize, clamping to the max render size.
// Residue outside the new canvas area is cleared.
func (s *Session) updateScreen() {
	termWidth, termHeight, err := s.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	if renderWidth != s.canvas.TerminalWidth() || renderHeight != s.canvas.TerminalHeight() ||
		offsetCol != s.canvas.OffsetCol() || offsetRow != s.canvas.OffsetRow() {
		draw.ClearScreen(s.writer)
		s.canvas.ForceRedraw()
	}
	s.canvas.Resize(renderWidth, renderHeight)
	s.canvas.SetOffset(offsetCol, offsetRow)
	s.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and
// computes the offset that centers the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// Render draws the world, the HUD and any overlay, then flushes the frame.
func (s *Session) Render(w *loop.World) error {
	overlay := s.inactive || s.hud.BannerVisible()
	if overlay != s.overlay {
		// Wipe text left behind by the previous overlay.
		draw.ClearScreen(s.chunkWriter)
		s.canvas.ForceRedraw()
		s.overlay = overlay
	}

	drawWorld(s.canvas, w)
	if err := s.canvas.Render(s.chunkWriter); err != nil {
		return err
	}
	if err := s.canvas.RenderBorder(s.chunkWriter); err != nil {
		return err
	}

	width, height := s.canvas.TerminalWidth(), s.canvas.TerminalHeight()
	s.hud.Draw(s.chunkWriter, width, height, s.canvas.Background())
	if s.inactive {
		s.drawInactivityWarning(width/2, height/2)
	}
	return s.chunkWriter.Flush()
}

// drawInactivityWarning tells an idle player when they will be dropped.
func (s *Session) drawInactivityWarning(centerX, centerY int) {
	cw := s.chunkWriter
	remaining := s.opts.InactivityDisconnect - s.now().Sub(s.lastInput)

	cw.WriteString(draw.Style(object.ColorBullet, s.canvas.Background()))
	title := "INACTIVITY WARNING"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	msg := fmt.Sprintf("You will be disconnected in %d seconds.", max(int(remaining.Seconds()), 0))
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
	cw.WriteString(draw.ResetStyle)
}

var (
	_ loop.Renderer = (*Session)(nil)
	_ loop.Controls = (*Session)(nil)
)
