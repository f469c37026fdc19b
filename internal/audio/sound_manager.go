// Package audio plays the game's sound cues through the system speaker.
// Every sound is synthesized, so no assets ship with the binary.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/invaders/internal/loop"
)

const (
	sampleRate = beep.SampleRate(44100)
	bufferSize = 100 * time.Millisecond
)

// speakerLocker guards mixer mutations against the speaker goroutine.
type speakerLocker struct{}

func (speakerLocker) Lock()   { speaker.Lock() }
func (speakerLocker) Unlock() { speaker.Unlock() }

// SoundManager implements loop.Audio on top of a beep mixer. Until
// Initialize succeeds it is silent, which is also how remote sessions use
// it.
type SoundManager struct {
	mu          sync.Mutex
	locker      sync.Locker
	mixer       *beep.Mixer
	playing     map[loop.Sound][]*beep.Ctrl
	initialized bool
}

// NewSoundManager creates a silent sound manager.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		locker:  speakerLocker{},
		mixer:   &beep.Mixer{},
		playing: make(map[loop.Sound][]*beep.Ctrl),
	}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(bufferSize)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops every sound and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.locker.Lock()
	sm.mixer.Clear()
	sm.locker.Unlock()
	clear(sm.playing)

	speaker.Close()
	sm.initialized = false
}

// Play starts a cue. Unknown sounds are ignored.
func (sm *SoundManager) Play(c loop.Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := cueStreamer(c)
	if s == nil {
		return
	}
	ctrl := &beep.Ctrl{Streamer: s}

	sm.locker.Lock()
	sm.mixer.Add(ctrl)
	sm.locker.Unlock()

	sm.playing[c.Sound] = append(sm.pruned(c.Sound), ctrl)
}

// Stop silences every playing instance of s.
func (sm *SoundManager) Stop(s loop.Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.locker.Lock()
	for _, ctrl := range sm.playing[s] {
		// A nil streamer drains the ctrl out of the mixer.
		ctrl.Streamer = nil
	}
	sm.locker.Unlock()
	delete(sm.playing, s)
}

// pruned drops finished instances of s from the bookkeeping.
func (sm *SoundManager) pruned(s loop.Sound) []*beep.Ctrl {
	sm.locker.Lock()
	defer sm.locker.Unlock()

	kept := sm.playing[s][:0]
	for _, ctrl := range sm.playing[s] {
		if ctrl.Streamer != nil && ctrl.Streamer.Err() == nil && !finished(ctrl.Streamer) {
			kept = append(kept, ctrl)
		}
	}
	return kept
}

// finished reports whether a cue streamer has played to its end.
func finished(s beep.Streamer) bool {
	if f, ok := s.(interface{ Finished() bool }); ok {
		return f.Finished()
	}
	return false
}

// cueStreamer builds the streamer for a cue: the synthesized sound,
// resampled to the cue's rate and scaled to its volume.
func cueStreamer(c loop.Cue) beep.Streamer {
	s := synthesize(c.Sound)
	if s == nil {
		return nil
	}
	if c.Rate > 0 && c.Rate != 1 {
		s = beep.ResampleRatio(4, c.Rate, s)
	}
	return &cue{Streamer: &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(max(c.Volume, 0)),
		Silent:   c.Volume <= 0,
	}}
}

// cue remembers when its streamer ran dry.
type cue struct {
	beep.Streamer
	done bool
}

func (c *cue) Stream(samples [][2]float64) (int, bool) {
	n, ok := c.Streamer.Stream(samples)
	if !ok {
		c.done = true
	}
	return n, ok
}

func (c *cue) Finished() bool { return c.done }

// synthesize returns a fresh streamer for s, or nil for unknown sounds.
func synthesize(s loop.Sound) beep.Streamer {
	switch s {
	case loop.SoundShoot:
		return NewTone(1200, 300, 120*time.Millisecond, WaveSquare, 10, sampleRate)
	case loop.SoundEnemyShoot:
		return NewTone(400, 150, 150*time.Millisecond, WaveSquare, 8, sampleRate)
	case loop.SoundExplosion:
		return NewTone(100, 40, 400*time.Millisecond, WaveNoise, 7, sampleRate)
	case loop.SoundPowerUp:
		return NewTone(500, 1500, 250*time.Millisecond, WaveSine, 2, sampleRate)
	case loop.SoundAmbientMove:
		return NewTone(70, 55, 90*time.Millisecond, WaveSquare, 12, sampleRate)
	default:
		return nil
	}
}

var _ loop.Audio = (*SoundManager)(nil)
