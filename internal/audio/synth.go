package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

// tone is a finite oscillator whose frequency slides linearly from one
// pitch to another while an exponential envelope fades it out.
type tone struct {
	from, to float64 // Hz
	decay    float64 // Envelope decay per second, 0 for none
	gain     float64
	wave     WaveType
	rate     beep.SampleRate
	length   int
	position int
	phase    float64
	rng      *rand.Rand
}

// NewTone creates a tone of the given duration sliding from one frequency
// to another.
func NewTone(from, to float64, duration time.Duration, wave WaveType, decay float64, rate beep.SampleRate) beep.Streamer {
	return &tone{
		from:   from,
		to:     to,
		decay:  decay,
		gain:   0.5,
		wave:   wave,
		rate:   rate,
		length: rate.N(duration),
		rng:    rand.New(rand.NewSource(int64(from*1000 + to))),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}

		var val float64
		switch t.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			if t.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveNoise:
			val = t.rng.Float64()*2 - 1
		}

		progress := float64(t.position) / float64(t.length)
		secs := float64(t.position) / float64(t.rate)
		val *= t.gain * math.Exp(-t.decay*secs)

		samples[i][0] = val
		samples[i][1] = val

		freq := t.from + (t.to-t.from)*progress
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
