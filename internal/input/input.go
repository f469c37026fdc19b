// Package input turns a raw terminal byte stream into polled key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report presses, so holding is inferred from key repeat.
const keyHoldDuration = 60 * time.Millisecond

// Terminals report a held key as a burst of repeated bytes, so fire presses
// are told apart from repeats by the gap since the previous space byte.
const (
	fireRepeatGap   = 80 * time.Millisecond  // Repeats arrive closer together than this
	fireRepeatDelay = 350 * time.Millisecond // Shortest delay before auto-repeat starts
	fireHoldTimeout = time.Second            // Longest delay before auto-repeat starts
)

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Fire    bool // Edge-triggered: true only on the frame the key went down
	Pressed []byte
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit  time.Time
	left  time.Time
	right time.Time
	fire  time.Time

	fireRepeating bool // Auto-repeat of the last fire press has started
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState
	now   func() time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:  make(chan byte, 128),
		now: time.Now,
	}
}

// Reset forgets all held keys, so presses from a previous game do not carry
// over into the next one.
func (s *Stream) Reset() {
	for {
		select {
		case _, ok := <-s.ch:
			if !ok {
				s.state = keyState{}
				return
			}
		default:
			s.state = keyState{}
			return
		}
	}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
func ReadInput(s *Stream) Input {
	now := s.now()
	var buf []byte

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	firePressed := false

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C': // Right arrow
				s.state.right = now
				i += 2
				continue
			case 'D': // Left arrow
				s.state.left = now
				i += 2
				continue
			case 'A', 'B': // Up/down arrows are unused
				i += 2
				continue
			}
		}

		if b == ' ' && pressFire(&s.state, now) {
			firePressed = true
		}
		applyByteToState(&s.state, b, now)
	}

	return Input{
		Quit:    now.Sub(s.state.quit) < keyHoldDuration,
		Left:    now.Sub(s.state.left) < keyHoldDuration,
		Right:   now.Sub(s.state.right) < keyHoldDuration,
		Fire:    firePressed,
		Pressed: buf,
	}
}

// pressFire records a space byte and reports whether it starts a new press.
// A byte following a repeat burst after a pause is a new press; a second byte
// shortly after the first is a re-tap, unless it arrived too soon to be one.
func pressFire(state *keyState, now time.Time) bool {
	gap := now.Sub(state.fire)
	state.fire = now

	switch {
	case gap > fireHoldTimeout:
		state.fireRepeating = false
		return true
	case state.fireRepeating:
		if gap > fireRepeatGap {
			state.fireRepeating = false
			return true
		}
		return false
	case gap > fireRepeatGap && gap < fireRepeatDelay:
		return true
	default:
		state.fireRepeating = true
		return false
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	}
}
