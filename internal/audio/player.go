package audio

import (
	"encoding/base64"
	"fmt"
	"sync"
)

// ---------------------------------------------------------------------------
// Playback engine
// One engine owns one output sink for its whole lifetime. Only one decoded
// buffer is "current" at a time and only one playback can be active: loading
// stops whatever is playing first, and a load that has been superseded by a
// newer one can never overwrite the newer state (last-load-wins).
// ---------------------------------------------------------------------------

// Sink is the audio output device. The oto implementation is the real one;
// tests inject an in-memory fake.
type Sink interface {
	// Start begins playing the PCM16LE buffer immediately and returns a
	// handle for the running playback.
	Start(pcm []byte) (Playback, error)

	// Close releases the output device.
	Close() error
}

// Playback is a single running playback session.
type Playback interface {
	// Stop halts output immediately. Safe to call more than once.
	Stop()

	// Done is closed when the clip ends naturally or Stop is called.
	Done() <-chan struct{}
}

type State int

const (
	StateIdle State = iota
	StateDecoding
	StateReady
	StatePlaying
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDecoding:
		return "decoding"
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

type Engine struct {
	sink Sink

	mu       sync.Mutex
	state    State
	loadSeq  uint64 // bumped on every Load; stale decodes check it
	pcm      []byte
	samples  []float32
	playback Playback
}

// NewEngine wraps a sink. The engine starts Idle with no buffer.
func NewEngine(sink Sink) *Engine {
	return &Engine{sink: sink}
}

// Load decodes a base64 PCM payload and auto-starts playback. Any running
// playback is stopped before decoding begins. A decode failure leaves the
// engine Idle; the payload is not retried.
func (e *Engine) Load(payload string) error {
	e.mu.Lock()
	if e.state == StateClosed {
		e.mu.Unlock()
		return fmt.Errorf("engine is closed")
	}
	e.loadSeq++
	seq := e.loadSeq
	e.stopLocked()
	e.state = StateDecoding
	e.mu.Unlock()

	raw, err := base64.StdEncoding.DecodeString(payload)
	var samples []float32
	if err == nil {
		samples, err = DecodePCM16(raw)
	}

	e.mu.Lock()
	if seq != e.loadSeq || e.state == StateClosed {
		// A newer load arrived while we were decoding; its state wins.
		e.mu.Unlock()
		return nil
	}
	if err != nil {
		e.state = StateIdle
		e.pcm = nil
		e.samples = nil
		e.mu.Unlock()
		return fmt.Errorf("decode failed: %w", err)
	}
	e.pcm = raw
	e.samples = samples
	e.state = StateReady
	err = e.playLocked()
	e.mu.Unlock()
	return err
}

// Play starts (or restarts) playback of the current buffer. A playback that
// is already running is stopped synchronously first so clips never overlap.
func (e *Engine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.playLocked()
}

func (e *Engine) playLocked() error {
	if e.state == StateClosed {
		return fmt.Errorf("engine is closed")
	}
	if len(e.pcm) == 0 {
		return fmt.Errorf("no audio loaded")
	}

	e.stopLocked()

	pb, err := e.sink.Start(e.pcm)
	if err != nil {
		e.state = StateReady
		return fmt.Errorf("failed to start playback: %w", err)
	}
	e.playback = pb
	e.state = StatePlaying

	go e.watch(pb)
	return nil
}

// watch returns the engine to Ready when this playback finishes, unless a
// newer playback has replaced it in the meantime.
func (e *Engine) watch(pb Playback) {
	<-pb.Done()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.playback == pb {
		e.playback = nil
		if e.state == StatePlaying {
			e.state = StateReady
		}
	}
}

// Stop halts playback immediately (no fade-out). The buffer stays loaded.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
	if e.state == StatePlaying {
		e.state = StateReady
	}
}

func (e *Engine) stopLocked() {
	if e.playback != nil {
		e.playback.Stop()
		e.playback = nil
	}
}

// Waveform renders the min/max envelope of the current buffer at the given
// pixel width. Resizing re-renders from the same decoded samples.
func (e *Engine) Waveform(width int) []Column {
	e.mu.Lock()
	samples := e.samples
	e.mu.Unlock()
	return Envelope(samples, width)
}

// State reports the engine's current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Close stops playback and releases the sink. The engine is unusable
// afterwards; Close is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.state == StateClosed {
		e.mu.Unlock()
		return nil
	}
	e.stopLocked()
	e.state = StateClosed
	e.pcm = nil
	e.samples = nil
	e.mu.Unlock()

	return e.sink.Close()
}
