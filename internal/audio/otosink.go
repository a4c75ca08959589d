package audio

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// OtoSink plays PCM16LE buffers through the system's default output device
// using oto. One oto context is created per sink and reused for every clip;
// oto only supports a single context per process.
type OtoSink struct {
	context    *oto.Context
	sampleRate int
	channels   int
}

// NewOtoSink initializes the audio device for the given format and blocks
// until the device is ready.
func NewOtoSink(sampleRate, channels int) (*OtoSink, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio context: %w", err)
	}
	<-ready

	return &OtoSink{context: ctx, sampleRate: sampleRate, channels: channels}, nil
}

func (s *OtoSink) Start(pcm []byte) (Playback, error) {
	if len(pcm) == 0 {
		return nil, fmt.Errorf("empty buffer")
	}

	// The reader must stay referenced for the whole playback or the GC can
	// reclaim the buffer mid-clip and produce static.
	player := s.context.NewPlayer(bytes.NewReader(pcm))
	player.Play()

	pb := &otoPlayback{player: player, done: make(chan struct{})}
	go pb.poll()
	return pb, nil
}

func (s *OtoSink) Close() error {
	// oto v3 has no context Close; dropping the reference is all we can do.
	s.context = nil
	return nil
}

type otoPlayback struct {
	player *oto.Player

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
}

func (p *otoPlayback) poll() {
	for {
		time.Sleep(20 * time.Millisecond)
		p.mu.Lock()
		if p.stopped {
			p.mu.Unlock()
			return
		}
		if !p.player.IsPlaying() {
			p.finishLocked()
			p.mu.Unlock()
			return
		}
		p.mu.Unlock()
	}
}

func (p *otoPlayback) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.player.Pause()
	p.finishLocked()
}

func (p *otoPlayback) finishLocked() {
	p.stopped = true
	p.player.Close()
	close(p.done)
}

func (p *otoPlayback) Done() <-chan struct{} {
	return p.done
}
