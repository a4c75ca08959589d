// Command preview plays a generated PCM clip on the local machine and
// prints its waveform to the terminal. Useful for checking backend output
// without a browser:
//
//	preview -file clip.pcm
//	preview -file response.b64 -base64
package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/bobarin/vocalforge/internal/audio"
	"github.com/bobarin/vocalforge/internal/services"
)

func main() {
	var (
		file   = flag.String("file", "", "path to a PCM16LE clip (or base64 text with -base64)")
		isB64  = flag.Bool("base64", false, "treat the file as base64-encoded PCM")
		rate   = flag.Int("rate", services.OutputSampleRate, "sample rate in Hz")
		width  = flag.Int("width", 72, "waveform width in characters")
		wavOut = flag.String("wav", "", "also write a WAV copy to this path")
		listen = flag.Bool("play", true, "play the clip through the default output device")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}
	if *isB64 {
		raw, err = base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			log.Fatalf("Failed to decode base64: %v", err)
		}
	}

	samples, err := audio.DecodePCM16(raw)
	if err != nil {
		log.Fatalf("Failed to decode PCM: %v", err)
	}
	seconds := float64(len(samples)) / float64(*rate)
	fmt.Printf("%d samples, %.2fs at %d Hz\n\n", len(samples), seconds, *rate)

	printWaveform(samples, *width)

	if *wavOut != "" {
		wav := audio.EncodeWAV(raw, *rate, services.OutputChannels)
		if err := os.WriteFile(*wavOut, wav, 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", *wavOut, err)
		}
		fmt.Printf("\nWrote %s (%d bytes)\n", *wavOut, len(wav))
	}

	if !*listen {
		return
	}

	sink, err := audio.NewOtoSink(*rate, services.OutputChannels)
	if err != nil {
		log.Fatalf("Failed to open audio device: %v", err)
	}
	engine := audio.NewEngine(sink)
	defer engine.Close()

	if err := engine.Load(base64.StdEncoding.EncodeToString(raw)); err != nil {
		log.Fatalf("Failed to start playback: %v", err)
	}
	fmt.Println("\nPlaying...")
	for engine.State() == audio.StatePlaying {
		time.Sleep(50 * time.Millisecond)
	}
}

// printWaveform renders the min/max envelope as two rows of block glyphs,
// positive swing on top, negative below.
func printWaveform(samples []float32, width int) {
	glyphs := []rune(" ▁▂▃▄▅▆▇█")
	cols := audio.Envelope(samples, width)

	var top, bottom strings.Builder
	for _, c := range cols {
		top.WriteRune(glyph(glyphs, c.Max))
		bottom.WriteRune(glyph(glyphs, -c.Min))
	}
	fmt.Println(top.String())
	fmt.Println(bottom.String())
}

func glyph(glyphs []rune, v float32) rune {
	if v < 0 {
		v = 0
	}
	idx := int(v * float32(len(glyphs)-1))
	if idx >= len(glyphs) {
		idx = len(glyphs) - 1
	}
	return glyphs[idx]
}
