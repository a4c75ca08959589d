// Package audio turns the backend's raw PCM payloads into playable,
// visualizable sample data. The payload carries no header or format
// metadata: sample rate and channel count come from the backend contract,
// never from the bytes themselves.
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrTruncatedPayload marks a payload whose byte count is not a whole
// number of 16-bit samples. This is a backend-format mismatch, reported
// separately from generation failures.
var ErrTruncatedPayload = errors.New("pcm payload is not a whole number of 16-bit samples")

// DecodePCM16 interprets raw bytes as 16-bit signed little-endian mono
// samples scaled to [-1, 1).
func DecodePCM16(raw []byte) ([]float32, error) {
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTruncatedPayload, len(raw))
	}

	samples := make([]float32, len(raw)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		samples[i] = float32(v) / 32768.0
	}
	return samples, nil
}

// DecodePCM16Channels de-interleaves a multi-channel PCM16LE stream into
// per-channel float sequences. Frames are sampleCount/channels; a stream
// that does not divide evenly into frames is rejected.
func DecodePCM16Channels(raw []byte, channels int) ([][]float32, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count %d", channels)
	}

	flat, err := DecodePCM16(raw)
	if err != nil {
		return nil, err
	}
	if len(flat)%channels != 0 {
		return nil, fmt.Errorf("%d samples do not divide into %d channels", len(flat), channels)
	}

	frames := len(flat) / channels
	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, frames)
		for i := 0; i < frames; i++ {
			out[ch][i] = flat[i*channels+ch]
		}
	}
	return out, nil
}

// DecodeBase64PCM16 is the common path for backend responses: base64 wrapper
// first, then mono PCM16LE.
func DecodeBase64PCM16(payload string) ([]float32, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 audio payload: %w", err)
	}
	return DecodePCM16(raw)
}

// EncodePCM16 converts float samples back to raw PCM16LE bytes. Values are
// clipped to the int16 range; used by tests and the preview tool.
func EncodePCM16(samples []float32) []byte {
	raw := make([]byte, len(samples)*2)
	for i, s := range samples {
		v := int32(s * 32768.0)
		if v > 32767 {
			v = 32767
		}
		if v < -32768 {
			v = -32768
		}
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(int16(v)))
	}
	return raw
}
