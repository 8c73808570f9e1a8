// Package audiotest provides synthetic audio sources for tests.
package audiotest

import (
	"errors"
	"math/rand"
)

// ErrBrokenHeader simulates an unreadable payload behind a plausible
// header: reads past the halfway point of the advertised length fail.
var ErrBrokenHeader = errors.New("audiotest: broken header")

// Noise is a deterministic white-noise source that mimics a decoded audio
// file: 44100 Hz, one channel, samples in [-1,1). With Broken set it fails
// with ErrBrokenHeader once a read would cross half the advertised frame
// count, standing in for a truncated or corrupt file.
type Noise struct {
	Frames int
	Broken bool

	pos int
	rng *rand.Rand
}

// NewNoise returns a noise source of the given length with a fixed seed.
func NewNoise(frames int) *Noise {
	return &Noise{Frames: frames, rng: rand.New(rand.NewSource(1))}
}

// NewBrokenNoise returns a noise source that fails mid-read.
func NewBrokenNoise(frames int) *Noise {
	n := NewNoise(frames)
	n.Broken = true
	return n
}

func (n *Noise) TotalFrames() int { return n.Frames }
func (n *Noise) SampleRate() int  { return 44100 }
func (n *Noise) Channels() int    { return 1 }
func (n *Noise) Close() error     { return nil }

// Seek positions the stream. The noise itself is not position-stable; only
// the frame accounting matters to callers.
func (n *Noise) Seek(frame int) error {
	n.pos = frame
	return nil
}

// ReadFrames returns up to count samples, fewer at end of stream.
func (n *Noise) ReadFrames(count int) ([]float64, error) {
	if n.Broken && n.pos+count > n.Frames/2 {
		return nil, ErrBrokenHeader
	}

	left := n.Frames - n.pos
	if left < count {
		count = left
	}
	if count <= 0 {
		return nil, nil
	}

	out := make([]float64, count)
	for i := range out {
		out[i] = n.rng.Float64()*2 - 1
	}
	n.pos += count
	return out, nil
}
