// Package source provides decoded audio sample streams for rendering.
//
// A Source yields one float64 sample per frame in [-1,1]; multi-channel
// input collapses to the first channel. Decoders exist for WAV, MP3 and
// Ogg/Vorbis files.
package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Source is a seekable stream of mono audio samples.
type Source interface {
	// TotalFrames returns the total number of sample frames.
	TotalFrames() int
	// SampleRate returns the sample rate in Hz.
	SampleRate() int
	// Channels returns the channel count of the underlying stream.
	Channels() int
	// Seek positions the stream at the given frame index.
	Seek(frame int) error
	// ReadFrames returns up to n samples, fewer at end of stream. A
	// truncated or corrupt payload surfaces as an error.
	ReadFrames(n int) ([]float64, error)
	// Close releases the underlying file.
	Close() error
}

var (
	// ErrUnsupportedFormat is returned by Open for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Open opens an audio file, selecting the decoder from the file extension.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return OpenWAV(path)
	case ".mp3":
		return OpenMP3(path)
	case ".ogg", ".oga":
		return OpenVorbis(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// skipFrames discards n frames by reading them.
func skipFrames(s Source, n int) error {
	const step = 8192
	for n > 0 {
		want := n
		if want > step {
			want = step
		}
		got, err := s.ReadFrames(want)
		if err != nil {
			return err
		}
		if len(got) == 0 {
			return nil
		}
		n -= len(got)
	}
	return nil
}
