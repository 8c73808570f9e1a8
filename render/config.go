package render

import (
	"fmt"

	"github.com/cwbudde/algo-grapher/palette"
)

// Default rendering parameters, used by the command-line flags.
const (
	DefaultWidth   = 500
	DefaultHeight  = 170
	DefaultFFTSize = 2048
	DefaultScheme  = "default"
)

// Config holds the rendering parameters shared by both image types.
type Config struct {
	// Width and Height are the output image dimensions in pixels. Both
	// must be positive.
	Width  int
	Height int
	// FFTSize is the spectral analysis frame length; must be a power of
	// two.
	FFTSize int
	// Background is the waveform background color. The zero value is
	// black. Spectrograms ignore it; their palette starts at black.
	Background palette.RGB
	// Scheme names the color scheme; empty selects DefaultScheme. See
	// package palette.
	Scheme string
}

// validate checks dimensions and resolves the color scheme. Sizing is the
// caller's decision; zero dimensions are rejected, not defaulted.
func (c Config) validate() (palette.Scheme, error) {
	if c.Width <= 0 {
		return palette.Scheme{}, fmt.Errorf("render width must be > 0: %d", c.Width)
	}
	if c.Height <= 0 {
		return palette.Scheme{}, fmt.Errorf("render height must be > 0: %d", c.Height)
	}
	if c.FFTSize <= 0 || c.FFTSize&(c.FFTSize-1) != 0 {
		return palette.Scheme{}, fmt.Errorf("render fft size must be a power of two: %d", c.FFTSize)
	}
	name := c.Scheme
	if name == "" {
		name = DefaultScheme
	}
	return palette.SchemeByName(name)
}
