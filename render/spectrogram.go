package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/cwbudde/algo-grapher/palette"
)

// Spectral frequency bounds of the log-frequency axis, matching the
// centroid bounds used for waveform coloring.
const (
	spectrogramLowHz  = 100.0
	spectrogramHighHz = 22050.0
)

// binRef associates an image row with an FFT bin. alpha in [0,255] is the
// interpolation weight of the next-higher bin.
type binRef struct {
	bin   int
	alpha float64
}

// Spectrogram renders a time-frequency energy image. Rows follow a
// perceptual log-frequency scale resolved once at construction into a
// row-to-bin mapping; each column appends palette indices interpolated
// from a dB spectrum.
type Spectrogram struct {
	width   int
	height  int
	fftSize int

	colors  color.Palette
	mapping []binRef

	// pixels accumulates column strips back to back; appending is cheaper
	// than scattered 2D writes. Image rotates the buffer into its final
	// orientation.
	pixels []uint8
	cursor int
}

// NewSpectrogram creates a spectrogram renderer for sources at the given
// sample rate.
func NewSpectrogram(sampleRate float64, cfg Config) (*Spectrogram, error) {
	scheme, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("spectrogram sample rate must be > 0: %f", sampleRate)
	}

	lut, err := palette.Build(scheme.Spectrogram, palette.Size)
	if err != nil {
		return nil, err
	}
	colors := make(color.Palette, len(lut))
	for i, c := range lut {
		colors[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}

	s := &Spectrogram{
		width:   cfg.Width,
		height:  cfg.Height,
		fftSize: cfg.FFTSize,
		colors:  colors,
		pixels:  make([]uint8, 0, cfg.Width*cfg.Height),
	}
	s.mapping = buildBinMapping(cfg.Height, cfg.FFTSize, sampleRate)

	return s, nil
}

// buildBinMapping resolves each image row to a fractional FFT bin on the
// log-frequency axis. Rows mapping at or above the last interpolable bin
// carry no entry and render as background.
func buildBinMapping(height, fftSize int, sampleRate float64) []binRef {
	nyquist := sampleRate / 2
	high := spectrogramHighHz
	if nyquist < high {
		high = nyquist
	}

	lowLog := math.Log10(spectrogramLowHz)
	highLog := math.Log10(high)
	denom := float64(height - 1)
	if height == 1 {
		denom = 1
	}

	binCount := float64(fftSize/2 + 1)
	mapping := make([]binRef, 0, height)
	for y := 0; y < height; y++ {
		freq := math.Pow(10, lowLog+float64(y)/denom*(highLog-lowLog))
		bin := freq / nyquist * binCount
		if bin >= float64(fftSize/2) {
			break
		}
		whole := math.Floor(bin)
		mapping = append(mapping, binRef{bin: int(whole), alpha: (bin - whole) * 255})
	}
	return mapping
}

// Columns returns the number of columns added so far.
func (s *Spectrogram) Columns() int { return s.cursor }

// AddColumn appends one column of palette indices interpolated from the
// dB spectrum of that column's frame. spectrum must hold fftSize/2 + 1
// values in [0,1].
func (s *Spectrogram) AddColumn(spectrum []float64) error {
	if len(spectrum) != s.fftSize/2+1 {
		return fmt.Errorf("spectrogram column spectrum length = %d, want %d", len(spectrum), s.fftSize/2+1)
	}
	if s.cursor >= s.width {
		return fmt.Errorf("spectrogram already holds %d columns", s.width)
	}

	for _, m := range s.mapping {
		v := math.Round((255-m.alpha)*spectrum[m.bin] + m.alpha*spectrum[m.bin+1])
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		s.pixels = append(s.pixels, uint8(v))
	}
	for y := len(s.mapping); y < s.height; y++ {
		s.pixels = append(s.pixels, 0)
	}
	s.cursor++

	return nil
}

// Pixels returns the accumulated column-major buffer. After a full render
// its length is exactly width*height.
func (s *Spectrogram) Pixels() []uint8 { return s.pixels }

// Image rotates the accumulated buffer into the final width x height
// orientation, low frequencies at the bottom.
func (s *Spectrogram) Image() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, s.width, s.height), s.colors)
	for x := 0; x < s.cursor; x++ {
		col := s.pixels[x*s.height : (x+1)*s.height]
		for y, v := range col {
			img.SetColorIndex(x, s.height-1-y, v)
		}
	}
	return img
}
