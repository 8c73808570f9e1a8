package render

import (
	"image/color"
	"testing"

	"github.com/cwbudde/algo-grapher/palette"
)

func TestPeaks(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		first   float64
		second  float64
	}{
		{"min before max", []float64{0, -0.5, 0.25, 0.75}, -0.5, 0.75},
		{"max before min", []float64{0, 0.75, 0.25, -0.5}, 0.75, -0.5},
		{"constant", []float64{0.2, 0.2, 0.2}, 0.2, 0.2},
		{"single sample", []float64{-0.3}, -0.3, -0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, second := peaks(tt.samples)
			if first != tt.first || second != tt.second {
				t.Fatalf("peaks(%v) = (%v, %v), want (%v, %v)",
					tt.samples, first, second, tt.first, tt.second)
			}
		})
	}
}

func TestBlend(t *testing.T) {
	existing := color.RGBA{R: 0, G: 100, B: 200, A: 255}
	c := palette.RGB{R: 200, G: 100, B: 0}

	if got := blend(existing, c, 0); got != existing {
		t.Fatalf("blend weight 0 = %v, want %v", got, existing)
	}
	if got, want := blend(existing, c, 1), (color.RGBA{R: 200, G: 100, B: 0, A: 255}); got != want {
		t.Fatalf("blend weight 1 = %v, want %v", got, want)
	}
	if got, want := blend(existing, c, 0.5), (color.RGBA{R: 100, G: 100, B: 100, A: 255}); got != want {
		t.Fatalf("blend weight 0.5 = %v, want %v", got, want)
	}
}

func TestNewWaveformValidation(t *testing.T) {
	valid := Config{Width: 16, Height: 32, FFTSize: 64}

	tests := []struct {
		name        string
		totalFrames int
		rate        float64
		mutate      func(*Config)
	}{
		{"zero frames", 0, 44100, func(*Config) {}},
		{"zero width", 1000, 44100, func(c *Config) { c.Width = 0 }},
		{"negative width", 1000, 44100, func(c *Config) { c.Width = -1 }},
		{"zero height", 1000, 44100, func(c *Config) { c.Height = 0 }},
		{"negative height", 1000, 44100, func(c *Config) { c.Height = -1 }},
		{"zero fft size", 1000, 44100, func(c *Config) { c.FFTSize = 0 }},
		{"fft size not power of two", 1000, 44100, func(c *Config) { c.FFTSize = 1000 }},
		{"unknown scheme", 1000, 44100, func(c *Config) { c.Scheme = "neon" }},
		{"bad sample rate", 1000, -1, func(*Config) {}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if _, err := NewWaveform(tt.totalFrames, tt.rate, cfg); err == nil {
				t.Fatal("NewWaveform() error = nil, want error")
			}
		})
	}
}

// A silent stream draws a flat stroke on the exact center row: the peak
// positions carry no fractional part, so no antialiasing touches the
// neighboring rows and every other pixel keeps the background color.
func TestWaveformSilence(t *testing.T) {
	cfg := Config{Width: 16, Height: 32, FFTSize: 64}
	w, err := NewWaveform(640, 44100, cfg)
	if err != nil {
		t.Fatalf("NewWaveform() error = %v", err)
	}

	if err := w.Process(make([]float64, 640), true); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !w.Done() {
		t.Fatalf("Done() = false after %d columns, want true", w.Columns())
	}

	img := w.Image()
	bg := color.RGBA{A: 255}
	center := cfg.Height / 2
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			p := img.RGBAAt(x, y)
			if y == center {
				if p == bg {
					t.Fatalf("pixel (%d,%d) on center row = background, want stroke", x, y)
				}
				continue
			}
			if p != bg {
				t.Fatalf("pixel (%d,%d) = %v, want background %v", x, y, p, bg)
			}
		}
	}
}

func TestWaveformIgnoresExtraColumns(t *testing.T) {
	cfg := Config{Width: 4, Height: 16, FFTSize: 32}
	w, err := NewWaveform(16, 44100, cfg)
	if err != nil {
		t.Fatalf("NewWaveform() error = %v", err)
	}

	// 8 chunks of 4 samples; only the first 4 become columns.
	if err := w.Process(make([]float64, 32), true); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got := w.Columns(); got != 4 {
		t.Fatalf("Columns() = %d, want 4", got)
	}
}

func TestWaveformCenterLineBrightenedOnce(t *testing.T) {
	cfg := Config{Width: 4, Height: 16, FFTSize: 32}
	w, err := NewWaveform(16, 44100, cfg)
	if err != nil {
		t.Fatalf("NewWaveform() error = %v", err)
	}
	if err := w.Process(make([]float64, 16), true); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	first := w.Image().RGBAAt(0, cfg.Height/2)
	second := w.Image().RGBAAt(0, cfg.Height/2)
	if first != second {
		t.Fatalf("center row pixel changed between Image() calls: %v then %v", first, second)
	}
}
