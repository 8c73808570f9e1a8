// Package analyze computes per-frame spectral descriptors for rendering:
// a dB-compressed magnitude spectrum normalized to [0,1] and a spectral
// centroid mapped onto a perceptual log-frequency scale.
package analyze

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/spectrum"
	"github.com/cwbudde/algo-dsp/dsp/window"
	"github.com/cwbudde/algo-dsp/stats/frequency"
	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// Perceptual centroid bounds. The upper bound is capped at Nyquist for
	// low sample rates.
	lowerFreqHz = 100.0
	upperFreqHz = 22050.0

	// Below this total magnitude a frame counts as silence and the
	// centroid degrades to 0 instead of risking log10(0).
	silenceFloor = 1e-20

	// Added to magnitudes before the dB conversion so zero bins stay
	// finite.
	magFloor = 1e-30

	// DefaultDynamicRangeDB is the dB range compressed into [0,1].
	DefaultDynamicRangeDB = 120.0
)

// Analyzer transforms fixed-size sample frames into spectral descriptors.
// It owns its FFT plan and scratch buffers and is not safe for concurrent
// use; renderers hold one analyzer each.
type Analyzer struct {
	fftSize    int
	sampleRate float64
	rangeDB    float64
	coeffs     []float64

	plan     *algofft.Plan[complex128]
	windowed []float64
	in, out  []complex128

	lowerLog float64
	upperLog float64
	upperHz  float64
}

// Option configures an Analyzer.
type Option func(*settings)

type settings struct {
	windowType window.Type
	rangeDB    float64
}

// WithWindow selects the window applied before the transform. The default
// is Hann.
func WithWindow(t window.Type) Option {
	return func(s *settings) {
		s.windowType = t
	}
}

// WithDynamicRange sets the dB range compressed into [0,1].
func WithDynamicRange(db float64) Option {
	return func(s *settings) {
		if db > 0 {
			s.rangeDB = db
		}
	}
}

// New creates an analyzer for frames of fftSize samples at the given
// sample rate. fftSize must be a power of two.
func New(fftSize int, sampleRate float64, opts ...Option) (*Analyzer, error) {
	if fftSize <= 0 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("analyzer fft size must be a power of two: %d", fftSize)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("analyzer sample rate must be > 0: %f", sampleRate)
	}

	cfg := settings{windowType: window.TypeHann, rangeDB: DefaultDynamicRangeDB}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("analyzer fft plan: %w", err)
	}

	upper := upperFreqHz
	if nyquist := sampleRate / 2; nyquist < upper {
		upper = nyquist
	}
	if upper <= lowerFreqHz {
		return nil, fmt.Errorf("analyzer sample rate too low for centroid bounds: %f", sampleRate)
	}

	return &Analyzer{
		fftSize:    fftSize,
		sampleRate: sampleRate,
		rangeDB:    cfg.rangeDB,
		coeffs:     window.Generate(cfg.windowType, fftSize),
		plan:       plan,
		windowed:   make([]float64, fftSize),
		in:         make([]complex128, fftSize),
		out:        make([]complex128, fftSize),
		lowerLog:   math.Log10(lowerFreqHz),
		upperLog:   math.Log10(upper),
		upperHz:    upper,
	}, nil
}

// FFTSize returns the configured frame length.
func (a *Analyzer) FFTSize() int { return a.fftSize }

// BinCount returns the number of spectrum bins produced per frame,
// fftSize/2 + 1.
func (a *Analyzer) BinCount() int { return a.fftSize/2 + 1 }

// Analyze windows the frame, transforms it and returns the spectral
// centroid in [0,1] together with the dB-compressed magnitude spectrum.
// A frame below the silence floor yields centroid 0 and an all-zero
// spectrum. The returned slice is freshly allocated per call.
func (a *Analyzer) Analyze(frame []float64) (float64, []float64, error) {
	if len(frame) != a.fftSize {
		return 0, nil, fmt.Errorf("analyzer frame length = %d, want %d", len(frame), a.fftSize)
	}

	vecmath.MulBlock(a.windowed, frame, a.coeffs)
	for i, v := range a.windowed {
		a.in[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return 0, nil, fmt.Errorf("analyzer forward fft: %w", err)
	}

	// Magnitudes of the non-negative-frequency bins, normalized by the
	// transform size so a full-scale sine peaks near 0 dB.
	mags := spectrum.Magnitude(a.out[:a.BinCount()])
	vecmath.ScaleBlockInPlace(mags, 1/float64(a.fftSize))

	db := make([]float64, len(mags))
	for i, m := range mags {
		v := 20 * math.Log10(m+magFloor)
		if v < -a.rangeDB {
			v = -a.rangeDB
		}
		if v > 0 {
			v = 0
		}
		db[i] = (v + a.rangeDB) / a.rangeDB
	}

	energy := 0.0
	for _, m := range mags {
		energy += m
	}
	if energy <= silenceFloor {
		return 0, db, nil
	}

	centroidHz := frequency.Centroid(mags, a.sampleRate)

	// Clip before taking the log so out-of-range values cannot leave the
	// domain of the normalization.
	if centroidHz < lowerFreqHz {
		centroidHz = lowerFreqHz
	}
	if centroidHz > a.upperHz {
		centroidHz = a.upperHz
	}

	centroid := (math.Log10(centroidHz) - a.lowerLog) / (a.upperLog - a.lowerLog)

	return centroid, db, nil
}
