package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/cwbudde/algo-grapher/analyze"
	"github.com/cwbudde/algo-grapher/chunk"
	"github.com/cwbudde/algo-grapher/palette"
)

// centerLineBoost brightens the horizontal center row at finalization so
// the baseline stays visible on dark backgrounds.
const centerLineBoost = 25

// Waveform renders a time-domain amplitude envelope column by column.
// Each column shows the min/max peak pair of its sample chunk, drawn as a
// connected stroke whose color follows the chunk's spectral centroid.
type Waveform struct {
	width  int
	height int
	bg     color.RGBA
	lookup []palette.RGB

	adapter  *chunk.Adapter
	analyzer *analyze.Analyzer
	frame    []float64

	img    *image.RGBA
	cursor int

	prevX     int
	prevY     float64
	hasPrev   bool
	finalized bool
}

// NewWaveform creates a waveform renderer for a stream of totalFrames
// samples at the given rate. The chunk length per column is
// totalFrames/width, truncated, with a floor of one sample.
func NewWaveform(totalFrames int, sampleRate float64, cfg Config) (*Waveform, error) {
	scheme, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	if totalFrames <= 0 {
		return nil, fmt.Errorf("waveform total frames must be > 0: %d", totalFrames)
	}

	lookup, err := palette.Build(scheme.Waveform, palette.Size)
	if err != nil {
		return nil, err
	}

	samplesPerPixel := totalFrames / cfg.Width
	if samplesPerPixel < 1 {
		samplesPerPixel = 1
	}
	adapter, err := chunk.NewAdapter(samplesPerPixel, false)
	if err != nil {
		return nil, err
	}

	analyzer, err := analyze.New(cfg.FFTSize, sampleRate)
	if err != nil {
		return nil, err
	}

	bg := color.RGBA{R: cfg.Background.R, G: cfg.Background.G, B: cfg.Background.B, A: 255}
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			img.SetRGBA(x, y, bg)
		}
	}

	return &Waveform{
		width:    cfg.Width,
		height:   cfg.Height,
		bg:       bg,
		lookup:   lookup,
		adapter:  adapter,
		analyzer: analyzer,
		frame:    make([]float64, cfg.FFTSize),
		img:      img,
	}, nil
}

// Columns returns the number of columns rendered so far.
func (w *Waveform) Columns() int { return w.cursor }

// Done reports whether every column has been rendered.
func (w *Waveform) Done() bool { return w.cursor == w.width }

// Process consumes the next block of samples, rendering one column per
// full chunk. Chunks beyond the image width are ignored. end flushes the
// adapter; a trailing partial chunk is dropped.
func (w *Waveform) Process(block []float64, end bool) error {
	for _, c := range w.adapter.Push(block, end) {
		if w.Done() {
			break
		}

		first, second := peaks(c.Samples)

		// One analysis per column: the peak chunk doubles as the
		// spectral frame, truncated or zero-padded to the FFT size.
		for i := range w.frame {
			w.frame[i] = 0
		}
		copy(w.frame, c.Samples)
		centroid, _, err := w.analyzer.Analyze(w.frame)
		if err != nil {
			return fmt.Errorf("waveform column %d: %w", w.cursor, err)
		}

		w.drawColumn(w.cursor, first, second, centroid)
		w.cursor++
	}
	return nil
}

// peaks returns the minimum and maximum of samples ordered by temporal
// occurrence: (min, max) when the minimum comes first, (max, min)
// otherwise. The ordering keeps the stroke continuous across columns.
func peaks(samples []float64) (first, second float64) {
	minIdx, maxIdx := 0, 0
	for i, v := range samples {
		if v < samples[minIdx] {
			minIdx = i
		}
		if v > samples[maxIdx] {
			maxIdx = i
		}
	}
	if minIdx < maxIdx {
		return samples[minIdx], samples[maxIdx]
	}
	return samples[maxIdx], samples[minIdx]
}

func (w *Waveform) drawColumn(x int, first, second, centroid float64) {
	half := float64(w.height) * 0.5
	spread := float64(w.height-4) * 0.5
	y1 := half - first*spread
	y2 := half - second*spread

	c := w.lookup[int(centroid*255)]

	if w.hasPrev {
		w.drawSegment(w.prevX, int(w.prevY), x, int(y1), c)
	}
	w.drawSegment(x, int(y1), x, int(y2), c)
	w.antialias(x, y1, y2, c)

	w.prevX, w.prevY, w.hasPrev = x, y2, true
}

// drawSegment draws a straight line between two pixels.
func (w *Waveform) drawSegment(x0, y0, x1, y1 int, c palette.RGB) {
	rgba := color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	err := dx - dy
	for {
		w.img.SetRGBA(x0, y0, rgba)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// antialias softens the two stroke endpoints vertically: the pixel one
// row outward from each endpoint receives a single linear blend weighted
// by the endpoint's fractional position.
func (w *Waveform) antialias(x int, y1, y2 float64, c palette.RGB) {
	yMax := y1
	if y2 > yMax {
		yMax = y2
	}
	yMaxInt := int(yMax)
	if alpha := yMax - float64(yMaxInt); alpha > 0 && alpha < 1 && yMaxInt+1 < w.height {
		w.img.SetRGBA(x, yMaxInt+1, blend(w.img.RGBAAt(x, yMaxInt+1), c, alpha))
	}

	yMin := y1
	if y2 < yMin {
		yMin = y2
	}
	yMinInt := int(yMin)
	if alpha := 1 - (yMin - float64(yMinInt)); alpha > 0 && alpha < 1 && yMinInt-1 >= 0 {
		w.img.SetRGBA(x, yMinInt-1, blend(w.img.RGBAAt(x, yMinInt-1), c, alpha))
	}
}

// blend mixes c into an existing pixel with the given weight in [0,1].
func blend(existing color.RGBA, c palette.RGB, weight float64) color.RGBA {
	return color.RGBA{
		R: uint8((1-weight)*float64(existing.R) + weight*float64(c.R)),
		G: uint8((1-weight)*float64(existing.G) + weight*float64(c.G)),
		B: uint8((1-weight)*float64(existing.B) + weight*float64(c.B)),
		A: 255,
	}
}

// Image finalizes and returns the rendered picture. The first call
// brightens the horizontal center row to mark the baseline.
func (w *Waveform) Image() *image.RGBA {
	if !w.finalized {
		y := w.height / 2
		for x := 0; x < w.width; x++ {
			p := w.img.RGBAAt(x, y)
			w.img.SetRGBA(x, y, color.RGBA{
				R: addClamped(p.R, centerLineBoost),
				G: addClamped(p.G, centerLineBoost),
				B: addClamped(p.B, centerLineBoost),
				A: 255,
			})
		}
		w.finalized = true
	}
	return w.img
}

func addClamped(v uint8, d int) uint8 {
	s := int(v) + d
	if s > 255 {
		s = 255
	}
	return uint8(s)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
