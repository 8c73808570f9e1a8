package render

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/cwbudde/algo-grapher/analyze"
	"github.com/cwbudde/algo-grapher/chunk"
	"github.com/cwbudde/algo-grapher/source"
)

// readBlock is the number of frames pulled from a source per read.
const readBlock = 4096

// RenderWaveform draws the full waveform of src. A source failure aborts
// the render; no image is produced.
func RenderWaveform(src source.Source, cfg Config) (*image.RGBA, error) {
	w, err := NewWaveform(src.TotalFrames(), float64(src.SampleRate()), cfg)
	if err != nil {
		return nil, err
	}
	if err := src.Seek(0); err != nil {
		return nil, fmt.Errorf("waveform input: %w", err)
	}

	for !w.Done() {
		block, err := src.ReadFrames(readBlock)
		if err != nil {
			return nil, fmt.Errorf("waveform input: %w", err)
		}
		end := len(block) < readBlock
		if err := w.Process(block, end); err != nil {
			return nil, err
		}
		if end {
			break
		}
	}

	return w.Image(), nil
}

// RenderSpectrogram draws the full spectrogram of src. Each column is
// analyzed from an FFT-size frame seeked to the column's position in the
// stream; a short read near the end is zero-padded by the chunk adapter.
func RenderSpectrogram(src source.Source, cfg Config) (*image.Paletted, error) {
	sg, err := NewSpectrogram(float64(src.SampleRate()), cfg)
	if err != nil {
		return nil, err
	}
	analyzer, err := analyze.New(cfg.FFTSize, float64(src.SampleRate()))
	if err != nil {
		return nil, err
	}
	framer, err := chunk.NewAdapter(cfg.FFTSize, true)
	if err != nil {
		return nil, err
	}

	samplesPerPixel := float64(src.TotalFrames()) / float64(cfg.Width)
	frame := make([]float64, cfg.FFTSize)

	for x := 0; x < cfg.Width; x++ {
		if err := src.Seek(int(float64(x) * samplesPerPixel)); err != nil {
			return nil, fmt.Errorf("spectrogram column %d: %w", x, err)
		}
		block, err := src.ReadFrames(cfg.FFTSize)
		if err != nil {
			return nil, fmt.Errorf("spectrogram column %d: %w", x, err)
		}

		chunks := framer.Push(block, true)
		if len(chunks) > 0 {
			copy(frame, chunks[0].Samples)
		} else {
			for i := range frame {
				frame[i] = 0
			}
		}

		_, spectrum, err := analyzer.Analyze(frame)
		if err != nil {
			return nil, fmt.Errorf("spectrogram column %d: %w", x, err)
		}
		if err := sg.AddColumn(spectrum); err != nil {
			return nil, err
		}
	}

	return sg.Image(), nil
}

// WaveformPNG renders the waveform of src and writes it to path. The file
// is only created after rendering succeeded in full.
func WaveformPNG(src source.Source, cfg Config, path string) error {
	img, err := RenderWaveform(src, cfg)
	if err != nil {
		return err
	}
	return writePNG(img, path)
}

// SpectrogramPNG renders the spectrogram of src and writes it to path.
// The file is only created after rendering succeeded in full.
func SpectrogramPNG(src source.Source, cfg Config, path string) error {
	img, err := RenderSpectrogram(src, cfg)
	if err != nil {
		return err
	}
	return writePNG(img, path)
}

func writePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close image file: %w", err)
	}
	return nil
}
