// Command grapher renders waveform and spectrogram PNG images from audio
// files.
//
// Usage:
//
//	grapher -o waveform.png -g spectrogram.png input.wav
//	grapher --width 1024 --height 256 --scheme purple -o wave.png input.mp3
//
// At least one of --waveform or --spectrogram must be given. Supported
// inputs: WAV, MP3, Ogg/Vorbis.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-grapher/palette"
	"github.com/cwbudde/algo-grapher/render"
	"github.com/cwbudde/algo-grapher/source"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfg             render.Config
		background      string
		waveformPath    string
		spectrogramPath string
		verbose         bool
	)

	cmd := &cobra.Command{
		Use:           "grapher [flags] input-file",
		Short:         "Render waveform and spectrogram images from audio files",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if waveformPath == "" && spectrogramPath == "" {
				return fmt.Errorf("nothing to do: pass --waveform and/or --spectrogram")
			}

			bg, err := parseColor(background)
			if err != nil {
				return err
			}
			cfg.Background = bg

			logger, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			return run(args[0], cfg, waveformPath, spectrogramPath, logger.Sugar())
		},
	}

	cmd.Flags().IntVarP(&cfg.Width, "width", "w", render.DefaultWidth, "image width in pixels")
	cmd.Flags().IntVar(&cfg.Height, "height", render.DefaultHeight, "image height in pixels")
	cmd.Flags().IntVarP(&cfg.FFTSize, "fft-size", "f", render.DefaultFFTSize, "spectral analysis frame length (power of two)")
	cmd.Flags().StringVarP(&cfg.Scheme, "scheme", "s", render.DefaultScheme,
		fmt.Sprintf("color scheme (%s)", strings.Join(palette.Names(), "|")))
	cmd.Flags().StringVarP(&background, "background", "b", "000000", "waveform background color as RRGGBB hex")
	cmd.Flags().StringVarP(&waveformPath, "waveform", "o", "", "waveform PNG output path")
	cmd.Flags().StringVarP(&spectrogramPath, "spectrogram", "g", "", "spectrogram PNG output path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func run(input string, cfg render.Config, waveformPath, spectrogramPath string, log *zap.SugaredLogger) error {
	src, err := source.Open(input)
	if err != nil {
		return err
	}
	defer src.Close()

	log.Infow("opened audio source",
		"file", input,
		"frames", src.TotalFrames(),
		"rate", src.SampleRate(),
		"channels", src.Channels(),
	)

	if waveformPath != "" {
		if err := render.WaveformPNG(src, cfg, waveformPath); err != nil {
			return fmt.Errorf("render waveform: %w", err)
		}
		log.Infow("wrote waveform", "path", waveformPath, "width", cfg.Width, "height", cfg.Height)
	}

	if spectrogramPath != "" {
		if err := render.SpectrogramPNG(src, cfg, spectrogramPath); err != nil {
			return fmt.Errorf("render spectrogram: %w", err)
		}
		log.Infow("wrote spectrogram", "path", spectrogramPath, "width", cfg.Width, "height", cfg.Height)
	}

	return nil
}

// parseColor parses an RRGGBB hex string, with or without a leading '#'.
func parseColor(s string) (palette.RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return palette.RGB{}, fmt.Errorf("background color must be RRGGBB hex: %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return palette.RGB{}, fmt.Errorf("background color must be RRGGBB hex: %q", s)
	}
	return palette.RGB{R: r, G: g, B: b}, nil
}
