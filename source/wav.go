package source

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrNotWAV is returned when a file does not decode as RIFF/WAVE PCM.
var ErrNotWAV = errors.New("not a valid wav file")

type wavSource struct {
	f   *os.File
	dec *wav.Decoder
	buf *audio.IntBuffer

	sampleRate  int
	channels    int
	totalFrames int
	scale       float64
	pos         int
}

// OpenWAV opens a PCM WAV file as a Source.
func OpenWAV(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}

	s := &wavSource{f: f}
	if err := s.reset(); err != nil {
		f.Close()
		return nil, err
	}

	bytesPerFrame := s.channels * int(s.dec.BitDepth) / 8
	if bytesPerFrame <= 0 {
		f.Close()
		return nil, fmt.Errorf("%w: bad frame layout in %s", ErrNotWAV, path)
	}
	s.totalFrames = int(s.dec.PCMLen()) / bytesPerFrame

	return s, nil
}

// reset rewinds the file and rebuilds the decoder at the start of PCM data.
func (s *wavSource) reset() error {
	if _, err := s.f.Seek(0, 0); err != nil {
		return fmt.Errorf("rewind wav: %w", err)
	}

	dec := wav.NewDecoder(s.f)
	if err := dec.FwdToPCM(); err != nil {
		return fmt.Errorf("%w: %v", ErrNotWAV, err)
	}
	if dec.NumChans == 0 || dec.SampleRate == 0 || dec.BitDepth == 0 {
		return ErrNotWAV
	}

	s.dec = dec
	s.sampleRate = int(dec.SampleRate)
	s.channels = int(dec.NumChans)
	s.scale = float64(int64(1) << (dec.BitDepth - 1))
	s.pos = 0
	return nil
}

func (s *wavSource) TotalFrames() int { return s.totalFrames }
func (s *wavSource) SampleRate() int  { return s.sampleRate }
func (s *wavSource) Channels() int    { return s.channels }
func (s *wavSource) Close() error     { return s.f.Close() }

func (s *wavSource) Seek(frame int) error {
	if frame < 0 {
		return fmt.Errorf("wav seek to negative frame: %d", frame)
	}
	if frame < s.pos {
		if err := s.reset(); err != nil {
			return err
		}
	}
	return skipFrames(s, frame-s.pos)
}

func (s *wavSource) ReadFrames(n int) ([]float64, error) {
	if n <= 0 {
		return nil, nil
	}

	want := n * s.channels
	if s.buf == nil || cap(s.buf.Data) < want {
		s.buf = &audio.IntBuffer{
			Format: &audio.Format{NumChannels: s.channels, SampleRate: s.sampleRate},
			Data:   make([]int, want),
		}
	}
	s.buf.Data = s.buf.Data[:want]

	read, err := s.dec.PCMBuffer(s.buf)
	if err != nil {
		return nil, fmt.Errorf("read wav frames: %w", err)
	}

	frames := read / s.channels
	out := make([]float64, frames)
	for i := range out {
		out[i] = float64(s.buf.Data[i*s.channels]) / s.scale
	}
	s.pos += frames
	return out, nil
}
