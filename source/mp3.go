package source

import (
	"fmt"
	"io"
	"os"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// go-mp3 always outputs 16-bit little-endian stereo PCM.
const mp3BytesPerFrame = 4

type mp3Source struct {
	f   io.Closer
	pcm io.ReadSeeker
	buf []byte

	sampleRate  int
	totalFrames int
	pos         int
}

// OpenMP3 opens an MP3 file as a Source.
func OpenMP3(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mp3: %w", err)
	}

	dec, err := gomp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode mp3: %w", err)
	}

	return newMP3Source(f, dec, dec.SampleRate(), dec.Length()), nil
}

// newMP3Source wraps an already decoded 16-bit little-endian stereo PCM
// stream of pcmBytes total length.
func newMP3Source(f io.Closer, pcm io.ReadSeeker, sampleRate int, pcmBytes int64) *mp3Source {
	return &mp3Source{
		f:           f,
		pcm:         pcm,
		sampleRate:  sampleRate,
		totalFrames: int(pcmBytes / mp3BytesPerFrame),
	}
}

func (s *mp3Source) TotalFrames() int { return s.totalFrames }
func (s *mp3Source) SampleRate() int  { return s.sampleRate }
func (s *mp3Source) Channels() int    { return 2 }
func (s *mp3Source) Close() error     { return s.f.Close() }

func (s *mp3Source) Seek(frame int) error {
	if frame < 0 {
		return fmt.Errorf("mp3 seek to negative frame: %d", frame)
	}
	if _, err := s.pcm.Seek(int64(frame)*mp3BytesPerFrame, io.SeekStart); err != nil {
		return fmt.Errorf("seek mp3: %w", err)
	}
	s.pos = frame
	return nil
}

func (s *mp3Source) ReadFrames(n int) ([]float64, error) {
	if n <= 0 {
		return nil, nil
	}

	want := n * mp3BytesPerFrame
	if cap(s.buf) < want {
		s.buf = make([]byte, want)
	}
	s.buf = s.buf[:want]

	read, err := io.ReadFull(s.pcm, s.buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("read mp3 frames: %w", err)
	}

	frames := read / mp3BytesPerFrame
	out := make([]float64, frames)
	for i := range out {
		// Left channel only; the pipeline is mono.
		v := int16(uint16(s.buf[i*4]) | uint16(s.buf[i*4+1])<<8)
		out[i] = float64(v) / 32768.0
	}
	s.pos += frames
	return out, nil
}
