package source

import (
	"fmt"
	"io"
	"os"

	"github.com/jfreymuth/oggvorbis"
)

// vorbisStream is the slice of the oggvorbis reader the source uses.
type vorbisStream interface {
	Read(p []float32) (int, error)
	SetPosition(pos int64) error
	Length() int64
	Channels() int
	SampleRate() int
}

type vorbisSource struct {
	f   io.Closer
	dec vorbisStream
	buf []float32

	pos int
}

// OpenVorbis opens an Ogg/Vorbis file as a Source.
func OpenVorbis(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vorbis: %w", err)
	}

	dec, err := oggvorbis.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode vorbis: %w", err)
	}

	return newVorbisSource(f, dec), nil
}

func newVorbisSource(f io.Closer, dec vorbisStream) *vorbisSource {
	return &vorbisSource{f: f, dec: dec}
}

func (s *vorbisSource) TotalFrames() int { return int(s.dec.Length()) }
func (s *vorbisSource) SampleRate() int  { return s.dec.SampleRate() }
func (s *vorbisSource) Channels() int    { return s.dec.Channels() }
func (s *vorbisSource) Close() error     { return s.f.Close() }

func (s *vorbisSource) Seek(frame int) error {
	if frame < 0 {
		return fmt.Errorf("vorbis seek to negative frame: %d", frame)
	}
	if err := s.dec.SetPosition(int64(frame)); err != nil {
		return fmt.Errorf("seek vorbis: %w", err)
	}
	s.pos = frame
	return nil
}

func (s *vorbisSource) ReadFrames(n int) ([]float64, error) {
	if n <= 0 {
		return nil, nil
	}

	ch := s.dec.Channels()
	want := n * ch
	if cap(s.buf) < want {
		s.buf = make([]float32, want)
	}
	s.buf = s.buf[:want]

	// The reader may return short counts mid-stream; keep filling so a
	// short result only ever means end of stream.
	filled := 0
	for filled < want {
		m, err := s.dec.Read(s.buf[filled:])
		filled += m
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read vorbis frames: %w", err)
		}
		if m == 0 {
			break
		}
	}

	frames := filled / ch
	out := make([]float64, frames)
	for i := range out {
		out[i] = float64(s.buf[i*ch])
	}
	s.pos += frames
	return out, nil
}
