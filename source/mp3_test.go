package source

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// stereoPCM interleaves left/right int16 pairs as little-endian bytes, the
// layout go-mp3 produces.
func stereoPCM(left, right []int16) []byte {
	var buf bytes.Buffer
	for i := range left {
		binary.Write(&buf, binary.LittleEndian, left[i])
		binary.Write(&buf, binary.LittleEndian, right[i])
	}
	return buf.Bytes()
}

func TestMP3ReadFrames(t *testing.T) {
	const frames = 8
	left := make([]int16, frames)
	right := make([]int16, frames)
	for i := range left {
		left[i] = int16(i * 1000)
		right[i] = int16(-i * 1000)
	}
	pcm := stereoPCM(left, right)

	src := newMP3Source(nopCloser{}, bytes.NewReader(pcm), 44100, int64(len(pcm)))
	if got := src.TotalFrames(); got != frames {
		t.Fatalf("TotalFrames() = %d, want %d", got, frames)
	}
	if got := src.SampleRate(); got != 44100 {
		t.Fatalf("SampleRate() = %d, want 44100", got)
	}
	if got := src.Channels(); got != 2 {
		t.Fatalf("Channels() = %d, want 2", got)
	}

	got, err := src.ReadFrames(4)
	if err != nil {
		t.Fatalf("ReadFrames() error = %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len(ReadFrames(4)) = %d, want 4", len(got))
	}
	for i, v := range got {
		want := float64(left[i]) / 32768
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("frame %d = %v, want left channel %v", i, v, want)
		}
	}

	// Asking past end of stream returns the remaining frames only.
	got, err = src.ReadFrames(frames)
	if err != nil {
		t.Fatalf("ReadFrames() at tail error = %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len(ReadFrames) at tail = %d, want 4", len(got))
	}
	for i, v := range got {
		want := float64(left[4+i]) / 32768
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("tail frame %d = %v, want %v", i, v, want)
		}
	}

	got, err = src.ReadFrames(4)
	if err != nil {
		t.Fatalf("ReadFrames() past end error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len(ReadFrames) past end = %d, want 0", len(got))
	}
}

func TestMP3Seek(t *testing.T) {
	const frames = 16
	left := make([]int16, frames)
	right := make([]int16, frames)
	for i := range left {
		left[i] = int16((i + 1) * 512)
	}
	pcm := stereoPCM(left, right)
	src := newMP3Source(nopCloser{}, bytes.NewReader(pcm), 44100, int64(len(pcm)))

	// Forward, then backward.
	for _, start := range []int{10, 3} {
		if err := src.Seek(start); err != nil {
			t.Fatalf("Seek(%d) error = %v", start, err)
		}
		got, err := src.ReadFrames(2)
		if err != nil {
			t.Fatalf("ReadFrames() after Seek(%d) error = %v", start, err)
		}
		for i, v := range got {
			want := float64(left[start+i]) / 32768
			if math.Abs(v-want) > 1e-12 {
				t.Fatalf("Seek(%d) frame %d = %v, want %v", start, i, v, want)
			}
		}
	}

	if err := src.Seek(-1); err == nil {
		t.Fatal("Seek(-1) error = nil, want error")
	}
}

func TestOpenMP3Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := OpenMP3(filepath.Join(t.TempDir(), "nope.mp3")); err == nil {
			t.Fatal("OpenMP3() error = nil, want error")
		}
	})

	t.Run("not mpeg data", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "junk.mp3")
		if err := os.WriteFile(path, []byte("this is not audio"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := OpenMP3(path); err == nil {
			t.Fatal("OpenMP3() error = nil, want error")
		}
	})
}
