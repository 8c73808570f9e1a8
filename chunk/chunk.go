// Package chunk rebuffers variably-sized sample blocks into fixed-size
// chunks for peak extraction and FFT framing.
package chunk

import "fmt"

// Chunk is one fixed-size run of samples. End marks the last chunk of a
// stream.
type Chunk struct {
	Samples []float64
	End     bool
}

// Adapter accumulates pushed sample blocks and cuts them into chunks of a
// fixed length. Leftover samples are buffered between calls; the adapter is
// owned by a single rendering pass and is not safe for concurrent use.
type Adapter struct {
	size     int
	pad      bool
	leftover []float64
}

// NewAdapter returns an adapter producing chunks of size samples. When pad
// is true, a final partial chunk is zero-padded to full length; otherwise
// the remainder is dropped.
func NewAdapter(size int, pad bool) (*Adapter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be > 0: %d", size)
	}
	return &Adapter{size: size, pad: pad}, nil
}

// Size returns the configured chunk length.
func (a *Adapter) Size() int { return a.size }

// Pending returns the number of buffered samples not yet emitted.
func (a *Adapter) Pending() int { return len(a.leftover) }

// Push appends block to the internal buffer and returns all full chunks
// that can be cut from it. Each returned chunk owns its own backing array.
// When end is true the stream is finished: with padding enabled a partial
// remainder is zero-padded and emitted, otherwise it is dropped, and the
// last emitted chunk carries the End marker.
func (a *Adapter) Push(block []float64, end bool) []Chunk {
	a.leftover = append(a.leftover, block...)

	var chunks []Chunk
	for len(a.leftover) >= a.size {
		c := make([]float64, a.size)
		copy(c, a.leftover[:a.size])
		a.leftover = a.leftover[a.size:]
		chunks = append(chunks, Chunk{Samples: c})
	}

	if !end {
		return chunks
	}

	switch {
	case len(a.leftover) > 0 && a.pad:
		c := make([]float64, a.size)
		copy(c, a.leftover)
		chunks = append(chunks, Chunk{Samples: c, End: true})
	case len(chunks) > 0:
		chunks[len(chunks)-1].End = true
	}
	a.leftover = nil

	return chunks
}
