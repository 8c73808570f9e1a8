// Package palette builds fixed-size color lookup tables from a small list
// of anchor colors.
//
// Renderers index the table with a scalar in [0,255] instead of computing a
// color per pixel.
package palette

import "fmt"

// Size is the number of entries in a rendering lookup table.
const Size = 256

// RGB is a single 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// Build returns a lookup table of count colors obtained by piecewise-linear
// interpolation over the ordered anchor list. Entry 0 equals the first
// anchor and entry count-1 equals the last anchor. Channel values are
// truncated to integers.
func Build(anchors []RGB, count int) ([]RGB, error) {
	if len(anchors) < 2 {
		return nil, fmt.Errorf("palette requires at least 2 anchor colors: %d", len(anchors))
	}
	if count < 2 {
		return nil, fmt.Errorf("palette size must be >= 2: %d", count)
	}

	out := make([]RGB, count)
	span := float64(len(anchors) - 1)

	for i := range out {
		pos := float64(i) * span / float64(count-1)
		idx := int(pos)
		alpha := pos - float64(idx)

		c0 := anchors[idx]
		if alpha <= 0 {
			out[i] = c0
			continue
		}

		c1 := anchors[idx+1]
		out[i] = RGB{
			R: uint8((1-alpha)*float64(c0.R) + alpha*float64(c1.R)),
			G: uint8((1-alpha)*float64(c0.G) + alpha*float64(c1.G)),
			B: uint8((1-alpha)*float64(c0.B) + alpha*float64(c1.B)),
		}
	}

	return out, nil
}
