package palette

import (
	"fmt"
	"sort"
)

// Scheme holds the anchor colors of a named color scheme. Waveform strokes
// interpolate over 4 anchors indexed by spectral brightness; spectrograms
// interpolate over 7 anchors indexed by dB level.
type Scheme struct {
	Waveform    []RGB
	Spectrogram []RGB
}

// spectrogramAnchors is shared by all built-in schemes.
var spectrogramAnchors = []RGB{
	{0, 0, 0},
	{14, 17, 16},
	{40, 50, 76},
	{90, 180, 100},
	{224, 224, 44},
	{255, 60, 30},
	{255, 255, 255},
}

var schemes = map[string]Scheme{
	"default": {
		Waveform:    []RGB{{50, 0, 200}, {0, 220, 80}, {255, 224, 0}, {255, 0, 0}},
		Spectrogram: spectrogramAnchors,
	},
	"iso": {
		Waveform:    []RGB{{0, 0, 255}, {0, 255, 255}, {255, 255, 0}, {255, 0, 0}},
		Spectrogram: spectrogramAnchors,
	},
	"purple": {
		Waveform:    []RGB{{173, 173, 173}, {147, 149, 196}, {77, 80, 138}, {108, 66, 0}},
		Spectrogram: spectrogramAnchors,
	},
}

// SchemeByName returns a built-in color scheme.
func SchemeByName(name string) (Scheme, error) {
	s, ok := schemes[name]
	if !ok {
		return Scheme{}, fmt.Errorf("unknown color scheme %q (use one of %v)", name, Names())
	}
	return s, nil
}

// Names lists the built-in scheme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
