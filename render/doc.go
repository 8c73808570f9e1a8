// Package render draws waveform and spectrogram images from audio sample
// streams.
//
// The waveform renderer plots one min/max peak pair per output column,
// colored by the column's spectral centroid. The spectrogram renderer maps
// dB spectra onto a perceptual log-frequency axis through a precomputed
// bin mapping and a 256-entry palette. Both pipelines are single-threaded:
// a column is fully computed before the next one begins.
package render
