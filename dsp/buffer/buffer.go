package buffer

import (
	"errors"
	"fmt"
)

var errNoChannels = errors.New("buffer channel count must be > 0")

// Buffer holds interleaved multichannel frames.
// Frame f, channel c lives at Samples()[f*Channels()+c].
type Buffer struct {
	samples  []float64
	channels int
}

// New returns a zero-filled Buffer with the given frame and channel counts.
// Negative frame counts are treated as zero and channel counts below one as one.
func New(frames, channels int) *Buffer {
	if frames < 0 {
		frames = 0
	}

	if channels < 1 {
		channels = 1
	}

	return &Buffer{samples: make([]float64, frames*channels), channels: channels}
}

// FromSlice wraps an existing mono slice without copying.
// Mutations to the slice are visible through the Buffer and vice versa.
func FromSlice(s []float64) *Buffer {
	return &Buffer{samples: s, channels: 1}
}

// FromInterleaved wraps interleaved samples without copying.
// A trailing partial frame is not addressable.
func FromInterleaved(s []float64, channels int) (*Buffer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", errNoChannels, channels)
	}

	return &Buffer{samples: s[:len(s)-len(s)%channels], channels: channels}, nil
}

// Samples returns the underlying interleaved slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Frames returns the number of frames.
func (b *Buffer) Frames() int {
	if b == nil {
		return 0
	}

	return len(b.samples) / b.channels
}

// Channels returns the number of interleaved channels.
func (b *Buffer) Channels() int {
	return b.channels
}

// At returns the sample at frame f, channel ch. It does not bounds-check
// beyond the slice access itself.
func (b *Buffer) At(f, ch int) float64 {
	return b.samples[f*b.channels+ch]
}

// Set writes the sample at frame f, channel ch.
func (b *Buffer) Set(f, ch int, v float64) {
	b.samples[f*b.channels+ch] = v
}

// Empty reports whether the buffer is nil or holds no frames.
func (b *Buffer) Empty() bool {
	return b.Frames() == 0
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	for i := range b.samples {
		b.samples[i] = 0
	}
}

// Copy returns a deep copy of the buffer.
func (b *Buffer) Copy() *Buffer {
	s := make([]float64, len(b.samples))
	copy(s, b.samples)

	return &Buffer{samples: s, channels: b.channels}
}
