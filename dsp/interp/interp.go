package interp

// Linear2 interpolates between x0 and x1 at t in [0,1].
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Read returns one channel of interleaved frames at fractional frame
// position pos.
//
// With interpolate false the position is truncated to a frame index. With
// interpolate true the result is linearly interpolated between frame
// floor(pos) and the following frame; the last frame pairs with itself.
//
// The caller guarantees 0 <= pos < frames and 0 <= channel < channels.
func Read(samples []float64, pos float64, channels, channel int, interpolate bool) float64 {
	frame := int(pos)
	i0 := frame*channels + channel

	if !interpolate {
		return samples[i0]
	}

	i1 := i0 + channels
	if i1 >= len(samples) {
		i1 = i0
	}

	return Linear2(pos-float64(frame), samples[i0], samples[i1])
}
