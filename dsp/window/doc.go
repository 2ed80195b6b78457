// Package window generates the amplitude envelopes applied over a grain's
// duration, and multiplies blocks by them.
//
// Envelopes are sampled on [0, 1] and returned either as raw coefficients
// ([Generate]) or as a mono [buffer.Buffer] ([Envelope]) that can be handed
// to the granular engine through a [buffer.Ref].
package window
