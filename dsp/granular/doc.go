// Package granular implements a real-time granular synthesis engine.
//
// A trigger signal (a ramp wrapping from ~1 back to ~0, or a pulse crossing
// zero upwards) requests new grains. Each grain is a windowed, pitch-shifted
// excerpt of a source buffer with its own start position, duration, pitch
// and stereo pan, randomized within per-block parameter ranges. Grains live
// in a fixed pool of [MaxGrains] slots under a runtime-configurable
// concurrency limit and are mixed sample by sample into a stereo pair.
//
// The per-sample path ([Engine.ProcessBlock]) does not allocate, lock or
// block. Configuration commands (limit, parameters, modes, buffers) are
// meant to be issued between blocks from the audio goroutine; only
// [Engine.NotifyModified] and the [buffer.Ref] operations may be called
// concurrently with processing.
//
// Lowering or raising the concurrency limit while grains are playing puts
// the pool into a draining state:
//
//	Stable   --SetLimit, live > 0-->  Draining
//	Draining --live == 0----------->  Stable
//
// While draining no grain is spawned and mixing still covers every slot the
// old limit allowed.
package granular
