// Package buffer provides the sample buffers read by the granular engine.
//
// A [Buffer] is an immutable-by-convention block of interleaved float64
// frames with a fixed channel count. A [Ref] is the named handle the engine
// holds on to: the owner may swap or edit the buffer behind it at any time and
// the engine is told about it through an atomic "modified" notification that
// it consumes at its next per-sample decision point.
//
// [Pool] offers sync.Pool based reuse of scratch buffers for block rendering.
package buffer
