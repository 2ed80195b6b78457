// Package interp provides interpolation primitives and the fractional
// frame reader used by the granular engine.
//
// Available methods:
//
//   - [Linear2]: 2-point linear interpolation
//   - [Read]:    truncating or linear read from interleaved frames
package interp
