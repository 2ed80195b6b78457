// Package spectrum summarizes the frequency content of rendered audio.
//
// Analyze windows a signal with a periodic Hann window, zero-pads it to a
// power of two and reduces the one-sided power spectrum to a few
// descriptors (peak, centroid, rolloff, flatness) suitable for reports.
package spectrum
