// Package time computes level statistics of rendered audio in the time
// domain.
package time

import (
	"math"

	"github.com/cwbudde/algo-grain/dsp/core"
)

// Level holds time-domain level statistics of one channel.
//
//nolint:revive
type Level struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	PeakPos        int
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS, 0 for silence
	CrestFactor_dB float64
	Energy         float64 // sum of squares
	ZeroCrossings  int
	// Clipped counts samples with |x| > 1, which overflow fixed-point
	// output formats.
	Clipped int
}

// Calculate computes the Level of signal in a single pass.
func Calculate(signal []float64) Level {
	var m Meter
	m.Update(signal)

	return m.Result()
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	peak := 0.0
	for _, x := range signal {
		peak = math.Max(peak, math.Abs(x))
	}

	return peak
}

// Meter accumulates level statistics across blocks. Feeding a signal in
// pieces gives the same Level as Calculate on the whole signal.
type Meter struct {
	n             int
	sum           float64
	sumSq         float64
	peak          float64
	peakPos       int
	zeroCrossings int
	clipped       int
	last          float64
}

// Update adds a block of samples.
func (m *Meter) Update(samples []float64) {
	for _, x := range samples {
		if m.n > 0 && m.last*x < 0 {
			m.zeroCrossings++
		}

		if a := math.Abs(x); a > m.peak {
			m.peak = a
			m.peakPos = m.n
		}

		if math.Abs(x) > 1 {
			m.clipped++
		}

		m.sum += x
		m.sumSq += x * x
		m.last = x
		m.n++
	}
}

// Len returns the number of samples seen since the last Reset.
func (m *Meter) Len() int { return m.n }

// Result returns the statistics of everything seen since the last Reset.
func (m *Meter) Result() Level {
	if m.n == 0 {
		return Level{
			RMS_dB:         math.Inf(-1),
			Peak_dB:        math.Inf(-1),
			CrestFactor_dB: math.Inf(-1),
		}
	}

	nf := float64(m.n)
	rms := math.Sqrt(m.sumSq / nf)

	l := Level{
		Length:        m.n,
		DC:            m.sum / nf,
		RMS:           rms,
		RMS_dB:        core.LinearToDB(rms),
		Peak:          m.peak,
		PeakPos:       m.peakPos,
		Peak_dB:       core.LinearToDB(m.peak),
		Energy:        m.sumSq,
		ZeroCrossings: m.zeroCrossings,
		Clipped:       m.clipped,
	}

	l.CrestFactor_dB = math.Inf(-1)
	if rms > 0 {
		l.CrestFactor = m.peak / rms
		l.CrestFactor_dB = core.LinearToDB(l.CrestFactor)
	}

	return l
}

// Reset clears the meter for reuse.
func (m *Meter) Reset() {
	*m = Meter{}
}
