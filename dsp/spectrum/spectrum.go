package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/meko-christian/algo-approx"

	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/window"
)

// RolloffFraction is the share of total power below the rolloff frequency.
const RolloffFraction = 0.85

var errEmptySignal = errors.New("spectrum signal must not be empty")

// Summary describes the one-sided power spectrum of a signal.
type Summary struct {
	FFTSize int
	BinHz   float64

	// PeakHz is the frequency of the strongest bin.
	PeakHz float64
	// PeakDB is the strongest bin relative to a full-scale sine, in dB.
	PeakDB float64
	// Centroid is the power-weighted mean frequency in Hz.
	Centroid float64
	// Rolloff is the frequency below which RolloffFraction of the power lies.
	Rolloff float64
	// Flatness is the geometric over arithmetic mean of the power bins
	// (DC excluded), 0 for pure tones and close to 1 for white noise.
	Flatness float64

	// Power holds the bins 0..FFTSize/2.
	Power []float64
}

// Analyze computes the Summary of signal sampled at sampleRate.
func Analyze(signal []float64, sampleRate float64) (Summary, error) {
	if len(signal) == 0 {
		return Summary{}, errEmptySignal
	}

	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return Summary{}, fmt.Errorf("spectrum sample rate must be > 0: %v", sampleRate)
	}

	fftSize := nextPowerOfTwo(len(signal))

	windowed := make([]float64, len(signal))
	copy(windowed, signal)

	coeffs := window.Generate(window.TypeHann, len(signal), window.WithPeriodic())
	if err := window.ApplyCoefficientsInPlace(windowed, coeffs); err != nil {
		return Summary{}, err
	}

	in := make([]complex128, fftSize)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Summary{}, fmt.Errorf("spectrum plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Summary{}, fmt.Errorf("spectrum forward transform: %w", err)
	}

	half := fftSize/2 + 1
	re := make([]float64, half)
	im := make([]float64, half)

	for i := range half {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	power := make([]float64, half)
	vecmath.Power(power, re, im)

	s := Summary{
		FFTSize: fftSize,
		BinHz:   sampleRate / float64(fftSize),
		Power:   power,
	}

	// A full-scale sine on a bin center peaks at (sum(w)/2)^2.
	gain := 0.0
	for _, c := range coeffs {
		gain += c
	}

	ref := gain * gain / 4

	peakBin, total, weighted := 0, 0.0, 0.0
	for i, p := range power {
		if p > power[peakBin] {
			peakBin = i
		}

		total += p
		weighted += p * float64(i)
	}

	s.PeakHz = float64(peakBin) * s.BinHz
	s.PeakDB = powerToDB(power[peakBin], ref)

	if total > 0 {
		s.Centroid = weighted / total * s.BinHz
		s.Rolloff = rolloff(power, total) * s.BinHz
	}

	s.Flatness = flatness(power)

	return s, nil
}

func powerToDB(p, ref float64) float64 {
	if p <= 0 || ref <= 0 {
		return math.Inf(-1)
	}

	return 10 * approx.FastLog(p/ref) / math.Ln10
}

func rolloff(power []float64, total float64) float64 {
	threshold := RolloffFraction * total

	cum := 0.0
	for i, p := range power {
		cum += p
		if cum >= threshold {
			return float64(i)
		}
	}

	return float64(len(power) - 1)
}

func flatness(power []float64) float64 {
	if len(power) < 2 {
		return 0
	}

	sumLin, sumLog := 0.0, 0.0
	for _, p := range power[1:] {
		if p <= 0 {
			return 0
		}

		sumLin += p
		sumLog += math.Log(p)
	}

	n := float64(len(power) - 1)

	return math.Exp(sumLog/n) / (sumLin / n)
}

func nextPowerOfTwo(n int) int {
	if n <= 2 {
		return 2
	}

	return 1 << bits.Len(uint(n-1))
}
