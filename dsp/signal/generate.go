// Package signal generates deterministic trigger and source signals.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-grain/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// SetSeed changes the noise seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Ramp generates a rising phasor in [0, 1) that wraps back to 0 freqHz
// times per second, starting at phase 0. Each wrap is a grain trigger in
// threshold mode.
func (g *Generator) Ramp(freqHz float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("ramp samples must be > 0: %d", samples)
	}

	if freqHz <= 0 || freqHz >= g.cfg.SampleRate || !core.IsFinite(freqHz) {
		return nil, fmt.Errorf("ramp frequency must be in (0, %f): %f", g.cfg.SampleRate, freqHz)
	}

	out := make([]float64, samples)
	step := freqHz / g.cfg.SampleRate
	phase := 0.0

	for i := range out {
		out[i] = phase

		phase += step
		if phase >= 1 {
			phase -= math.Floor(phase)
		}
	}

	return out, nil
}

// Pulse generates a bipolar square wave (+amplitude for the first half of
// each period, -amplitude for the second). Each rising edge is a grain
// trigger in zero-crossing mode.
func (g *Generator) Pulse(freqHz, amplitude float64, samples int) ([]float64, error) {
	ramp, err := g.Ramp(freqHz, samples)
	if err != nil {
		return nil, err
	}

	for i, phase := range ramp {
		if phase < 0.5 {
			ramp[i] = amplitude
		} else {
			ramp[i] = -amplitude
		}
	}

	return ramp, nil
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}

	step := 2 * math.Pi * freqHz / g.cfg.SampleRate

	out := make([]float64, samples)
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}

	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out, nil
}

// RampPeriod generates a ramp that wraps exactly every period samples:
// out[i] = (i mod period) / period.
func RampPeriod(period, samples int) ([]float64, error) {
	if period <= 1 {
		return nil, fmt.Errorf("ramp period must be > 1: %d", period)
	}

	if samples <= 0 {
		return nil, fmt.Errorf("ramp samples must be > 0: %d", samples)
	}

	out := make([]float64, samples)
	for i := range out {
		out[i] = float64(i%period) / float64(period)
	}

	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}

	return out, nil
}
