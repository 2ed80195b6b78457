package granular

import (
	"fmt"

	"github.com/cwbudde/algo-grain/dsp/core"
)

// Param identifies one of the eight randomization bounds.
type Param int

const (
	StartMin Param = iota
	StartMax
	LengthMin
	LengthMax
	PitchMin
	PitchMax
	PanMin
	PanMax
)

// NumParams is the number of Param values.
const NumParams = 8

var paramNames = [NumParams]string{
	"start-min", "start-max",
	"length-min", "length-max",
	"pitch-min", "pitch-max",
	"pan-min", "pan-max",
}

func (p Param) String() string {
	if p < 0 || p >= NumParams {
		return fmt.Sprintf("Param(%d)", int(p))
	}

	return paramNames[p]
}

// ParseParam returns the Param named name, as printed by String.
func ParseParam(name string) (Param, error) {
	for i, n := range paramNames {
		if n == name {
			return Param(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
}

// Controls carries optional per-block control signals, one per Param.
// A nil or empty slice means the input is not connected; a connected input
// contributes its first sample for the whole block.
type Controls [NumParams][]float64

// Params holds the scalar fallback values used when a control input is not
// connected. Start and length are in milliseconds.
type Params struct {
	values [NumParams]float64
}

// DefaultParams returns start 0 ms, length 150 ms, pitch 1 and pan 0.
func DefaultParams() Params {
	var p Params
	p.values[LengthMin] = 150
	p.values[LengthMax] = 150
	p.values[PitchMin] = 1
	p.values[PitchMax] = 1

	return p
}

// Get returns the stored value of param.
func (p *Params) Get(param Param) float64 {
	if param < 0 || param >= NumParams {
		return 0
	}

	return p.values[param]
}

// Set validates and stores v. A rejected value leaves the old one in place.
func (p *Params) Set(param Param, v float64) error {
	if param < 0 || param >= NumParams {
		return fmt.Errorf("%w: %d", ErrUnknownParam, int(param))
	}

	if !core.IsFinite(v) {
		return fmt.Errorf("%w: %s must be finite: %v", ErrParamRange, param, v)
	}

	switch param {
	case StartMin, StartMax:
		if v < 0 {
			return fmt.Errorf("%w: %s must be >= 0: %v", ErrParamRange, param, v)
		}
	case LengthMin, LengthMax:
		if v < MinGrainLengthMs || v > MaxGrainLengthMs {
			return fmt.Errorf("%w: %s must be in [%g, %g]: %v",
				ErrParamRange, param, MinGrainLengthMs, MaxGrainLengthMs, v)
		}
	case PitchMin, PitchMax:
		if v <= 0 || v > MaxPitch {
			return fmt.Errorf("%w: %s must be in (0, %g]: %v", ErrParamRange, param, MaxPitch, v)
		}
	case PanMin, PanMax:
		if v < -1 || v > 1 {
			return fmt.Errorf("%w: %s must be in [-1, 1]: %v", ErrParamRange, param, v)
		}
	}

	p.values[param] = v

	return nil
}

// Resolve picks the effective value of one parameter: the control signal
// when connected, the scalar otherwise, scaled into internal units.
func Resolve(connected bool, signal, fallback, unitScale float64) float64 {
	if connected {
		return signal * unitScale
	}

	return fallback * unitScale
}

// Ranges resolves the randomization ranges for one block. Start and length
// are scaled from milliseconds to samples.
func (p *Params) Ranges(c *Controls, samplesPerMs float64) Ranges {
	get := func(param Param, scale float64) float64 {
		var in []float64
		if c != nil {
			in = c[param]
		}

		if len(in) > 0 {
			return Resolve(true, in[0], p.values[param], scale)
		}

		return Resolve(false, 0, p.values[param], scale)
	}

	return Ranges{
		Start:  Range{Min: get(StartMin, samplesPerMs), Max: get(StartMax, samplesPerMs)},
		Length: Range{Min: get(LengthMin, samplesPerMs), Max: get(LengthMax, samplesPerMs)},
		Pitch:  Range{Min: get(PitchMin, 1), Max: get(PitchMax, 1)},
		Pan:    Range{Min: get(PanMin, 1), Max: get(PanMax, 1)},
	}
}
