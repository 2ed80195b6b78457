// Package pan maps a scalar pan position to a pair of channel gains.
package pan

import (
	"fmt"
	"math"
	"strings"
)

// Law selects the curve used by Gains.
type Law int

const (
	// ConstantPower keeps left²+right² = 1 across the whole range.
	// Center is (√½, √½).
	ConstantPower Law = iota
	// Linear attenuates only the far channel; center is (1, 1).
	Linear
)

// String returns the law name.
func (l Law) String() string {
	switch l {
	case ConstantPower:
		return "constant-power"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("Law(%d)", int(l))
	}
}

// ParseLaw returns the Law for name ("constant-power", "equal-power" or "linear").
func ParseLaw(name string) (Law, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "constant-power", "equal-power", "power":
		return ConstantPower, nil
	case "linear":
		return Linear, nil
	default:
		return ConstantPower, fmt.Errorf("unknown pan law %q", name)
	}
}

// Gains returns (left, right) gains for pan in [-1, 1].
// -1 is hard left, 0 center, +1 hard right. Out-of-range and NaN positions
// are clamped (NaN maps to center).
func Gains(pan float64, law Law) (left, right float64) {
	switch {
	case pan < -1:
		pan = -1
	case pan > 1:
		pan = 1
	case math.IsNaN(pan):
		pan = 0
	}

	if law == Linear {
		return math.Min(1, 1-pan), math.Min(1, 1+pan)
	}

	return math.Sqrt((1 - pan) * 0.5), math.Sqrt((1 + pan) * 0.5)
}
