package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-grain/dsp/core"
)

func TestSineLength(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))

	s, err := g.Sine(1000, 1, 64)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}

	if len(s) != 64 {
		t.Fatalf("len = %d, want 64", len(s))
	}
}

func TestRampWrapsAtFrequency(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))

	r, err := g.Ramp(10, 1000)
	if err != nil {
		t.Fatalf("Ramp() error = %v", err)
	}

	wraps := 0
	for i := 1; i < len(r); i++ {
		if r[i] < 0 || r[i] >= 1 {
			t.Fatalf("r[%d] = %v out of [0,1)", i, r[i])
		}

		if r[i-1]-r[i] > 0.9 {
			wraps++
		}
	}

	// 10 Hz over one second wraps 9 or 10 times depending on rounding at the edge.
	if wraps < 9 || wraps > 10 {
		t.Fatalf("wraps = %d, want 9..10", wraps)
	}
}

func TestRampRejectsBadFrequency(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))

	for _, f := range []float64{0, -1, 1000, math.NaN()} {
		if _, err := g.Ramp(f, 16); err == nil {
			t.Fatalf("Ramp(%v) expected error", f)
		}
	}

	if _, err := g.Ramp(10, 0); err == nil {
		t.Fatal("Ramp(samples=0) expected error")
	}
}

func TestRampPeriod(t *testing.T) {
	r, err := RampPeriod(4, 9)
	if err != nil {
		t.Fatalf("RampPeriod() error = %v", err)
	}

	want := []float64{0, 0.25, 0.5, 0.75, 0, 0.25, 0.5, 0.75, 0}
	for i := range want {
		if r[i] != want[i] {
			t.Fatalf("r[%d] = %v, want %v", i, r[i], want[i])
		}
	}

	if _, err := RampPeriod(1, 4); err == nil {
		t.Fatal("RampPeriod(1) expected error")
	}
}

func TestPulseCrossesZero(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))

	p, err := g.Pulse(100, 0.5, 100)
	if err != nil {
		t.Fatalf("Pulse() error = %v", err)
	}

	rising := 0
	for i := 1; i < len(p); i++ {
		if math.Abs(p[i]) != 0.5 {
			t.Fatalf("p[%d] = %v, want ±0.5", i, p[i])
		}

		if p[i-1] < 0 && p[i] > 0 {
			rising++
		}
	}

	if rising < 8 || rising > 10 {
		t.Fatalf("rising edges = %d, want about 9", rising)
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	g1 := NewGeneratorWithOptions(nil, WithSeed(42))
	g2 := NewGeneratorWithOptions(nil, WithSeed(42))

	n1, err := g1.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	n2, err := g2.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1[i], n2[i])
		}
	}
}

func TestSetSeed(t *testing.T) {
	g := NewGenerator()
	g.SetSeed(99)

	if g.Seed() != 99 {
		t.Fatalf("Seed()=%d, want 99", g.Seed())
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{-2, 1}, 1)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if out[0] != -1 || out[1] != 0.5 {
		t.Fatalf("Normalize() = %v, want [-1 0.5]", out)
	}

	if _, err := Normalize(nil, 1); err == nil {
		t.Fatal("Normalize(nil) expected error")
	}
}
