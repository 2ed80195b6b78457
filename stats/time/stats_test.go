package time

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-grain/internal/testutil"
)

func TestCalculateEmpty(t *testing.T) {
	l := Calculate(nil)

	if l.Length != 0 || l.RMS != 0 || l.Peak != 0 {
		t.Fatalf("Calculate(nil) = %+v, want zero level", l)
	}

	for name, v := range map[string]float64{"RMS_dB": l.RMS_dB, "Peak_dB": l.Peak_dB, "CrestFactor_dB": l.CrestFactor_dB} {
		if !math.IsInf(v, -1) {
			t.Fatalf("%s = %v, want -Inf", name, v)
		}
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name      string
		signal    []float64
		wantDC    float64
		wantRMS   float64
		wantPeak  float64
		wantPos   int
		wantCross int
		wantClip  int
	}{
		{name: "dc", signal: testutil.DC(0.5, 8), wantDC: 0.5, wantRMS: 0.5, wantPeak: 0.5},
		{name: "square", signal: []float64{1, -1, 1, -1}, wantRMS: 1, wantPeak: 1, wantCross: 3},
		{name: "clipped", signal: []float64{0, 2, -3, 0}, wantDC: -0.25, wantRMS: math.Sqrt(13.0 / 4), wantPeak: 3, wantPos: 2, wantCross: 1, wantClip: 2},
		{name: "touching zero", signal: []float64{1, 0, -1}, wantRMS: math.Sqrt(2.0 / 3), wantPeak: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Calculate(tt.signal)

			if l.Length != len(tt.signal) {
				t.Fatalf("Length = %d, want %d", l.Length, len(tt.signal))
			}

			if math.Abs(l.DC-tt.wantDC) > 1e-12 {
				t.Fatalf("DC = %v, want %v", l.DC, tt.wantDC)
			}

			if math.Abs(l.RMS-tt.wantRMS) > 1e-12 {
				t.Fatalf("RMS = %v, want %v", l.RMS, tt.wantRMS)
			}

			if l.Peak != tt.wantPeak || l.PeakPos != tt.wantPos {
				t.Fatalf("Peak = %v at %d, want %v at %d", l.Peak, l.PeakPos, tt.wantPeak, tt.wantPos)
			}

			if l.ZeroCrossings != tt.wantCross {
				t.Fatalf("ZeroCrossings = %d, want %d", l.ZeroCrossings, tt.wantCross)
			}

			if l.Clipped != tt.wantClip {
				t.Fatalf("Clipped = %d, want %d", l.Clipped, tt.wantClip)
			}

			if math.Abs(l.CrestFactor-tt.wantPeak/tt.wantRMS) > 1e-12 {
				t.Fatalf("CrestFactor = %v, want %v", l.CrestFactor, tt.wantPeak/tt.wantRMS)
			}
		})
	}
}

func TestSineLevels(t *testing.T) {
	x := testutil.DeterministicSine(100, 48000, 1, 48000)
	l := Calculate(x)

	if math.Abs(l.RMS_dB-(-3.0103)) > 0.01 {
		t.Fatalf("RMS_dB = %v, want -3.01", l.RMS_dB)
	}

	if math.Abs(l.CrestFactor-math.Sqrt2) > 1e-3 {
		t.Fatalf("CrestFactor = %v, want sqrt(2)", l.CrestFactor)
	}

	if math.Abs(RMS(x)-l.RMS) > 1e-12 || Peak(x) != l.Peak {
		t.Fatalf("RMS/Peak helpers disagree with Calculate")
	}
}

func TestMeterMatchesCalculate(t *testing.T) {
	x := testutil.DeterministicNoise(5, 1.5, 1000)
	want := Calculate(x)

	var m Meter
	for off := 0; off < len(x); off += 64 {
		m.Update(x[off:min(off+64, len(x))])
	}

	got := m.Result()
	if got.Length != want.Length || got.Peak != want.Peak || got.PeakPos != want.PeakPos ||
		got.ZeroCrossings != want.ZeroCrossings || got.Clipped != want.Clipped {
		t.Fatalf("Meter = %+v, want %+v", got, want)
	}

	if math.Abs(got.RMS-want.RMS) > 1e-12 || math.Abs(got.DC-want.DC) > 1e-12 {
		t.Fatalf("Meter RMS/DC = %v/%v, want %v/%v", got.RMS, got.DC, want.RMS, want.DC)
	}

	m.Reset()

	if m.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", m.Len())
	}
}
