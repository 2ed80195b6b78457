package main

import (
	"fmt"
	"math"
	"os"

	wav "github.com/youpy/go-wav"

	"github.com/cwbudde/algo-grain/dsp/core"
)

const pcm16Max = math.MaxInt16

func writeWAV(path string, left, right []float64, sampleRate float64) (err error) {
	if len(left) != len(right) {
		return fmt.Errorf("wav channels differ in length: %d vs %d", len(left), len(right))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	samples := make([]wav.Sample, len(left))
	for i := range samples {
		samples[i].Values[0] = toPCM16(left[i])
		samples[i].Values[1] = toPCM16(right[i])
	}

	w := wav.NewWriter(f, uint32(len(samples)), 2, uint32(math.Round(sampleRate)), 16)

	return w.WriteSamples(samples)
}

// toPCM16 converts a sample in [-1, 1] to a signed 16-bit value, clipping
// anything outside.
func toPCM16(x float64) int {
	if math.IsNaN(x) {
		return 0
	}

	return int(math.Round(core.Clamp(x, -1, 1) * pcm16Max))
}
