package main

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-grain/dsp/buffer"
	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/granular"
	"github.com/cwbudde/algo-grain/dsp/pan"
	"github.com/cwbudde/algo-grain/dsp/signal"
	"github.com/cwbudde/algo-grain/dsp/window"
	timestats "github.com/cwbudde/algo-grain/stats/time"
)

const envelopeLength = 1024

type secondReport struct {
	index   int
	maxLive int
	left    timestats.Level
	right   timestats.Level
}

type result struct {
	sampleRate float64
	left       []float64
	right      []float64
	seconds    []secondReport
	maxLive    int
	faults     uint64
}

func render(o options, logger *slog.Logger) (*result, error) {
	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(o.sampleRate), core.WithBlockSize(o.block)},
		signal.WithSeed(o.seed),
	)

	src, err := buildSource(gen, o)
	if err != nil {
		return nil, err
	}

	shape, err := window.ParseType(o.window)
	if err != nil {
		return nil, err
	}

	env, err := window.Envelope(shape, envelopeLength, 1)
	if err != nil {
		return nil, err
	}

	law, err := pan.ParseLaw(o.law)
	if err != nil {
		return nil, err
	}

	var secondLive int

	e, err := granular.New(
		buffer.NewRef(o.source, src),
		buffer.NewRef(o.window, env),
		o.limit,
		granular.WithSampleRate(o.sampleRate),
		granular.WithBlockSize(o.block),
		granular.WithSeed(o.seed),
		granular.WithLogger(logger),
		granular.WithPanLaw(law),
		granular.WithStereo(o.stereo),
		granular.WithWindowInterpolation(o.winterp),
		granular.WithSampleInterpolation(o.sinterp),
		granular.WithZeroCrossing(o.zero),
		granular.WithTriggerLatch(o.latch),
		granular.WithCountReporter(func(live int) { secondLive = max(secondLive, live) }),
	)
	if err != nil {
		return nil, err
	}

	for i, v := range o.params {
		if err := e.SetParam(granular.Param(i), v); err != nil {
			return nil, err
		}
	}

	total := int(math.Round(o.seconds * o.sampleRate))

	trigger, err := buildTrigger(gen, o, total)
	if err != nil {
		return nil, err
	}

	logger.Debug("rendering", "frames", total, "block", o.block, "limit", o.limit,
		"source_frames", src.Frames(), "window", shape)

	res := &result{
		sampleRate: o.sampleRate,
		left:       make([]float64, total),
		right:      make([]float64, total),
	}

	pool := buffer.NewPool()
	lb := pool.Get(o.block, 1)
	rb := pool.Get(o.block, 1)

	defer pool.Put(lb)
	defer pool.Put(rb)

	perSecond := max(1, int(o.sampleRate))

	var lm, rm timestats.Meter

	flush := func() {
		res.seconds = append(res.seconds, secondReport{
			index:   len(res.seconds),
			maxLive: secondLive,
			left:    lm.Result(),
			right:   rm.Result(),
		})
		res.maxLive = max(res.maxLive, secondLive)
		secondLive = 0

		lm.Reset()
		rm.Reset()
	}

	for off := 0; off < total; {
		// Blocks never straddle a report boundary.
		n := min(o.block, total-off, perSecond-lm.Len())

		l := lb.Samples()[:n]
		r := rb.Samples()[:n]

		e.ProcessBlock(trigger[off:off+n], nil, l, r)

		outL := res.left[off : off+n]
		outR := res.right[off : off+n]
		vecmath.ScaleBlock(outL, l, o.gain)
		vecmath.ScaleBlock(outR, r, o.gain)

		lm.Update(outL)
		rm.Update(outR)

		off += n
		if lm.Len() == perSecond || off == total {
			flush()
		}
	}

	res.faults = e.Faults()
	if res.faults > 0 {
		logger.Warn("grain pool faults during render", "faults", res.faults)
	}

	return res, nil
}

// buildSource synthesizes the source buffer. In stereo mode the second
// channel carries the same material a fifth higher.
func buildSource(gen *signal.Generator, o options) (*buffer.Buffer, error) {
	frames := int(core.MsToSamples(o.sourceMs, o.sampleRate))
	if frames < 1 {
		return nil, fmt.Errorf("source-ms too short for sample rate: %v", o.sourceMs)
	}

	var first, second []float64

	var err error

	switch o.source {
	case "sine":
		if first, err = gen.Sine(o.freq, 0.8, frames); err != nil {
			return nil, err
		}

		if o.stereo {
			second, err = gen.Sine(o.freq*1.5, 0.8, frames)
		}
	case "noise":
		if first, err = gen.WhiteNoise(0.5, frames); err != nil {
			return nil, err
		}

		if o.stereo {
			gen.SetSeed(gen.Seed() + 1)
			second, err = gen.WhiteNoise(0.5, frames)
		}
	default:
		return nil, fmt.Errorf("unknown source %q (want sine or noise)", o.source)
	}

	if err != nil {
		return nil, err
	}

	if second == nil {
		return buffer.FromSlice(first), nil
	}

	b := buffer.New(frames, 2)
	for f := range frames {
		b.Set(f, 0, first[f])
		b.Set(f, 1, second[f])
	}

	return b, nil
}

func buildTrigger(gen *signal.Generator, o options, total int) ([]float64, error) {
	if total <= 0 {
		return nil, fmt.Errorf("render length must be at least one sample")
	}

	if o.zero {
		return gen.Pulse(o.rate, 1, total)
	}

	return gen.Ramp(o.rate, total)
}
