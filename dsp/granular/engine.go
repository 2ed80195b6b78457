package granular

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/cwbudde/algo-grain/dsp/buffer"
	"github.com/cwbudde/algo-grain/dsp/pan"
	"github.com/cwbudde/algo-grain/dsp/random"
)

// Engine renders stereo granular output from a trigger signal.
type Engine struct {
	cfg          config
	samplesPerMs float64

	source *buffer.Ref
	window *buffer.Ref

	params  Params
	modes   Modes
	rng     *random.Range
	pool    *Pool
	trigger Trigger

	invalidate atomic.Bool
	faults     uint64
	logger     *slog.Logger
}

// New creates an engine reading grains from source, enveloped by window,
// with at most limit concurrent grains.
func New(source, window *buffer.Ref, limit int, opts ...Option) (*Engine, error) {
	if source == nil || window == nil {
		return nil, ErrNilBuffer
	}

	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	rng := random.NewRange(cfg.seed)

	pool, err := NewPool(limit, rng, cfg.law)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:          cfg,
		samplesPerMs: cfg.processor.SamplesPerMs(),
		source:       source,
		window:       window,
		params:       DefaultParams(),
		modes:        cfg.modes,
		rng:          rng,
		pool:         pool,
		logger:       cfg.logger,
	}
	e.checkChannels()

	return e, nil
}

// ProcessBlock renders min(len(trigger), len(left), len(right)) samples and
// returns the live grain count at the end of the block. Output samples
// beyond that count are zeroed. c may be nil when no control input is
// connected.
//
// While either buffer is absent the block is silent and neither the grains
// nor the trigger history advance.
func (e *Engine) ProcessBlock(trigger []float64, c *Controls, left, right []float64) int {
	n := min(len(trigger), len(left), len(right))
	ranges := e.params.Ranges(c, e.samplesPerMs)

	src, win := e.snapshot()

	i := 0
	if src != nil {
		latched := false

		for ; i < n; i++ {
			if e.takeInvalidation() {
				e.pool.InvalidateAll()

				src, win = e.snapshot()
				if src == nil {
					break
				}
			}

			fired := e.trigger.Tick(trigger[i], e.modes.ZeroCrossing)
			if e.modes.TriggerLatch {
				latched = latched || fired
				fired = latched
			}

			if fired && e.pool.CanSpawn() {
				latched = false

				if _, err := e.pool.TrySpawn(ranges, src.Frames(), e.samplesPerMs); err != nil {
					e.fault(err)
				}
			}

			left[i], right[i] = e.pool.AdvanceAndMix(win, src, e.modes)
			e.pool.Settle()
		}
	}

	clear(left[i:])
	clear(right[i:])

	live := e.pool.Live()
	if e.cfg.reporter != nil {
		e.cfg.reporter(live)
	}

	return live
}

// snapshot returns the current buffers, or nils when either is absent.
func (e *Engine) snapshot() (src, win *buffer.Buffer) {
	src = e.source.Load()
	win = e.window.Load()

	if src.Empty() || win.Empty() {
		return nil, nil
	}

	return src, win
}

func (e *Engine) takeInvalidation() bool {
	// Every flag is consumed so one change invalidates only once.
	a := e.invalidate.Load() && e.invalidate.CompareAndSwap(true, false)
	b := e.source.TakeModified()
	w := e.window.TakeModified()

	return a || b || w
}

func (e *Engine) fault(err error) {
	e.faults++
	e.logger.Error("grain pool fault", "err", err)
	e.pool.resync()
}

func (e *Engine) checkChannels() {
	if b := e.source.Load(); b != nil && b.Channels() > 2 {
		e.logger.Warn("source buffer has more than 2 channels, only the first 2 are read",
			"buffer", e.source.Name(), "channels", b.Channels())
	}

	if b := e.window.Load(); b != nil && b.Channels() > 1 {
		e.logger.Warn("window buffer has more than 1 channel, only the first is read",
			"buffer", e.window.Name(), "channels", b.Channels())
	}
}

// SetLimit changes the concurrency limit. Playing grains finish before new
// ones start under the new limit.
func (e *Engine) SetLimit(n int) error {
	if err := e.pool.SetLimit(n); err != nil {
		return err
	}

	e.logger.Debug("grain limit changed", "limit", n, "live", e.pool.Live(), "state", e.pool.State())

	return nil
}

// Limit returns the concurrency limit.
func (e *Engine) Limit() int { return e.pool.Limit() }

// SetParam sets a scalar fallback. Start and length are in milliseconds.
func (e *Engine) SetParam(p Param, v float64) error {
	return e.params.Set(p, v)
}

// Param returns a scalar fallback.
func (e *Engine) Param(p Param) float64 {
	return e.params.Get(p)
}

// SetBuffers replaces the source and window references. All grains are
// invalidated before the next sample.
func (e *Engine) SetBuffers(source, window *buffer.Ref) error {
	if source == nil || window == nil {
		return ErrNilBuffer
	}

	e.source = source
	e.window = window
	e.invalidate.Store(true)
	e.checkChannels()
	e.logger.Debug("grain buffers set", "source", source.Name(), "window", window.Name())

	return nil
}

// NotifyModified invalidates all grains before the next sample. It is safe
// to call from any goroutine.
func (e *Engine) NotifyModified() {
	e.invalidate.Store(true)
}

// SetSampleRate changes the sample rate used for millisecond conversion.
func (e *Engine) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return err
	}

	e.cfg.processor.SampleRate = sampleRate
	e.samplesPerMs = e.cfg.processor.SamplesPerMs()

	return nil
}

// SampleRate returns the configured sample rate.
func (e *Engine) SampleRate() float64 { return e.cfg.processor.SampleRate }

// BlockSize returns the configured block size.
func (e *Engine) BlockSize() int { return e.cfg.processor.BlockSize }

// Modes returns the processing modes.
func (e *Engine) Modes() Modes { return e.modes }

// SetStereo toggles two-channel source reads.
func (e *Engine) SetStereo(on bool) { e.modes.Stereo = on }

// SetWindowInterpolation toggles interpolated envelope reads.
func (e *Engine) SetWindowInterpolation(on bool) { e.modes.WindowInterpolation = on }

// SetSampleInterpolation toggles interpolated source reads.
func (e *Engine) SetSampleInterpolation(on bool) { e.modes.SampleInterpolation = on }

// SetZeroCrossing toggles zero-crossing trigger detection.
func (e *Engine) SetZeroCrossing(on bool) { e.modes.ZeroCrossing = on }

// SetTriggerLatch toggles holding triggers within a block.
func (e *Engine) SetTriggerLatch(on bool) { e.modes.TriggerLatch = on }

// SetPanLaw changes the pan law for grains spawned from now on.
func (e *Engine) SetPanLaw(law pan.Law) error {
	if law != pan.ConstantPower && law != pan.Linear {
		return fmt.Errorf("granular unknown pan law: %v", law)
	}

	e.cfg.law = law
	e.pool.SetPanLaw(law)

	return nil
}

// SetSeed reseeds the per-grain randomization.
func (e *Engine) SetSeed(seed int64) { e.rng.SetSeed(seed) }

// Reset silences every grain, forgets the trigger history, drops pending
// invalidations and restarts the random sequence.
func (e *Engine) Reset() {
	e.pool.InvalidateAll()
	e.pool.Settle()
	e.trigger.Reset()
	e.invalidate.Store(false)
	e.source.TakeModified()
	e.window.TakeModified()
	e.rng.SetSeed(e.rng.Seed())
}

// LiveCount returns the number of active grains.
func (e *Engine) LiveCount() int { return e.pool.Live() }

// Faults returns the number of internal pool faults seen so far.
func (e *Engine) Faults() uint64 { return e.faults }

// Pool exposes the grain pool for inspection. Mutating it while the engine
// runs breaks the engine's bookkeeping.
func (e *Engine) Pool() *Pool { return e.pool }
