package granular

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/pan"
)

// Option configures an Engine.
type Option func(*config) error

type config struct {
	processor core.ProcessorConfig
	seed      int64
	logger    *slog.Logger
	law       pan.Law
	modes     Modes
	reporter  func(live int)
}

func defaultConfig() config {
	return config{
		processor: core.DefaultProcessorConfig(),
		seed:      defaultSeed,
		logger:    slog.New(slog.DiscardHandler),
		law:       pan.ConstantPower,
		modes:     DefaultModes(),
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}

	return cfg, nil
}

func validateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("granular sample rate must be > 0 and finite: %v", sampleRate)
	}

	return nil
}

// WithSampleRate sets the sample rate used for millisecond conversion.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *config) error {
		if err := validateSampleRate(sampleRate); err != nil {
			return err
		}

		cfg.processor.SampleRate = sampleRate

		return nil
	}
}

// WithBlockSize sets the block size hosts are expected to process.
func WithBlockSize(blockSize int) Option {
	return func(cfg *config) error {
		if blockSize <= 0 {
			return fmt.Errorf("granular block size must be > 0: %d", blockSize)
		}

		cfg.processor.BlockSize = blockSize

		return nil
	}
}

// WithSeed seeds the per-grain randomization.
func WithSeed(seed int64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}

// WithLogger sets the logger for warnings, faults and state changes.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			return errors.New("granular logger must not be nil")
		}

		cfg.logger = logger

		return nil
	}
}

// WithPanLaw selects the pan law applied to new grains.
func WithPanLaw(law pan.Law) Option {
	return func(cfg *config) error {
		if law != pan.ConstantPower && law != pan.Linear {
			return fmt.Errorf("granular unknown pan law: %v", law)
		}

		cfg.law = law

		return nil
	}
}

// WithStereo enables reading two source channels.
func WithStereo(on bool) Option {
	return func(cfg *config) error {
		cfg.modes.Stereo = on
		return nil
	}
}

// WithWindowInterpolation enables interpolated envelope reads.
func WithWindowInterpolation(on bool) Option {
	return func(cfg *config) error {
		cfg.modes.WindowInterpolation = on
		return nil
	}
}

// WithSampleInterpolation enables interpolated source reads. It is on by
// default.
func WithSampleInterpolation(on bool) Option {
	return func(cfg *config) error {
		cfg.modes.SampleInterpolation = on
		return nil
	}
}

// WithZeroCrossing switches trigger detection to upward zero crossings.
func WithZeroCrossing(on bool) Option {
	return func(cfg *config) error {
		cfg.modes.ZeroCrossing = on
		return nil
	}
}

// WithTriggerLatch holds triggers that arrive while no grain can start
// until the end of the block.
func WithTriggerLatch(on bool) Option {
	return func(cfg *config) error {
		cfg.modes.TriggerLatch = on
		return nil
	}
}

// WithCountReporter registers fn to receive the live grain count after
// every block. fn runs on the processing goroutine and must not block.
func WithCountReporter(fn func(live int)) Option {
	return func(cfg *config) error {
		cfg.reporter = fn
		return nil
	}
}
