// Command grainrender renders a granular synthesis stream offline and
// prints its levels and spectrum.
//
// Usage:
//
//	grainrender [flags]
//
// A synthetic source (sine or noise) is granulated by a trigger ramp, or by
// a square pulse with -zero, and mixed to stereo.
//
// Examples:
//
//	grainrender -seconds 4 -rate 40 -length-min 20 -length-max 120
//	grainrender -source noise -pan-min -1 -pan-max 1 -out grains.wav
//	grainrender -zero -rate 8 -limit 2 -window tukey -v
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cwbudde/algo-grain/dsp/granular"
)

type options struct {
	sampleRate float64
	block      int
	seconds    float64
	limit      int
	rate       float64
	params     [granular.NumParams]float64

	window   string
	source   string
	freq     float64
	sourceMs float64

	stereo  bool
	winterp bool
	sinterp bool
	zero    bool
	latch   bool
	law     string
	seed    int64
	gain    float64

	out     string
	verbose bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options

	fs := flag.NewFlagSet("grainrender", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.Float64Var(&o.sampleRate, "sr", 48000, "sample rate in Hz")
	fs.IntVar(&o.block, "block", 512, "processing block size in samples")
	fs.Float64Var(&o.seconds, "seconds", 2, "render duration in seconds")
	fs.IntVar(&o.limit, "limit", 16, fmt.Sprintf("maximum concurrent grains (1..%d)", granular.MaxGrains))
	fs.Float64Var(&o.rate, "rate", 20, "trigger rate in Hz")

	defaults := granular.DefaultParams()
	for i := range granular.NumParams {
		p := granular.Param(i)
		fs.Float64Var(&o.params[p], p.String(), defaults.Get(p), paramUsage(p))
	}

	fs.StringVar(&o.window, "window", "hann", "grain envelope shape")
	fs.StringVar(&o.source, "source", "sine", "source signal: sine or noise")
	fs.Float64Var(&o.freq, "freq", 220, "sine source frequency in Hz")
	fs.Float64Var(&o.sourceMs, "source-ms", 1000, "source buffer length in milliseconds")
	fs.BoolVar(&o.stereo, "stereo", false, "use a two-channel source and stereo grain reads")
	fs.BoolVar(&o.winterp, "winterp", false, "interpolate envelope reads")
	fs.BoolVar(&o.sinterp, "sinterp", true, "interpolate source reads")
	fs.BoolVar(&o.zero, "zero", false, "trigger on upward zero crossings of a pulse")
	fs.BoolVar(&o.latch, "latch", false, "hold triggers until a grain can start")
	fs.StringVar(&o.law, "law", "constant-power", "pan law: constant-power or linear")
	fs.Int64Var(&o.seed, "seed", 1, "random seed")
	fs.Float64Var(&o.gain, "gain", 0.25, "output gain")
	fs.StringVar(&o.out, "out", "", "write a 16-bit stereo WAV file")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: grainrender [flags]\n\n")
		fmt.Fprintf(stderr, "Renders granular synthesis offline and prints levels and spectrum.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if o.seconds <= 0 {
		return options{}, fmt.Errorf("seconds must be > 0: %v", o.seconds)
	}

	if o.block <= 0 {
		return options{}, fmt.Errorf("block must be > 0: %d", o.block)
	}

	if o.sourceMs <= 0 {
		return options{}, fmt.Errorf("source-ms must be > 0: %v", o.sourceMs)
	}

	return o, nil
}

func paramUsage(p granular.Param) string {
	switch p {
	case granular.StartMin, granular.StartMax:
		return "grain start bound in ms"
	case granular.LengthMin, granular.LengthMax:
		return fmt.Sprintf("grain length bound in ms (%g..%g)", granular.MinGrainLengthMs, granular.MaxGrainLengthMs)
	case granular.PitchMin, granular.PitchMax:
		return fmt.Sprintf("playback ratio bound (0..%g]", granular.MaxPitch)
	default:
		return "pan bound (-1..1)"
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	o, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	logger := newLogger(os.Stderr, o.verbose)

	res, err := render(o, logger)
	if err != nil {
		logger.Error("render failed", "err", err)
		os.Exit(1)
	}

	if err := printReport(os.Stdout, res); err != nil {
		logger.Error("report failed", "err", err)
		os.Exit(1)
	}

	if o.out != "" {
		if err := writeWAV(o.out, res.left, res.right, o.sampleRate); err != nil {
			logger.Error("wav output failed", "path", o.out, "err", err)
			os.Exit(1)
		}

		logger.Info("wrote wav", "path", o.out, "frames", len(res.left))
	}
}
