package granular

// Pool and parameter bounds.
const (
	// MaxGrains is the hard capacity of a grain pool.
	MaxGrains = 128
	// MinGrainLengthMs and MaxGrainLengthMs bound grain durations.
	MinGrainLengthMs = 1.0
	MaxGrainLengthMs = 300.0
	// MinPitch and MaxPitch bound the playback ratio drawn at spawn time.
	MinPitch = 0.001
	MaxPitch = 10.0
)

// Grain is one active playback voice.
//
// While active, 0 <= Position() < NominalLength(). An inactive grain holds
// no meaningful playback state.
type Grain struct {
	active        bool
	position      int
	startFrame    int
	nominalLength int
	sourceSpan    int
	panLeft       float64
	panRight      float64
}

// Active reports whether the slot is playing.
func (g Grain) Active() bool { return g.active }

// Position returns the number of samples already rendered.
func (g Grain) Position() int { return g.position }

// StartFrame returns the first source frame read by the grain.
func (g Grain) StartFrame() int { return g.startFrame }

// NominalLength returns the grain duration in output samples.
func (g Grain) NominalLength() int { return g.nominalLength }

// SourceSpan returns the number of source frames traversed over the
// grain's lifetime.
func (g Grain) SourceSpan() int { return g.sourceSpan }

// PanGains returns the left and right gains fixed at spawn time.
func (g Grain) PanGains() (left, right float64) { return g.panLeft, g.panRight }

// Range is a closed interval used for per-grain randomization.
// Min may exceed Max; values are drawn between them either way.
type Range struct {
	Min float64
	Max float64
}

// Ranges holds the per-block randomization ranges for new grains.
// Start and Length are in samples, Pitch is a playback ratio and Pan is a
// position in [-1, 1].
type Ranges struct {
	Start  Range
	Length Range
	Pitch  Range
	Pan    Range
}

// Modes holds the engine's boolean processing modes.
type Modes struct {
	// Stereo reads source channels 1 and 2 into left and right when the
	// source has more than one channel.
	Stereo bool
	// WindowInterpolation linearly interpolates envelope reads.
	WindowInterpolation bool
	// SampleInterpolation linearly interpolates source reads.
	SampleInterpolation bool
	// ZeroCrossing fires triggers on upward zero crossings instead of ramp
	// wraps.
	ZeroCrossing bool
	// TriggerLatch holds a trigger that could not spawn until a spawn
	// becomes possible or the block ends.
	TriggerLatch bool
}

// DefaultModes returns the modes a new engine starts with.
func DefaultModes() Modes {
	return Modes{SampleInterpolation: true}
}
