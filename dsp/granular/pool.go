package granular

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/cwbudde/algo-grain/dsp/buffer"
	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/interp"
	"github.com/cwbudde/algo-grain/dsp/pan"
	"github.com/cwbudde/algo-grain/dsp/random"
)

const defaultSeed = 1

// LimitState is the state of a pool's concurrency limit.
type LimitState int

const (
	// LimitStable allows spawning below the current limit.
	LimitStable LimitState = iota
	// LimitDraining blocks spawning until every live grain has retired.
	LimitDraining
)

func (s LimitState) String() string {
	switch s {
	case LimitStable:
		return "stable"
	case LimitDraining:
		return "draining"
	default:
		return fmt.Sprintf("LimitState(%d)", int(s))
	}
}

// Pool is a fixed-capacity set of grain slots.
type Pool struct {
	grains [MaxGrains]Grain
	busy   [MaxGrains / 64]uint64

	limit     int
	prevBound int
	state     LimitState
	live      int

	rng *random.Range
	law pan.Law
}

// NewPool returns an empty pool admitting at most limit concurrent grains.
// A nil rng is replaced by a generator with a fixed seed.
func NewPool(limit int, rng *random.Range, law pan.Law) (*Pool, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	if rng == nil {
		rng = random.NewRange(defaultSeed)
	}

	return &Pool{limit: limit, prevBound: limit, rng: rng, law: law}, nil
}

func validateLimit(n int) error {
	if n < 1 || n > MaxGrains {
		return fmt.Errorf("%w: limit must be in [1, %d]: %d", ErrLimitRange, MaxGrains, n)
	}

	return nil
}

// Live returns the number of active grains.
func (p *Pool) Live() int { return p.live }

// Limit returns the current concurrency limit.
func (p *Pool) Limit() int { return p.limit }

// State returns the limit state.
func (p *Pool) State() LimitState { return p.state }

// EffectiveLimit returns the number of slots scanned when mixing. While
// draining this is the bound in force before the limit changed.
func (p *Pool) EffectiveLimit() int {
	if p.state == LimitDraining {
		return p.prevBound
	}

	return p.limit
}

// Grain returns a copy of slot i.
func (p *Pool) Grain(i int) Grain { return p.grains[i] }

// ActiveSlots counts the busy slots.
func (p *Pool) ActiveSlots() int {
	n := 0
	for _, w := range p.busy {
		n += bits.OnesCount64(w)
	}

	return n
}

// SetPanLaw changes the law applied to grains spawned from now on.
func (p *Pool) SetPanLaw(law pan.Law) { p.law = law }

// CanSpawn reports whether a new grain may start.
func (p *Pool) CanSpawn() bool {
	return p.state == LimitStable && p.live < p.limit
}

// TrySpawn starts a grain in the lowest free slot below the limit.
//
// It returns false without error when spawning is not allowed or the source
// is empty. ErrNoFreeSlot means the live count claimed headroom that the
// slots do not have; the pool is left unchanged.
func (p *Pool) TrySpawn(r Ranges, sourceFrames int, samplesPerMs float64) (bool, error) {
	if !p.CanSpawn() || sourceFrames <= 0 {
		return false, nil
	}

	slot := p.lowestFree(p.limit)
	if slot < 0 {
		return false, fmt.Errorf("%w: live=%d active=%d limit=%d",
			ErrNoFreeSlot, p.live, p.ActiveSlots(), p.limit)
	}

	start := finiteOr(p.rng.Sample(r.Start.Min, r.Start.Max), 0)
	length := p.rng.Sample(r.Length.Min, r.Length.Max)
	position := core.Clamp(finiteOr(p.rng.Sample(r.Pan.Min, r.Pan.Max), 0), -1, 1)
	pitch := core.Clamp(finiteOr(p.rng.Sample(r.Pitch.Min, r.Pitch.Max), 1), MinPitch, MaxPitch)

	nominal := clampLength(length, samplesPerMs)

	span := int(float64(nominal) * pitch)
	span = core.ClampInt(span, 1, sourceFrames)

	startFrame := int(core.Clamp(start, 0, float64(sourceFrames)))
	if startFrame > sourceFrames-span {
		startFrame = sourceFrames - span
	}

	if startFrame < 0 {
		startFrame = 0
	}

	left, right := pan.Gains(position, p.law)

	p.grains[slot] = Grain{
		active:        true,
		startFrame:    startFrame,
		nominalLength: nominal,
		sourceSpan:    span,
		panLeft:       left,
		panRight:      right,
	}
	p.busy[slot>>6] |= 1 << (uint(slot) & 63)
	p.live++

	return true, nil
}

// AdvanceAndMix renders one output sample from every active grain, advances
// them and retires those that reached their length.
//
// window and source must be non-empty. Grains must have been spawned
// against a source with at least as many frames as source.
func (p *Pool) AdvanceAndMix(window, source *buffer.Buffer, m Modes) (left, right float64) {
	if p.live == 0 {
		return 0, 0
	}

	win := window.Samples()
	winCh := window.Channels()
	winFrames := float64(window.Frames())

	src := source.Samples()
	srcCh := source.Channels()
	stereo := m.Stereo && srcCh > 1

	bound := p.EffectiveLimit()
	for i := 0; i < bound; i++ {
		g := &p.grains[i]
		if !g.active {
			continue
		}

		phase := float64(g.position) / float64(g.nominalLength)
		w := interp.Read(win, phase*winFrames, winCh, 0, m.WindowInterpolation)
		pos := float64(g.startFrame) + phase*float64(g.sourceSpan)

		if stereo {
			left += interp.Read(src, pos, srcCh, 0, m.SampleInterpolation) * w * g.panLeft
			right += interp.Read(src, pos, srcCh, 1, m.SampleInterpolation) * w * g.panRight
		} else {
			s := interp.Read(src, pos, srcCh, 0, m.SampleInterpolation) * w
			left += s * g.panLeft
			right += s * g.panRight
		}

		g.position++
		if g.position >= g.nominalLength {
			p.retire(i)
		}
	}

	return left, right
}

// InvalidateAll deactivates every slot.
func (p *Pool) InvalidateAll() {
	for i := range p.grains {
		p.grains[i] = Grain{}
	}

	for i := range p.busy {
		p.busy[i] = 0
	}

	p.live = 0
}

// SetLimit changes the concurrency limit. With grains still playing the
// pool drains first: no spawns happen until the live count reaches zero.
func (p *Pool) SetLimit(n int) error {
	if err := validateLimit(n); err != nil {
		return err
	}

	bound := p.limit
	if p.state == LimitDraining && p.prevBound > bound {
		bound = p.prevBound
	}

	p.limit = n
	p.prevBound = bound
	p.state = LimitDraining
	p.Settle()

	return nil
}

// Settle completes a pending limit change once the pool is empty.
func (p *Pool) Settle() {
	if p.state == LimitDraining && p.live == 0 {
		p.state = LimitStable
		p.prevBound = p.limit
	}
}

// resync realigns the live count with the busy slots after a fault.
func (p *Pool) resync() {
	p.live = p.ActiveSlots()
}

func (p *Pool) retire(i int) {
	p.grains[i].active = false
	p.grains[i].position = 0
	p.busy[i>>6] &^= 1 << (uint(i) & 63)

	p.live--
	if p.live < 0 {
		p.live = 0
	}
}

// lowestFree returns the lowest free slot below bound, or -1.
func (p *Pool) lowestFree(bound int) int {
	for w := 0; w*64 < bound; w++ {
		free := ^p.busy[w]
		if free == 0 {
			continue
		}

		i := w*64 + bits.TrailingZeros64(free)
		if i < bound {
			return i
		}

		return -1
	}

	return -1
}

// clampLength converts a length in samples to a whole sample count within
// the grain duration bounds.
func clampLength(length, samplesPerMs float64) int {
	minLen := int(math.Ceil(MinGrainLengthMs * samplesPerMs))
	if minLen < 1 {
		minLen = 1
	}

	maxLen := int(math.Floor(MaxGrainLengthMs * samplesPerMs))
	if maxLen < minLen {
		maxLen = minLen
	}

	length = finiteOr(length, float64(minLen))

	return int(core.Clamp(length, float64(minLen), float64(maxLen)))
}

func finiteOr(v, fallback float64) float64 {
	if !core.IsFinite(v) {
		return fallback
	}

	return v
}
