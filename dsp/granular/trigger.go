package granular

// TriggerThreshold is the minimum downward jump between two consecutive
// trigger samples that fires in threshold mode.
const TriggerThreshold = 0.9

// Detect reports whether the step from prev to curr is a trigger.
//
// In zero-crossing mode it fires on a strict negative-to-positive crossing.
// Otherwise it fires when the signal drops by more than TriggerThreshold, as
// a ramp does when it wraps from near 1 back to near 0.
func Detect(prev, curr float64, zeroCrossing bool) bool {
	if zeroCrossing {
		return prev < 0 && curr > 0
	}

	return prev-curr > TriggerThreshold
}

// Trigger detects trigger events in a stream of samples.
type Trigger struct {
	prev float64
}

// Tick consumes one trigger sample and reports whether it fired.
// The sample is remembered whether or not it fired.
func (t *Trigger) Tick(curr float64, zeroCrossing bool) bool {
	fired := Detect(t.prev, curr, zeroCrossing)
	t.prev = curr

	return fired
}

// Previous returns the last consumed sample.
func (t *Trigger) Previous() float64 { return t.prev }

// Reset forgets the trigger history.
func (t *Trigger) Reset() { t.prev = 0 }
