package granular

import "errors"

var (
	// ErrLimitRange reports a concurrency limit outside [1, MaxGrains].
	ErrLimitRange = errors.New("granular limit out of range")
	// ErrParamRange reports a rejected scalar parameter value.
	ErrParamRange = errors.New("granular parameter out of range")
	// ErrUnknownParam reports a Param outside the known set.
	ErrUnknownParam = errors.New("granular unknown parameter")
	// ErrNilBuffer reports a missing buffer reference.
	ErrNilBuffer = errors.New("granular buffer reference must not be nil")
	// ErrNoFreeSlot reports that the pool had count headroom but no free
	// slot, meaning the live count drifted from the slot states.
	ErrNoFreeSlot = errors.New("granular pool has no free slot below limit")
)
