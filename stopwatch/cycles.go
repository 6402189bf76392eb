package stopwatch

import "errors"

// ErrCyclesUnavailable is returned when the platform cannot count CPU cycles.
// The measured function has still been run.
var ErrCyclesUnavailable = errors.New("stopwatch: cpu cycle counter unavailable")

// CycleCounter counts the CPU cycles spent in a function
type CycleCounter struct {
	last uint64
}

// Last returns the cycle count of the latest successful measurement
func (cc *CycleCounter) Last() uint64 { return cc.last }
