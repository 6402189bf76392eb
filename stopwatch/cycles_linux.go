//go:build linux

package stopwatch

import (
	"fmt"

	perf "github.com/hodgesds/perf-utils"
)

// Measure runs f once and returns the CPU cycles it used. If the perf counter
// cannot be opened f is run unmeasured and ErrCyclesUnavailable is returned.
func (cc *CycleCounter) Measure(f func() error) (cycles uint64, err error) {
	var (
		ran  bool
		fErr error
		pv   *perf.ProfileValue
	)
	pv, err = perf.CPUCycles(func() error {
		ran = true
		fErr = f()
		return fErr
	})
	if !ran {
		fErr = f()
	}
	if fErr != nil {
		return 0, fErr
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCyclesUnavailable, err)
	}
	cc.last = pv.Value
	return pv.Value, nil
}
