package stopwatch

import (
	"time"
)

type watchState uint8

const (
	undefined watchState = iota
	halted
	running
)

// Stopwatch measures wall clock durations and can keep a record of them
type Stopwatch struct {
	state       watchState
	start, stop time.Time
	stored      []time.Duration
}

func New(start bool) (sw *Stopwatch) {
	sw = &Stopwatch{}
	if start {
		sw.Start()
	}
	return
}

func (sw *Stopwatch) Start() {
	sw.start = time.Now()
	sw.state = running
}

func (sw *Stopwatch) Stop() {
	if sw.state != running {
		return
	}
	sw.stop = time.Now()
	sw.state = halted
}

func (sw *Stopwatch) Restart() {
	sw.stop = time.Time{}
	sw.Start()
}

// Reset stops the watch and deletes the stored values
func (sw *Stopwatch) Reset() {
	sw.state = undefined
	sw.start, sw.stop = time.Time{}, time.Time{}
	sw.stored = nil
}

func (sw *Stopwatch) Running() bool { return sw.state == running }

// Duration is the elapsed time of a running watch, or the measured span of a
// stopped one
func (sw *Stopwatch) Duration(restart bool) (d time.Duration) {
	switch sw.state {
	case running:
		d = time.Since(sw.start)
	case halted:
		d = sw.stop.Sub(sw.start)
	}
	if restart {
		sw.Restart()
	}
	return
}

// Store saves the current duration, restart to store relative times
func (sw *Stopwatch) Store(restart bool) {
	sw.stored = append(sw.stored, sw.Duration(restart))
}

func (sw *Stopwatch) record(d time.Duration) {
	sw.stored = append(sw.stored, d)
}

// Stored returns a copy of the stored durations in seconds
func (sw *Stopwatch) Stored() (r []float64) {
	r = make([]float64, len(sw.stored))
	for i, d := range sw.stored {
		r[i] = d.Seconds()
	}
	return
}

// Total is the sum of the stored durations
func (sw *Stopwatch) Total() (d time.Duration) {
	for _, s := range sw.stored {
		d += s
	}
	return
}
