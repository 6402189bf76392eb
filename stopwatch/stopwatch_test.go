package stopwatch

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopwatch(t *testing.T) {
	// Undefined watch reports nothing
	{
		sw := New(false)
		assert.False(t, sw.Running())
		assert.Equal(t, time.Duration(0), sw.Duration(false))
		sw.Stop()
		assert.Equal(t, time.Duration(0), sw.Duration(false))
	}
	// Stopped span is frozen
	{
		sw := New(true)
		assert.True(t, sw.Running())
		time.Sleep(2 * time.Millisecond)
		sw.Stop()
		d := sw.Duration(false)
		assert.True(t, d >= 2*time.Millisecond)
		time.Sleep(time.Millisecond)
		assert.Equal(t, d, sw.Duration(false))
	}
	// Store and reset
	{
		sw := New(true)
		sw.Store(true)
		sw.Store(false)
		assert.Equal(t, 2, len(sw.Stored()))
		assert.True(t, sw.Total() >= 0)
		stored := sw.Stored()
		stored[0] = -1
		assert.NotEqual(t, -1., sw.Stored()[0])
		sw.Reset()
		assert.Empty(t, sw.Stored())
		assert.False(t, sw.Running())
	}
}

func TestCycleCounter(t *testing.T) {
	var (
		cc    CycleCounter
		calls int
	)
	cycles, err := cc.Measure(func() error {
		calls++
		return nil
	})
	assert.Equal(t, 1, calls)
	if err != nil {
		// perf events are commonly unavailable in containers
		require.True(t, errors.Is(err, ErrCyclesUnavailable))
	} else {
		assert.Equal(t, cycles, cc.Last())
	}
	boom := errors.New("boom")
	_, err = cc.Measure(func() error { return boom })
	assert.True(t, errors.Is(err, boom))
}
