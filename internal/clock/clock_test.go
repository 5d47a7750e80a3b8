package clock_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/balkashynov/breathe/internal/clock"
)

func TestFakeFiresInOrder(t *testing.T) {
	c := clock.NewFake()
	var got []string

	c.AfterFunc(2*time.Second, func() { got = append(got, "b") })
	c.AfterFunc(time.Second, func() { got = append(got, "a") })
	c.AfterFunc(2*time.Second, func() { got = append(got, "c") })

	c.Advance(1500 * time.Millisecond)
	assert.Equal(t, []string{"a"}, got)

	c.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Zero(t, c.Pending())
}

func TestFakeChainsTimersScheduledDuringAdvance(t *testing.T) {
	c := clock.NewFake()
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		c.AfterFunc(time.Second, tick)
	}
	c.AfterFunc(time.Second, tick)

	start := c.Now()
	c.Advance(5 * time.Second)
	assert.Equal(t, 5, ticks)
	assert.Equal(t, start.Add(5*time.Second), c.Now())
	assert.Equal(t, 1, c.Pending())
}

func TestFakeStop(t *testing.T) {
	c := clock.NewFake()
	fired := false
	tm := c.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())
	c.Advance(time.Minute)
	assert.False(t, fired)
}

func TestRealAfterFunc(t *testing.T) {
	defer goleak.VerifyNone(t)

	var fired atomic.Bool
	done := make(chan struct{})
	clock.Real{}.AfterFunc(time.Millisecond, func() {
		fired.Store(true)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	assert.True(t, fired.Load())

	stopped := clock.Real{}.AfterFunc(time.Hour, func() {})
	assert.True(t, stopped.Stop())
}
