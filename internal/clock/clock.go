// Package clock schedules delayed callbacks. Controllers and the cue
// dispatcher take a Clock so tests can drive time by hand.
package clock

import "time"

// Timer is a pending callback
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already ran
	// or was already stopped.
	Stop() bool
}

// Clock runs f once after d elapses
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real is backed by time.AfterFunc; callbacks run on their own goroutine
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
