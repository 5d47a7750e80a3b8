package runner

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/balkashynov/breathe/internal/catalog"
	"github.com/balkashynov/breathe/internal/clock"
)

type outcome struct {
	res Result
	err error
}

// drive advances clk until the run finishes. The clock only moves once
// the runner has taken every queued event.
func drive(t *testing.T, r *Runner, clk *clock.Fake, done <-chan outcome) outcome {
	t.Helper()
	var out outcome
	require.Eventually(t, func() bool {
		select {
		case out = <-done:
			return true
		default:
			if len(r.events) == 0 {
				clk.Advance(250 * time.Millisecond)
			}
			return false
		}
	}, 5*time.Second, time.Millisecond)
	return out
}

func TestRunStopsAfterCycles(t *testing.T) {
	defer goleak.VerifyNone(t)

	clk := clock.NewFake()
	var buf bytes.Buffer
	r := New(Config{Clock: clk, Out: &buf, Cycles: 2})

	mode, ok := catalog.ModeByID(0) // 2-0-2-0
	require.True(t, ok)

	done := make(chan outcome, 1)
	go func() {
		res, err := r.Run(context.Background(), mode)
		done <- outcome{res, err}
	}()

	out := drive(t, r, clk, done)
	require.NoError(t, out.err)
	assert.Equal(t, 2, out.res.Cycles)
	assert.GreaterOrEqual(t, out.res.Elapsed, 8*time.Second)
	assert.False(t, r.ctrl.State().Active)

	text := buf.String()
	assert.Contains(t, text, "Quick · 2s in • 2s out")
	assert.Equal(t, 2, strings.Count(text, "Exhale"))
	assert.Contains(t, text, "✅ 2 cycles")
}

func TestRunUntilCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	clk := clock.NewFake()
	var buf bytes.Buffer
	r := New(Config{Clock: clk, Out: &buf, Voice: catalog.VoiceZen})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan outcome, 1)
	go func() {
		res, err := r.Run(ctx, catalog.PanicMode())
		done <- outcome{res, err}
	}()

	require.Eventually(t, func() bool {
		clk.Advance(250 * time.Millisecond)
		return r.ctrl.State().Cycles >= 1
	}, 5*time.Second, time.Millisecond)
	cancel()

	out := <-done
	require.NoError(t, out.err)
	assert.False(t, r.ctrl.State().Active)
	assert.Contains(t, buf.String(), "♪ Zen_BreatheIn")
}

func TestRunRejectsDegenerateMode(t *testing.T) {
	r := New(Config{Clock: clock.NewFake(), Out: &bytes.Buffer{}})
	_, err := r.Run(context.Background(), catalog.Mode{ID: 99, Name: "Empty"})
	assert.ErrorIs(t, err, catalog.ErrDegenerateMode)
}

func TestFirstPhaseSkipsEmptyInhale(t *testing.T) {
	defer goleak.VerifyNone(t)

	clk := clock.NewFake()
	var buf bytes.Buffer
	r := New(Config{Clock: clk, Out: &buf, Cycles: 1})
	mode := catalog.Mode{ID: 77, Name: "Hold first", InhaleHold: 1, Exhale: 1}

	done := make(chan outcome, 1)
	go func() {
		res, err := r.Run(context.Background(), mode)
		done <- outcome{res, err}
	}()

	out := drive(t, r, clk, done)
	require.NoError(t, out.err)
	assert.Equal(t, 1, out.res.Cycles)
	assert.NotContains(t, buf.String(), "Inhale")
}

func TestRunCountsCyclesFromController(t *testing.T) {
	defer goleak.VerifyNone(t)

	clk := clock.NewFake()
	var buf bytes.Buffer
	r := New(Config{Clock: clk, Out: &buf, Cycles: 1})

	// a full queue drops the opening phase event
	for len(r.events) < cap(r.events) {
		r.events <- event{kind: clipEvent, clip: "queued"}
	}

	mode, _ := catalog.ModeByID(0)
	done := make(chan outcome, 1)
	go func() {
		res, err := r.Run(context.Background(), mode)
		done <- outcome{res, err}
	}()

	out := drive(t, r, clk, done)
	require.NoError(t, out.err)
	assert.Equal(t, r.ctrl.State().Cycles, out.res.Cycles)
	assert.Equal(t, 1, out.res.Cycles)
	assert.Contains(t, buf.String(), "✅ 1 cycles")
}

func TestRunPlaysBackgroundTrack(t *testing.T) {
	defer goleak.VerifyNone(t)

	clk := clock.NewFake()
	var buf bytes.Buffer
	r := New(Config{Clock: clk, Out: &buf, Cycles: 1, TrackID: 5})

	mode, _ := catalog.ModeByID(0)
	done := make(chan outcome, 1)
	go func() {
		res, err := r.Run(context.Background(), mode)
		done <- outcome{res, err}
	}()

	out := drive(t, r, clk, done)
	require.NoError(t, out.err)
	assert.Contains(t, buf.String(), "♫ Track_rain")

	_, playing := r.deck.Background()
	assert.False(t, playing, "the track stops with the run")
}
