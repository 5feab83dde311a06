package animation

import (
	"context"
	"testing"
	"time"

	"github.com/go-drift/rosa/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepper(t *testing.T) {
	stepper := NewStepper(time.Time{})
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), stepper.Now())

	var got []time.Time
	stepper.RequestFrame(func(now time.Time) { got = append(got, now) })
	cancelled := stepper.RequestFrame(func(time.Time) { t.Error("cancelled frame ran") })
	stepper.CancelFrame(cancelled)
	assert.Equal(t, 1, stepper.Pending())

	stepper.Skip(time.Second)
	assert.Empty(t, got)
	stepper.Advance(time.Second)
	require.Len(t, got, 1)
	assert.Equal(t, stepper.Now(), got[0])
	assert.Equal(t, 0, stepper.Pending())
}

func TestStepperRequestFromFrame(t *testing.T) {
	stepper := NewStepper(time.Time{})
	count := 0
	var tick func(time.Time)
	tick = func(time.Time) {
		count++
		stepper.RequestFrame(tick)
	}
	stepper.RequestFrame(tick)
	stepper.Frame()
	assert.Equal(t, 1, count, "a callback requested during a frame waits for the next one")
	stepper.Frame()
	assert.Equal(t, 2, count)
}

func TestFrameLoopRun(t *testing.T) {
	loop := NewFrameLoop(time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frames := 0
	var tick func(time.Time)
	tick = func(time.Time) {
		frames++
		if frames == 3 {
			cancel()
			return
		}
		loop.RequestFrame(tick)
	}
	dispatched := false
	loop.Dispatch(func() {
		dispatched = true
		loop.RequestFrame(tick)
	})

	err := loop.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, dispatched)
	assert.Equal(t, 3, frames)
}

func TestFrameLoopPanic(t *testing.T) {
	handler := &quietHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	loop := NewFrameLoop(time.Millisecond, nil)
	loop.RequestFrame(func(time.Time) { panic("boom") })
	err := loop.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindPanic))
	assert.Equal(t, 1, handler.panics)
}

type quietHandler struct {
	panics int
}

func (h *quietHandler) HandleError(*errors.Error)      {}
func (h *quietHandler) HandlePanic(*errors.PanicError) { h.panics++ }
