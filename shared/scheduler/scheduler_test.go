package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestPeriodic_RunsTaskOnTick(t *testing.T) {
	ticks := make(chan time.Time)
	ran := make(chan struct{}, 4)

	task := NewTaskFunc("test-task", func(ctx context.Context) error {
		ran <- struct{}{}
		return nil
	})

	p := NewPeriodic(zerolog.Nop(), task, time.Second, WithTicker(
		func(d time.Duration) (<-chan time.Time, func()) {
			return ticks, func() {}
		},
	))

	p.Start(context.Background())
	defer p.Stop()

	ticks <- time.Now()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("task did not run after first tick")
	}

	ticks <- time.Now()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("task did not run after second tick")
	}
}

func TestPeriodic_TaskErrorDoesNotStopSchedule(t *testing.T) {
	ticks := make(chan time.Time)
	var runs atomic.Int32
	ran := make(chan struct{}, 4)

	task := NewTaskFunc("failing-task", func(ctx context.Context) error {
		runs.Add(1)
		ran <- struct{}{}
		return errors.New("boom")
	})

	p := NewPeriodic(zerolog.Nop(), task, time.Second, WithTicker(
		func(d time.Duration) (<-chan time.Time, func()) {
			return ticks, func() {}
		},
	))

	p.Start(context.Background())
	defer p.Stop()

	for i := 0; i < 2; i++ {
		ticks <- time.Now()
		select {
		case <-ran:
		case <-time.After(time.Second):
			t.Fatalf("task did not run on tick %d", i+1)
		}
	}

	assert.Equal(t, int32(2), runs.Load())
}

func TestPeriodic_StopPreventsFurtherRuns(t *testing.T) {
	ticks := make(chan time.Time, 1)
	var runs atomic.Int32

	task := NewTaskFunc("stoppable-task", func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	p := NewPeriodic(zerolog.Nop(), task, time.Second, WithTicker(
		func(d time.Duration) (<-chan time.Time, func()) {
			return ticks, func() {}
		},
	))

	p.Start(context.Background())
	p.Stop()

	// A tick after Stop must not reach the task
	ticks <- time.Now()
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int32(0), runs.Load())
}

func TestPeriodic_StartTwiceIsNoop(t *testing.T) {
	task := NewTaskFunc("noop-task", func(ctx context.Context) error {
		return nil
	})

	p := NewPeriodic(zerolog.Nop(), task, time.Hour)

	p.Start(context.Background())
	p.Start(context.Background())
	p.Stop()

	assert.False(t, p.running.Load())
}
