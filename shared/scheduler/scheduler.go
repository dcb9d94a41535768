package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Task is a unit of periodic background work. A failing run is logged
// and retried on the next tick; it never stops the schedule.
type Task interface {
	Name() string
	Run(ctx context.Context) error
}

// TaskFunc creates a task from a function
type TaskFunc struct {
	name string
	fn   func(ctx context.Context) error
}

func NewTaskFunc(name string, fn func(ctx context.Context) error) *TaskFunc {
	return &TaskFunc{name: name, fn: fn}
}

func (t *TaskFunc) Name() string {
	return t.name
}

func (t *TaskFunc) Run(ctx context.Context) error {
	return t.fn(ctx)
}

// Periodic runs a task on a fixed interval with a Start/Stop lifecycle,
// isolated from request-handling paths.
type Periodic struct {
	mux      sync.Mutex
	log      zerolog.Logger
	task     Task
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
	running  atomic.Bool

	// newTicker is replaceable in tests to drive ticks manually
	newTicker func(d time.Duration) (<-chan time.Time, func())
}

type Option func(*Periodic)

// WithTicker overrides the tick source (used with a fake clock in tests)
func WithTicker(newTicker func(d time.Duration) (<-chan time.Time, func())) Option {
	return func(p *Periodic) {
		p.newTicker = newTicker
	}
}

// NewPeriodic creates a periodic runner for the given task
func NewPeriodic(log zerolog.Logger, task Task, interval time.Duration, opts ...Option) *Periodic {
	p := &Periodic{
		log:      log,
		task:     task,
		interval: interval,
		newTicker: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Start launches the schedule. Calling Start on a running schedule is a no-op.
func (p *Periodic) Start(ctx context.Context) {
	p.mux.Lock()
	defer p.mux.Unlock()

	if p.running.Load() {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running.Store(true)

	go p.loop(ctx)
}

// Stop cancels the schedule and waits for any in-flight run to finish
func (p *Periodic) Stop() {
	p.mux.Lock()
	defer p.mux.Unlock()

	if !p.running.Load() {
		return
	}

	p.cancel()
	<-p.done
	p.cancel = nil
	p.running.Store(false)
}

func (p *Periodic) loop(ctx context.Context) {
	defer close(p.done)

	ticks, stop := p.newTicker(p.interval)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info().Str("task", p.task.Name()).Msg("periodic task stopping")
			return
		case <-ticks:
			if err := p.task.Run(ctx); err != nil {
				p.log.Error().Err(err).Str("task", p.task.Name()).Msg("periodic task run failed")
			}
		}
	}
}
