package autoplay

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// DefaultInterval is the auto-play cadence.
const DefaultInterval = 1500 * time.Millisecond

// Driver runs at most one repeating job and signals each firing on its
// Ticks channel. Whether the job exists is derived from the last value
// passed to Sync.
type Driver struct {
	interval  time.Duration
	scheduler gocron.Scheduler
	log       *slog.Logger

	ticks chan time.Time

	active atomic.Bool // read by the job goroutine

	mu      sync.Mutex
	jobID   uuid.UUID
	running bool
	stopped bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger used for scheduling events.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.log = l
		}
	}
}

// New creates a driver firing every interval once enabled. A non-positive
// interval uses DefaultInterval.
func New(interval time.Duration, opts ...Option) (*Driver, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("autoplay scheduler: %w", err)
	}
	d := &Driver{
		interval:  interval,
		scheduler: s,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		ticks:     make(chan time.Time, 1),
	}
	for _, opt := range opts {
		opt(d)
	}
	s.Start()
	return d, nil
}

// Interval returns the firing period.
func (d *Driver) Interval() time.Duration {
	return d.interval
}

// Ticks returns the channel that receives one value per firing.
func (d *Driver) Ticks() <-chan time.Time {
	return d.ticks
}

// Running reports whether a job is currently scheduled.
func (d *Driver) Running() bool {
	return d.active.Load()
}

// Sync schedules the job when enabled and none exists, and removes it
// when disabled. Repeated calls with the same value are no-ops.
func (d *Driver) Sync(enabled bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return nil
	}

	switch {
	case enabled && !d.running:
		job, err := d.scheduler.NewJob(
			gocron.DurationJob(d.interval),
			gocron.NewTask(d.fire),
		)
		if err != nil {
			return fmt.Errorf("schedule autoplay: %w", err)
		}
		d.jobID = job.ID()
		d.running = true
		d.active.Store(true)
		d.log.Debug("autoplay scheduled", "interval", d.interval.String())

	case !enabled && d.running:
		d.active.Store(false)
		if err := d.scheduler.RemoveJob(d.jobID); err != nil {
			d.log.Warn("remove autoplay job", "error", err)
		}
		d.jobID = uuid.Nil
		d.running = false
		d.drain()
		d.log.Debug("autoplay cancelled")
	}
	return nil
}

// Stop cancels any job and shuts the scheduler down. The driver cannot be
// restarted.
func (d *Driver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return nil
	}
	d.stopped = true
	d.running = false
	d.active.Store(false)
	d.drain()
	if err := d.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("autoplay shutdown: %w", err)
	}
	return nil
}

func (d *Driver) fire() {
	if !d.active.Load() {
		return
	}

	// Non-blocking send; a pending tick is enough.
	select {
	case d.ticks <- time.Now():
	default:
		return
	}

	// Sync(false) may have drained between the check above and the send.
	if !d.active.Load() {
		d.drain()
	}
}

// drain discards a tick that was queued before cancellation.
func (d *Driver) drain() {
	select {
	case <-d.ticks:
	default:
	}
}
