// Package resource provides shared budgets for batch jobs.
//
// Record construction is the only part of the library that touches
// external I/O; the controller bounds its parallelism and throughput so
// dataset builds coexist with whatever else runs on the machine.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxBuildWorkers is the maximum number of structures built
	// concurrently. If 0, defaults to 1.
	MaxBuildWorkers int64

	// IOLimitBytesPerSec caps snapshot write throughput.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller manages build concurrency and snapshot IO budget.
// A nil *Controller is valid and enforces nothing.
type Controller struct {
	cfg Config

	workerSem *semaphore.Weighted
	inFlight  atomic.Int64

	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxBuildWorkers <= 0 {
		cfg.MaxBuildWorkers = 1
	}

	c := &Controller{
		cfg:       cfg,
		workerSem: semaphore.NewWeighted(cfg.MaxBuildWorkers),
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// MaxWorkers returns the configured worker bound.
func (c *Controller) MaxWorkers() int {
	if c == nil {
		return 1
	}
	return int(c.cfg.MaxBuildWorkers)
}

// AcquireWorker blocks until a build slot is available or ctx is done.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.workerSem.Acquire(ctx, 1); err != nil {
		return err
	}
	c.inFlight.Add(1)
	return nil
}

// ReleaseWorker returns a build slot.
func (c *Controller) ReleaseWorker() {
	if c == nil {
		return
	}
	c.inFlight.Add(-1)
	c.workerSem.Release(1)
}

// InFlight returns the number of builds currently holding a slot.
func (c *Controller) InFlight() int64 {
	if c == nil {
		return 0
	}
	return c.inFlight.Load()
}

// WaitIO blocks until the IO budget admits n bytes.
func (c *Controller) WaitIO(ctx context.Context, n int) error {
	if c == nil || c.ioLimiter == nil || n <= 0 {
		return nil
	}
	// rate.Limiter bursts are capped at one second of budget.
	burst := c.ioLimiter.Burst()
	for n > 0 {
		chunk := n
		if chunk > burst {
			chunk = burst
		}
		if err := c.ioLimiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
