package ratelimit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Janitor periodically sweeps a WindowStore so that clients which have gone
// quiet do not keep their state mapped forever. It coordinates with live
// traffic only through the store's own synchronization; requests never block
// on it. A missed sweep delays reclamation but never changes a decision.
type Janitor struct {
	store    WindowStore
	clock    Clock
	interval time.Duration
	logger   *zap.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewJanitor creates a janitor sweeping the store on the given interval.
// A non-positive interval falls back to one full window worth of the
// default configuration.
func NewJanitor(store WindowStore, clock Clock, interval time.Duration, logger *zap.Logger) *Janitor {
	if interval <= 0 {
		interval = DefaultWindow
	}

	return &Janitor{
		store:    store,
		clock:    clock,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop in its own goroutine.
func (j *Janitor) Start(ctx context.Context) error {
	ctx, j.cancel = context.WithCancel(ctx)

	go j.run(ctx)

	return nil
}

func (j *Janitor) run(ctx context.Context) {
	defer close(j.done)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *Janitor) sweep() {
	before := j.store.Len()
	j.store.Sweep(j.clock.Now())
	after := j.store.Len()

	j.logger.Debug("sweep complete",
		zap.Int("keysBefore", before),
		zap.Int("keysAfter", after),
		zap.Int("evicted", before-after),
	)
}

// Shutdown stops the sweep loop and waits for it to exit. The store is never
// left locked: sweeping holds no lock across loop iterations.
func (j *Janitor) Shutdown() error {
	if j.cancel == nil {
		return nil
	}

	j.cancel()
	<-j.done

	return nil
}
