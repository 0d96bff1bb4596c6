// Package warm wires up the cron job that periodically refreshes the
// listing caches so the first request after a deploy is served warm.
package warm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Engine is the slice of the aggregation engine the warmer needs.
type Engine interface {
	Warm(ctx context.Context)
}

// Warmer wraps robfig/cron and manages the cache refresh loop.
type Warmer struct {
	cron   *cron.Cron
	engine Engine
	spec   string // cron spec, e.g. "@every 30m"
}

// New creates a Warmer that refreshes on the given cron spec.
func New(engine Engine, spec string) *Warmer {
	return &Warmer{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		engine: engine,
		spec:   spec,
	}
}

// Start registers the job and starts the scheduler. Also runs one refresh
// immediately so the caches are populated without waiting for the first tick.
func (w *Warmer) Start(ctx context.Context) error {
	_, err := w.cron.AddFunc(w.spec, func() {
		w.refresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	w.cron.Start()
	log.Printf("[warm] cron started, spec %q", w.spec)

	// Run immediately on startup (non-blocking)
	go w.refresh(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (w *Warmer) Stop() {
	w.cron.Stop()
	log.Println("[warm] cron stopped")
}

func (w *Warmer) refresh(ctx context.Context) {
	start := time.Now()
	log.Println("[warm] refresh cycle started")
	w.engine.Warm(ctx)
	log.Printf("[warm] refresh cycle complete in %v", time.Since(start))
}
