// Package refresh drives the periodic realtime re-fetch cycle and hands out
// staleness tokens so that results of superseded queries can be discarded
// instead of overwriting newer data.
package refresh

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/urban-transit-lab/transit-explorer/engine"
	"github.com/urban-transit-lab/transit-explorer/metrics"
)

// Coordinator owns the data version counter. Every completed refresh bumps
// the version; readers take a token before querying and check it afterwards.
// Reconciliation itself stays pure, so overlapping cycles only race on the
// version counter, which is atomic.
type Coordinator struct {
	eng      engine.Engine
	interval time.Duration
	col      *metrics.Collector
	version  atomic.Uint64

	mu        sync.Mutex
	onRefresh func(version uint64)
}

// SetOnRefresh installs a callback that runs after each successful cycle
// with the new version. Used for response-cache invalidation. Safe to call
// while the refresh loop is running.
func (c *Coordinator) SetOnRefresh(fn func(version uint64)) {
	c.mu.Lock()
	c.onRefresh = fn
	c.mu.Unlock()
}

// NewCoordinator builds a coordinator. interval <= 0 disables the periodic
// loop; RefreshNow still works.
func NewCoordinator(eng engine.Engine, interval time.Duration, col *metrics.Collector) *Coordinator {
	return &Coordinator{eng: eng, interval: interval, col: col}
}

// Version returns the current data version.
func (c *Coordinator) Version() uint64 { return c.version.Load() }

// Begin returns a staleness token for a query issued against the current
// snapshot.
func (c *Coordinator) Begin() uint64 { return c.version.Load() }

// StillCurrent reports whether a token is still the latest version. A false
// result means the query's data was superseded mid-flight and its result
// should be discarded; the discard is counted.
func (c *Coordinator) StillCurrent(token uint64) bool {
	if c.version.Load() == token {
		return true
	}
	if c.col != nil {
		c.col.StaleDiscards.Inc()
	}
	return false
}

// RefreshNow runs one fetch-and-bump cycle.
func (c *Coordinator) RefreshNow(ctx context.Context) error {
	start := time.Now()
	err := c.eng.FetchRealtimeData(ctx)
	if c.col != nil {
		c.col.ObserveRefresh(time.Since(start), err)
	}
	if err != nil {
		return err
	}
	v := c.version.Add(1)
	if c.col != nil {
		c.col.DataVersion.Set(float64(v))
	}
	c.mu.Lock()
	fn := c.onRefresh
	c.mu.Unlock()
	if fn != nil {
		fn(v)
	}
	return nil
}

// Run loops RefreshNow at the configured interval until the context ends.
// A zero or negative interval returns immediately (periodic refresh off).
func (c *Coordinator) Run(ctx context.Context) {
	if c.interval <= 0 {
		return
	}
	t := time.NewTicker(c.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := c.RefreshNow(ctx); err != nil {
				log.Printf("realtime refresh failed: %v", err)
			}
		}
	}
}
