// Package metrics holds the Prometheus collectors for the explorer: refresh
// cycle outcomes, stale-response discards, engine call timings, and served
// responses.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	RefreshCycles    prometheus.Counter
	RefreshErrors    prometheus.Counter
	StaleDiscards    prometheus.Counter
	RefreshDuration  prometheus.Histogram
	EngineCallErrors prometheus.Counter
	ResponsesServed  *prometheus.CounterVec // view label
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	DataVersion      prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		RefreshCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "explorer_refresh_cycles_total",
			Help: "Total realtime refresh cycles completed.",
		}),
		RefreshErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "explorer_refresh_errors_total",
			Help: "Total realtime refresh cycles that failed.",
		}),
		StaleDiscards: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "explorer_stale_discards_total",
			Help: "Total query results discarded because a newer refresh superseded them.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "explorer_refresh_duration_seconds",
			Help:    "Duration of one realtime refresh cycle.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		EngineCallErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "explorer_engine_call_errors_total",
			Help: "Total failed engine calls outside refresh cycles.",
		}),
		ResponsesServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "explorer_responses_served_total",
			Help: "Total view responses served.",
		}, []string{"view"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "explorer_response_cache_hits_total",
			Help: "Total response cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "explorer_response_cache_misses_total",
			Help: "Total response cache misses.",
		}),
		DataVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "explorer_data_version",
			Help: "Monotonic version of the realtime data snapshot.",
		}),
	}

	reg.MustRegister(
		c.RefreshCycles, c.RefreshErrors, c.StaleDiscards, c.RefreshDuration,
		c.EngineCallErrors, c.ResponsesServed, c.CacheHits, c.CacheMisses,
		c.DataVersion,
	)
	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// ObserveRefresh records one refresh cycle outcome.
func (c *Collector) ObserveRefresh(d time.Duration, err error) {
	c.RefreshDuration.Observe(d.Seconds())
	if err != nil {
		c.RefreshErrors.Inc()
		return
	}
	c.RefreshCycles.Inc()
}
