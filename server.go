package explorer

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urban-transit-lab/transit-explorer/config"
	"github.com/urban-transit-lab/transit-explorer/engine"
	"github.com/urban-transit-lab/transit-explorer/metrics"
	"github.com/urban-transit-lab/transit-explorer/refresh"
	"github.com/urban-transit-lab/transit-explorer/views"
)

// Server is the HTTP surface of the explorer: view endpoints, health, and
// Prometheus metrics.
type Server struct {
	cfg     config.AppConfig
	eng     engine.Engine
	builder *views.Builder
	coord   *refresh.Coordinator
	col     *metrics.Collector
	cache   *ResponseCache

	httpServer *http.Server
}

// NewServer wires the explorer together. The response cache is invalidated
// whenever the refresh coordinator commits a new data version.
func NewServer(cfg config.AppConfig, eng engine.Engine, builder *views.Builder, coord *refresh.Coordinator, col *metrics.Collector) *Server {
	s := &Server{
		cfg:     cfg,
		eng:     eng,
		builder: builder,
		coord:   coord,
		col:     col,
		cache:   NewResponseCache(col),
	}
	coord.SetOnRefresh(func(version uint64) { s.cache.InvalidateIfNewer(version) })
	return s
}

// Handler builds the route mux; exported for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/routes", s.handleRoutes)
	mux.HandleFunc("/api/trips", s.handleTrips)
	mux.HandleFunc("/api/stop-times", s.handleStopTimes)
	mux.HandleFunc("/api/departures", s.handleDepartures)
	mux.HandleFunc("/api/timetable", s.handleTimetable)
	mux.HandleFunc("/api/map", s.handleMap)
	mux.HandleFunc("/api/alerts", s.handleAlerts)
	mux.HandleFunc("/api/trip-updates", s.handleTripUpdates)
	mux.HandleFunc("/api/export", s.handleExport)
	mux.Handle("/metrics", s.col.Handler())
	return mux
}

// Start begins listening; it returns immediately.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)
}

// HandleGracefulShutdown blocks until SIGINT/SIGTERM, then drains the HTTP
// server.
func (s *Server) HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Printf("server shutdown error: %v", err)
		} else {
			log.Printf("server shut down successfully")
		}
	}
}
