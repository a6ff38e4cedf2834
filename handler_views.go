package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/urban-transit-lab/transit-explorer/engine"
)

func queryParams(r *http.Request) map[string]string {
	params := map[string]string{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return params
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var qe *QueryError
	var fe *engine.FilterError
	var ce *engine.CallError
	switch {
	case errors.As(err, &qe), errors.As(err, &fe):
		status = http.StatusBadRequest
	case errors.As(err, &ce):
		status = http.StatusBadGateway
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// serveView runs a view build against a consistent data version. A token is
// taken before the build; if a realtime refresh supersedes it mid-build the
// result is discarded and the build retried against the newer snapshot. The
// last attempt is served uncached rather than looping forever.
func (s *Server) serveView(w http.ResponseWriter, r *http.Request, view, key string, build func(ctx context.Context) (any, error)) {
	w.Header().Set("Content-Type", "application/json")
	const maxAttempts = 3
	var buf []byte
	for attempt := 0; attempt < maxAttempts; attempt++ {
		token := s.coord.Begin()
		if cached, ok := s.cache.Get(key, token); ok {
			s.col.ResponsesServed.WithLabelValues(view).Inc()
			_, _ = w.Write(cached)
			return
		}
		data, err := build(r.Context())
		if err != nil {
			s.col.EngineCallErrors.Inc()
			writeError(w, err)
			return
		}
		buf, err = json.Marshal(data)
		if err != nil {
			writeError(w, err)
			return
		}
		if s.coord.StillCurrent(token) {
			s.cache.Put(key, token, buf)
			break
		}
	}
	s.col.ResponsesServed.WithLabelValues(view).Inc()
	_, _ = w.Write(buf)
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	date, err := resolveDate(params, s.builder.Timezone)
	if err != nil {
		writeError(w, err)
		return
	}
	s.serveView(w, r, "routes", memoKey("routes", date), func(ctx context.Context) (any, error) {
		return s.builder.BuildRoutesGrid(ctx, date)
	})
}

func (s *Server) handleTrips(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	routeID, err := requireParam(params, "routeId")
	if err != nil {
		writeError(w, err)
		return
	}
	date, err := resolveDate(params, s.builder.Timezone)
	if err != nil {
		writeError(w, err)
		return
	}
	s.serveView(w, r, "trips", memoKey("trips", routeID, date), func(ctx context.Context) (any, error) {
		return s.builder.BuildTripsList(ctx, routeID, date)
	})
}

func (s *Server) handleStopTimes(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	tripID, err := requireParam(params, "tripId")
	if err != nil {
		writeError(w, err)
		return
	}
	s.serveView(w, r, "stop-times", memoKey("stop-times", tripID), func(ctx context.Context) (any, error) {
		return s.builder.BuildStopTimesTable(ctx, tripID)
	})
}

func (s *Server) handleDepartures(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	stopID, err := requireParam(params, "stopId")
	if err != nil {
		writeError(w, err)
		return
	}
	date, err := resolveDate(params, s.builder.Timezone)
	if err != nil {
		writeError(w, err)
		return
	}
	s.serveView(w, r, "departures", memoKey("departures", stopID, date), func(ctx context.Context) (any, error) {
		return s.builder.BuildDeparturesBoard(ctx, stopID, date)
	})
}

func (s *Server) handleTimetable(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	routeID, err := requireParam(params, "routeId")
	if err != nil {
		writeError(w, err)
		return
	}
	date, err := resolveDate(params, s.builder.Timezone)
	if err != nil {
		writeError(w, err)
		return
	}
	s.serveView(w, r, "timetable", memoKey("timetable", routeID, date), func(ctx context.Context) (any, error) {
		return s.builder.BuildTimetableGrid(ctx, routeID, date)
	})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	s.serveView(w, r, "map", memoKey("map"), func(ctx context.Context) (any, error) {
		return s.builder.BuildMapView(ctx)
	})
}

// handleTripUpdates exposes the raw trip-update feed for diagnostics; unlike
// the views it serves engine records unshaped.
func (s *Server) handleTripUpdates(w http.ResponseWriter, r *http.Request) {
	s.serveView(w, r, "trip-updates", memoKey("trip-updates"), func(ctx context.Context) (any, error) {
		updates, err := s.eng.TripUpdates(ctx)
		if err != nil {
			return nil, err
		}
		if updates == nil {
			updates = []engine.TripUpdate{}
		}
		return updates, nil
	})
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	s.serveView(w, r, "alerts", memoKey("alerts"), func(ctx context.Context) (any, error) {
		return s.builder.BuildAlertsTable(ctx)
	})
}

// handleExport streams the engine's database to the client. Progress is
// logged; the payload itself is whatever format the engine exports.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="gtfs-export.db"`)
	err := s.eng.ExportDatabase(r.Context(), w, func(frac float64) {
		log.Printf("database export %.0f%%", frac*100)
	})
	if err != nil {
		log.Printf("database export failed: %v", err)
	}
}
