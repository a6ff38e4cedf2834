package engine

import (
	"context"
	"io"
)

// Engine is the query contract of the external transit-data engine. All
// getters return ordered collections; ordering is the engine's (stop-times by
// trip then stop sequence, trips by id). Implementations must be safe for
// concurrent use — the application issues queries from HTTP handlers and the
// realtime refresh loop at the same time.
type Engine interface {
	Agencies(ctx context.Context) ([]Agency, error)
	Routes(ctx context.Context, f RouteFilter) ([]Route, error)
	Trips(ctx context.Context, f TripFilter) ([]Trip, error)
	Stops(ctx context.Context, f StopFilter) ([]Stop, error)
	StopTimes(ctx context.Context, f StopTimeFilter) ([]StopTime, error)
	Alerts(ctx context.Context, f AlertFilter) ([]Alert, error)
	VehiclePositions(ctx context.Context) ([]VehicleSnapshot, error)
	TripUpdates(ctx context.Context) ([]TripUpdate, error)

	// ActiveServiceIDs returns the service identifiers running on an
	// agency-local "YYYYMMDD" date. An empty set means no service that day.
	ActiveServiceIDs(ctx context.Context, date string) (ServiceIDSet, error)

	// FetchRealtimeData makes the engine re-pull its realtime feeds so that
	// subsequent WithRealtime queries see fresh overlays.
	FetchRealtimeData(ctx context.Context) error

	// ExportDatabase streams the engine's database to w. progress, when
	// non-nil, receives fractions in [0,1] as the export advances.
	ExportDatabase(ctx context.Context, w io.Writer, progress func(float64)) error
}

// CallError is a failure reported by the engine for a named operation.
type CallError struct {
	Op  string
	Msg string
}

func (e *CallError) Error() string { return "engine call " + e.Op + ": " + e.Msg }
