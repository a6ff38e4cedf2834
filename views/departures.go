package views

import (
	"context"
	"errors"
	"sort"

	"github.com/urban-transit-lab/transit-explorer/engine"
	"github.com/urban-transit-lab/transit-explorer/reconcile"
)

// BuildDeparturesBoard lists the departures at one stop on a date, sorted by
// effective departure. Dropped stop-times stay on the board flagged as such,
// so the display can strike them through instead of hiding them.
func (b *Builder) BuildDeparturesBoard(ctx context.Context, stopID, date string) (*DeparturesBoard, error) {
	services, err := b.Engine.ActiveServiceIDs(ctx, date)
	if err != nil {
		return nil, err
	}
	board := &DeparturesBoard{StopID: stopID, Date: date, NoService: services.Empty(), Departures: []Departure{}}

	stops, err := b.Engine.Stops(ctx, engine.StopFilter{StopID: stopID})
	if err != nil {
		return nil, err
	}
	if len(stops) > 0 {
		board.StopName = stops[0].Name
	}
	if services.Empty() {
		return board, nil
	}

	stopTimes, err := b.Engine.StopTimes(ctx, engine.StopTimeFilter{
		StopID:       stopID,
		ServiceIDs:   services.Slice(),
		WithRealtime: true,
	})
	if err != nil {
		return nil, err
	}
	if len(stopTimes) == 0 {
		return board, nil
	}

	tripIDs := make([]string, 0, len(stopTimes))
	for _, st := range stopTimes {
		tripIDs = append(tripIDs, st.TripID)
	}
	trips, err := b.Engine.Trips(ctx, engine.TripFilter{TripIDs: tripIDs})
	if err != nil {
		return nil, err
	}
	tripByID := make(map[string]engine.Trip, len(trips))
	for _, t := range trips {
		tripByID[t.ID] = t
	}

	for _, st := range stopTimes {
		_, departure, err := b.resolveCosmetic(st)
		if err != nil {
			return nil, err
		}
		trip := tripByID[st.TripID]
		dep := Departure{
			TripID:    st.TripID,
			RouteID:   trip.RouteID,
			Headsign:  trip.Headsign,
			Scheduled: st.DepartureTime,
			Effective: departure.TimeOfDay,
			Delay:     departure.Delay,
			Dropped:   st.Realtime != nil && st.Realtime.Relationship.Dropped(),
		}
		schedSec, err := reconcile.TimeToSeconds(st.DepartureTime)
		if err != nil {
			return nil, err
		}
		dep.sortKey = schedSec
		if departure.Delay != nil {
			dep.sortKey += int(*departure.Delay)
		}
		board.Departures = append(board.Departures, dep)
	}

	sort.SliceStable(board.Departures, func(i, j int) bool {
		return board.Departures[i].sortKey < board.Departures[j].sortKey
	})
	return board, nil
}

// resolveCosmetic resolves a stop-time, retrying in the process-local zone
// when the agency zone is unusable and LocalFallback was opted into. The
// retried values are display-only: their delays are stripped, since delay
// arithmetic against the wrong zone would be numerically wrong rather than
// visibly missing.
func (b *Builder) resolveCosmetic(st engine.StopTime) (arrival, departure reconcile.Effective, err error) {
	arrival, departure, err = reconcile.ResolveStopTime(st, b.Timezone)
	var mtz *reconcile.MissingTimezoneError
	if err == nil || !b.LocalFallback || !errors.As(err, &mtz) {
		return
	}
	arrival, departure, err = reconcile.ResolveStopTime(st, "Local")
	if err != nil {
		return
	}
	arrival.Delay = nil
	departure.Delay = nil
	return
}
