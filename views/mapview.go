package views

import (
	"context"

	"github.com/urban-transit-lab/transit-explorer/engine"
	"github.com/urban-transit-lab/transit-explorer/reconcile"
)

// BuildMapView assembles the live vehicle layer: every snapshot with its
// status and, when the trip's stop coordinates allow it, the chord progress
// between the previous stop and the reported current stop.
func (b *Builder) BuildMapView(ctx context.Context) (*MapView, error) {
	vehicles, err := b.Engine.VehiclePositions(ctx)
	if err != nil {
		return nil, err
	}
	view := &MapView{Vehicles: make([]VehicleMarker, 0, len(vehicles))}
	if len(vehicles) == 0 {
		return view, nil
	}

	tripIDs := make([]string, 0, len(vehicles))
	seen := map[string]struct{}{}
	for _, v := range vehicles {
		if v.TripID == "" {
			continue
		}
		if _, ok := seen[v.TripID]; ok {
			continue
		}
		seen[v.TripID] = struct{}{}
		tripIDs = append(tripIDs, v.TripID)
	}

	stopTimesByTrip := map[string][]engine.StopTime{}
	stopByID := map[string]engine.Stop{}
	if len(tripIDs) > 0 {
		stopTimes, err := b.Engine.StopTimes(ctx, engine.StopTimeFilter{TripIDs: tripIDs})
		if err != nil {
			return nil, err
		}
		stopIDs := []string{}
		stopSeen := map[string]struct{}{}
		for _, st := range stopTimes {
			stopTimesByTrip[st.TripID] = append(stopTimesByTrip[st.TripID], st)
			if _, ok := stopSeen[st.StopID]; !ok {
				stopSeen[st.StopID] = struct{}{}
				stopIDs = append(stopIDs, st.StopID)
			}
		}
		for id := range stopTimesByTrip {
			reconcile.SortStopTimes(stopTimesByTrip[id])
		}
		stops, err := b.Engine.Stops(ctx, engine.StopFilter{StopIDs: stopIDs})
		if err != nil {
			return nil, err
		}
		for _, s := range stops {
			stopByID[s.ID] = s
		}
	}

	for _, v := range vehicles {
		marker := VehicleMarker{
			VehicleID: v.VehicleID,
			TripID:    v.TripID,
			RouteID:   v.RouteID,
			Lat:       v.Lat,
			Lon:       v.Lon,
			Bearing:   v.Bearing,
			Status:    v.CurrentStatus.String(),
		}
		if v.StopID != "" {
			if prev, ok := reconcile.PreviousStop(stopTimesByTrip[v.TripID], v.StopID); ok {
				if pct, ok := reconcile.ProgressBetweenStops(stopByID[prev.StopID], stopByID[v.StopID], v.Lat, v.Lon); ok {
					marker.Progress = &reconcile.StopProgress{
						FromStopID: prev.StopID,
						ToStopID:   v.StopID,
						Percent:    pct,
					}
				}
			}
		}
		view.Vehicles = append(view.Vehicles, marker)
	}
	return view, nil
}
