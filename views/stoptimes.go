package views

import (
	"context"

	"github.com/urban-transit-lab/transit-explorer/engine"
	"github.com/urban-transit-lab/transit-explorer/reconcile"
)

// BuildStopTimesTable resolves every stop of one trip: effective times and
// delays from the realtime overlay, the vehicle's relation to each stop, and
// the chord progress between the previous and current stop for the stop the
// vehicle reports. A missing vehicle, missing coordinates, or a dropped
// stop-time all degrade to scheduled-only rows.
func (b *Builder) BuildStopTimesTable(ctx context.Context, tripID string) (*StopTimesTable, error) {
	stopTimes, err := b.Engine.StopTimes(ctx, engine.StopTimeFilter{TripID: tripID, WithRealtime: true})
	if err != nil {
		return nil, err
	}
	reconcile.SortStopTimes(stopTimes)

	stopIDs := make([]string, 0, len(stopTimes))
	for _, st := range stopTimes {
		stopIDs = append(stopIDs, st.StopID)
	}
	stops, err := b.Engine.Stops(ctx, engine.StopFilter{StopIDs: stopIDs})
	if err != nil {
		return nil, err
	}
	stopByID := make(map[string]engine.Stop, len(stops))
	for _, s := range stops {
		stopByID[s.ID] = s
	}

	vehicles, err := b.Engine.VehiclePositions(ctx)
	if err != nil {
		return nil, err
	}
	vehicle, hasVehicle := reconcile.MatchVehicle(tripID, vehicles)

	table := &StopTimesTable{TripID: tripID, Rows: make([]StopTimeRow, 0, len(stopTimes))}
	if hasVehicle {
		v := vehicle
		table.Vehicle = &v
	}

	for _, st := range stopTimes {
		arrival, departure, err := reconcile.ResolveStopTime(st, b.Timezone)
		if err != nil {
			return nil, err
		}
		row := StopTimeRow{
			StopID:             st.StopID,
			StopName:           stopByID[st.StopID].Name,
			StopSequence:       st.StopSequence,
			ScheduledArrival:   st.ArrivalTime,
			ScheduledDeparture: st.DepartureTime,
			EffectiveArrival:   arrival.TimeOfDay,
			EffectiveDeparture: departure.TimeOfDay,
			ArrivalDelay:       arrival.Delay,
			DepartureDelay:     departure.Delay,
			Dropped:            st.Realtime != nil && st.Realtime.Relationship.Dropped(),
			VehicleState:       reconcile.StopStateNone.String(),
		}
		if hasVehicle {
			row.VehicleState = reconcile.ClassifyStop(st.StopID, vehicle).String()
			if vehicle.StopID == st.StopID {
				if prev, ok := reconcile.PreviousStop(stopTimes, st.StopID); ok {
					if pct, ok := reconcile.ProgressBetweenStops(stopByID[prev.StopID], stopByID[st.StopID], vehicle.Lat, vehicle.Lon); ok {
						row.Progress = &reconcile.StopProgress{
							FromStopID: prev.StopID,
							ToStopID:   st.StopID,
							Percent:    pct,
						}
					}
				}
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
