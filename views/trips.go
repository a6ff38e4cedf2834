package views

import (
	"context"

	"github.com/urban-transit-lab/transit-explorer/engine"
	"github.com/urban-transit-lab/transit-explorer/reconcile"
)

// BuildTripsList lists the trips of a route running on a date, with each
// trip's span (first scheduled departure, last scheduled arrival).
func (b *Builder) BuildTripsList(ctx context.Context, routeID, date string) (*TripsList, error) {
	services, err := b.Engine.ActiveServiceIDs(ctx, date)
	if err != nil {
		return nil, err
	}
	list := &TripsList{RouteID: routeID, Date: date, NoService: services.Empty(), Trips: []TripRow{}}
	if services.Empty() {
		return list, nil
	}

	trips, err := b.Engine.Trips(ctx, engine.TripFilter{RouteID: routeID, ServiceIDs: services.Slice()})
	if err != nil {
		return nil, err
	}
	if len(trips) == 0 {
		return list, nil
	}

	tripIDs := make([]string, 0, len(trips))
	for _, t := range trips {
		tripIDs = append(tripIDs, t.ID)
	}
	stopTimes, err := b.Engine.StopTimes(ctx, engine.StopTimeFilter{TripIDs: tripIDs})
	if err != nil {
		return nil, err
	}
	byTrip := map[string][]engine.StopTime{}
	for _, st := range stopTimes {
		byTrip[st.TripID] = append(byTrip[st.TripID], st)
	}

	for _, t := range trips {
		row := TripRow{TripID: t.ID, RouteID: t.RouteID, Headsign: t.Headsign, DirectionID: t.DirectionID}
		sts := byTrip[t.ID]
		reconcile.SortStopTimes(sts)
		row.StopCount = len(sts)
		if len(sts) > 0 {
			row.FirstDeparture = sts[0].DepartureTime
			row.LastArrival = sts[len(sts)-1].ArrivalTime
		}
		list.Trips = append(list.Trips, row)
	}
	return list, nil
}
