package views

import (
	"context"
	"sort"

	"github.com/urban-transit-lab/transit-explorer/engine"
	"github.com/urban-transit-lab/transit-explorer/reconcile"
)

// BuildTimetableGrid builds the stops-by-trips departure matrix of a route
// on a date. The stop spine is the longest trip's stop order; stops only
// served by shorter trips are appended after their predecessor's position.
// Columns are ordered by each trip's first scheduled departure.
func (b *Builder) BuildTimetableGrid(ctx context.Context, routeID, date string) (*TimetableGrid, error) {
	services, err := b.Engine.ActiveServiceIDs(ctx, date)
	if err != nil {
		return nil, err
	}
	grid := &TimetableGrid{RouteID: routeID, Date: date, NoService: services.Empty(),
		StopIDs: []string{}, StopNames: []string{}, Columns: []TimetableColumn{}}
	if services.Empty() {
		return grid, nil
	}

	trips, err := b.Engine.Trips(ctx, engine.TripFilter{RouteID: routeID, ServiceIDs: services.Slice()})
	if err != nil {
		return nil, err
	}
	if len(trips) == 0 {
		return grid, nil
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
	for id := range byTrip {
		reconcile.SortStopTimes(byTrip[id])
	}

	// Spine: longest trip first, then merge the rest keeping relative order.
	sort.SliceStable(tripIDs, func(i, j int) bool {
		return len(byTrip[tripIDs[i]]) > len(byTrip[tripIDs[j]])
	})
	spine := []string{}
	pos := map[string]int{}
	for _, id := range tripIDs {
		insertAfter := -1
		for _, st := range byTrip[id] {
			if at, ok := pos[st.StopID]; ok {
				insertAfter = at
				continue
			}
			at := insertAfter + 1
			spine = append(spine, "")
			copy(spine[at+1:], spine[at:])
			spine[at] = st.StopID
			for s, p := range pos {
				if p >= at {
					pos[s] = p + 1
				}
			}
			pos[st.StopID] = at
			insertAfter = at
		}
	}

	stops, err := b.Engine.Stops(ctx, engine.StopFilter{StopIDs: spine})
	if err != nil {
		return nil, err
	}
	nameByID := make(map[string]string, len(stops))
	for _, s := range stops {
		nameByID[s.ID] = s.Name
	}
	grid.StopIDs = spine
	grid.StopNames = make([]string, len(spine))
	for i, id := range spine {
		grid.StopNames[i] = nameByID[id]
	}

	// Columns ordered by first departure.
	type col struct {
		tripID string
		first  int
	}
	cols := make([]col, 0, len(tripIDs))
	for _, id := range tripIDs {
		sts := byTrip[id]
		if len(sts) == 0 {
			continue
		}
		first, err := reconcile.TimeToSeconds(sts[0].DepartureTime)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col{tripID: id, first: first})
	}
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].first < cols[j].first })

	for _, c := range cols {
		column := TimetableColumn{TripID: c.tripID, Times: make([]string, len(spine))}
		for _, st := range byTrip[c.tripID] {
			column.Times[pos[st.StopID]] = st.DepartureTime
		}
		grid.Columns = append(grid.Columns, column)
	}
	return grid, nil
}
