package views

import (
	"context"

	"github.com/urban-transit-lab/transit-explorer/engine"
)

// BuildRoutesGrid lists all routes with the number of trips each runs on the
// given agency-local date. An empty active-service set yields the NoService
// state with zero counts, not an error.
func (b *Builder) BuildRoutesGrid(ctx context.Context, date string) (*RoutesGrid, error) {
	routes, err := b.Engine.Routes(ctx, engine.RouteFilter{})
	if err != nil {
		return nil, err
	}

	services, err := b.Engine.ActiveServiceIDs(ctx, date)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	if !services.Empty() {
		trips, err := b.Engine.Trips(ctx, engine.TripFilter{ServiceIDs: services.Slice()})
		if err != nil {
			return nil, err
		}
		for _, t := range trips {
			counts[t.RouteID]++
		}
	}

	grid := &RoutesGrid{Date: date, NoService: services.Empty(), Routes: make([]RouteRow, 0, len(routes))}
	for _, r := range routes {
		grid.Routes = append(grid.Routes, RouteRow{
			RouteID:   r.ID,
			ShortName: r.ShortName,
			LongName:  r.LongName,
			Type:      r.Type,
			Color:     r.Color,
			TripCount: counts[r.ID],
		})
	}
	return grid, nil
}
