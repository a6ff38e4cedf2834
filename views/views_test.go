package views

import (
	"context"
	"math"
	"testing"
)

func TestBuildRoutesGrid(t *testing.T) {
	b := NewBuilder(newFixtureEngine(), "UTC")

	t.Run("weekday", func(t *testing.T) {
		grid, err := b.BuildRoutesGrid(context.Background(), "20240115")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if grid.NoService {
			t.Fatal("weekday service is active")
		}
		counts := map[string]int{}
		for _, r := range grid.Routes {
			counts[r.RouteID] = r.TripCount
		}
		if counts["R1"] != 2 || counts["R2"] != 0 {
			t.Errorf("expected R1=2 R2=0, got %v", counts)
		}
	})

	t.Run("no service still lists routes", func(t *testing.T) {
		grid, err := b.BuildRoutesGrid(context.Background(), "20240114")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !grid.NoService {
			t.Error("expected NoService state")
		}
		if len(grid.Routes) != 2 {
			t.Errorf("routes stay listed with zero counts, got %d", len(grid.Routes))
		}
		for _, r := range grid.Routes {
			if r.TripCount != 0 {
				t.Errorf("route %s: expected zero trips, got %d", r.RouteID, r.TripCount)
			}
		}
	})
}

func TestBuildTimetableGrid(t *testing.T) {
	b := NewBuilder(newFixtureEngine(), "UTC")
	grid, err := b.BuildTimetableGrid(context.Background(), "R1", "20240115")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantStops := []string{"S1", "S2", "S3"}
	if len(grid.StopIDs) != len(wantStops) {
		t.Fatalf("expected %d spine stops, got %d", len(wantStops), len(grid.StopIDs))
	}
	for i, want := range wantStops {
		if grid.StopIDs[i] != want {
			t.Errorf("spine %d: expected %s, got %s", i, want, grid.StopIDs[i])
		}
	}
	if len(grid.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(grid.Columns))
	}
	if grid.Columns[0].TripID != "T1" || grid.Columns[1].TripID != "T2" {
		t.Errorf("columns must order by first departure, got %s then %s",
			grid.Columns[0].TripID, grid.Columns[1].TripID)
	}
	if grid.Columns[0].Times[1] != "08:11:00" {
		t.Errorf("expected T1 at S2 to read 08:11:00, got %s", grid.Columns[0].Times[1])
	}
}

func TestBuildMapView(t *testing.T) {
	b := NewBuilder(newFixtureEngine(), "UTC")
	view, err := b.BuildMapView(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Vehicles) != 1 {
		t.Fatalf("expected 1 vehicle, got %d", len(view.Vehicles))
	}
	m := view.Vehicles[0]
	if m.Status != "IN_TRANSIT_TO" {
		t.Errorf("expected IN_TRANSIT_TO, got %s", m.Status)
	}
	if m.Progress == nil {
		t.Fatal("expected inter-stop progress")
	}
	if m.Progress.FromStopID != "S1" || m.Progress.ToStopID != "S2" {
		t.Errorf("expected S1->S2, got %s->%s", m.Progress.FromStopID, m.Progress.ToStopID)
	}
	if math.Abs(m.Progress.Percent-50) > 1 {
		t.Errorf("expected ~50%%, got %v", m.Progress.Percent)
	}
}

func TestBuildAlertsTable(t *testing.T) {
	b := NewBuilder(newFixtureEngine(), "UTC")
	table, err := b.BuildAlertsTable(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Alerts) != 1 || table.Alerts[0].ID != "A1" {
		t.Fatalf("expected alert A1, got %+v", table.Alerts)
	}
	if table.Alerts[0].RouteIDs[0] != "R1" {
		t.Errorf("expected R1 reference, got %v", table.Alerts[0].RouteIDs)
	}
}
