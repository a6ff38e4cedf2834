package views

import (
	"context"
	"math"
	"testing"

	"github.com/urban-transit-lab/transit-explorer/reconcile"
)

func TestBuildStopTimesTable(t *testing.T) {
	b := NewBuilder(newFixtureEngine(), "UTC")
	table, err := b.BuildStopTimesTable(context.Background(), "T1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table.Rows))
	}
	if table.Vehicle == nil || table.Vehicle.VehicleID != "V1" {
		t.Fatal("expected matched vehicle V1")
	}

	// Rows come back in stop-sequence order.
	for i, want := range []string{"S1", "S2", "S3"} {
		if table.Rows[i].StopID != want {
			t.Fatalf("row %d: expected %s, got %s", i, want, table.Rows[i].StopID)
		}
	}

	t.Run("scheduled-only row", func(t *testing.T) {
		row := table.Rows[0]
		if row.EffectiveArrival != "08:00:00" || row.ArrivalDelay != nil {
			t.Errorf("expected scheduled passthrough, got %s / %v", row.EffectiveArrival, row.ArrivalDelay)
		}
		if row.VehicleState != "NONE" {
			t.Errorf("expected NONE at S1, got %s", row.VehicleState)
		}
	})

	t.Run("overlaid row with approaching vehicle", func(t *testing.T) {
		row := table.Rows[1]
		if row.EffectiveArrival != "08:12:00" {
			t.Errorf("expected effective arrival 08:12:00, got %s", row.EffectiveArrival)
		}
		if row.ArrivalDelay == nil || *row.ArrivalDelay != 120 {
			t.Errorf("expected arrival delay 120, got %v", row.ArrivalDelay)
		}
		if row.VehicleState != "APPROACHING" {
			t.Errorf("expected APPROACHING at the vehicle's current stop, got %s", row.VehicleState)
		}
		if row.Progress == nil {
			t.Fatal("expected chord progress between S1 and S2")
		}
		if row.Progress.FromStopID != "S1" || row.Progress.ToStopID != "S2" {
			t.Errorf("expected S1->S2, got %s->%s", row.Progress.FromStopID, row.Progress.ToStopID)
		}
		// vehicle sits halfway along the chord
		if math.Abs(row.Progress.Percent-50) > 1 {
			t.Errorf("expected ~50%%, got %v", row.Progress.Percent)
		}
	})

	t.Run("stop ahead of the vehicle stays NONE", func(t *testing.T) {
		if table.Rows[2].VehicleState != reconcile.StopStateNone.String() {
			t.Errorf("expected NONE at S3, got %s", table.Rows[2].VehicleState)
		}
		if table.Rows[2].Progress != nil {
			t.Error("expected no progress at a stop the vehicle is not heading to")
		}
	})
}

func TestBuildStopTimesTableSkippedStop(t *testing.T) {
	b := NewBuilder(newFixtureEngine(), "UTC")
	table, err := b.BuildStopTimesTable(context.Background(), "T2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row := table.Rows[1]
	if !row.Dropped {
		t.Error("expected skipped stop flagged as dropped")
	}
	if row.ArrivalDelay != nil {
		t.Error("skipped stop must fall back to scheduled-only display")
	}
	if row.EffectiveArrival != "09:10:00" {
		t.Errorf("expected scheduled arrival, got %s", row.EffectiveArrival)
	}
	if table.Vehicle != nil {
		t.Error("no vehicle serves T2")
	}
}
