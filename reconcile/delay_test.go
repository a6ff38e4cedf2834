package reconcile

import (
	"errors"
	"testing"

	"github.com/urban-transit-lab/transit-explorer/engine"
)

func i32(v int32) *int32 { return &v }
func i64(v int64) *int64 { return &v }

func TestResolveDelayNoSignal(t *testing.T) {
	tests := []struct {
		name      string
		scheduled string
	}{
		{name: "daytime", scheduled: "08:30:00"},
		{name: "past midnight", scheduled: "25:10:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eff, err := ResolveDelay(tt.scheduled, nil, nil, "UTC")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if eff.TimeOfDay != tt.scheduled {
				t.Errorf("expected scheduled passthrough %s, got %s", tt.scheduled, eff.TimeOfDay)
			}
			if eff.Delay != nil {
				t.Errorf("expected nil delay for no signal, got %d", *eff.Delay)
			}
			if eff.Live() {
				t.Error("no-signal result must not report as live")
			}
		})
	}
}

func TestResolveDelayDelayOnly(t *testing.T) {
	tests := []struct {
		name      string
		scheduled string
		delay     int32
		wantTime  string
	}{
		{name: "late", scheduled: "08:30:00", delay: 300, wantTime: "08:35:00"},
		{name: "early", scheduled: "08:30:00", delay: -120, wantTime: "08:28:00"},
		{name: "exactly on time", scheduled: "08:30:00", delay: 0, wantTime: "08:30:00"},
		{name: "crosses midnight forward", scheduled: "23:58:00", delay: 600, wantTime: "24:08:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// no timezone: the delay-only path must not need one
			eff, err := ResolveDelay(tt.scheduled, i32(tt.delay), nil, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if eff.TimeOfDay != tt.wantTime {
				t.Errorf("expected %s, got %s", tt.wantTime, eff.TimeOfDay)
			}
			if eff.Delay == nil || *eff.Delay != tt.delay {
				t.Errorf("expected delay echoed exactly as %d, got %v", tt.delay, eff.Delay)
			}
		})
	}
}

func TestResolveDelayAbsoluteTimestamp(t *testing.T) {
	// 1696320000 == 2023-10-03 08:00:00 UTC
	const base = int64(1696320000)
	tests := []struct {
		name      string
		scheduled string
		ts        int64
		wantTime  string
		wantDelay int32
	}{
		{
			name:      "within same day, no correction",
			scheduled: "07:55:00",
			ts:        base, // observed 08:00:00
			wantTime:  "08:00:00",
			wantDelay: 300,
		},
		{
			name:      "observed slips past midnight",
			scheduled: "23:58:00",
			ts:        base - 28200, // observed 00:10:00
			wantTime:  "00:10:00",
			wantDelay: 720,
		},
		{
			name:      "early before a post-midnight schedule",
			scheduled: "00:05:00",
			ts:        base + 57000, // observed 23:50:00
			wantTime:  "23:50:00",
			wantDelay: -900,
		},
		{
			name:      "explicit next-day schedule engages day shift",
			scheduled: "25:10:00",
			ts:        base - 24360, // observed 01:14:00
			wantTime:  "01:14:00",
			wantDelay: 240,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eff, err := ResolveDelay(tt.scheduled, nil, i64(tt.ts), "UTC")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if eff.TimeOfDay != tt.wantTime {
				t.Errorf("expected time %s, got %s", tt.wantTime, eff.TimeOfDay)
			}
			if eff.Delay == nil {
				t.Fatal("expected a computed delay")
			}
			if *eff.Delay != tt.wantDelay {
				t.Errorf("expected delay %d, got %d", tt.wantDelay, *eff.Delay)
			}
		})
	}
}

// The absolute timestamp is the more direct observation: it wins whenever
// both signals are present.
func TestResolveDelayPrecedence(t *testing.T) {
	const base = int64(1696320000) // 08:00:00 UTC
	eff, err := ResolveDelay("08:00:00", i32(120), i64(base+600), "UTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eff.TimeOfDay != "08:10:00" {
		t.Errorf("expected 08:10:00 from the timestamp path, got %s", eff.TimeOfDay)
	}
	if eff.Delay == nil || *eff.Delay != 600 {
		t.Errorf("expected delay 600 from the timestamp, got %v", eff.Delay)
	}
}

func TestResolveDelayErrors(t *testing.T) {
	t.Run("bad scheduled time", func(t *testing.T) {
		_, err := ResolveDelay("8h30", i32(60), nil, "UTC")
		var ite *InvalidTimeFormatError
		if !errors.As(err, &ite) {
			t.Fatalf("expected InvalidTimeFormatError, got %v", err)
		}
	})
	t.Run("absolute path without timezone", func(t *testing.T) {
		_, err := ResolveDelay("08:00:00", nil, i64(1696320000), "")
		var mtz *MissingTimezoneError
		if !errors.As(err, &mtz) {
			t.Fatalf("expected MissingTimezoneError, got %v", err)
		}
	})
}

func TestResolveStopTime(t *testing.T) {
	base := engine.StopTime{
		TripID:        "T1",
		StopID:        "S1",
		StopSequence:  3,
		ArrivalTime:   "08:00:00",
		DepartureTime: "08:01:00",
	}

	t.Run("no overlay degrades to scheduled", func(t *testing.T) {
		arr, dep, err := ResolveStopTime(base, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if arr.TimeOfDay != "08:00:00" || dep.TimeOfDay != "08:01:00" {
			t.Errorf("expected scheduled times, got %s / %s", arr.TimeOfDay, dep.TimeOfDay)
		}
		if arr.Delay != nil || dep.Delay != nil {
			t.Error("expected nil delays without overlay")
		}
	})

	t.Run("skipped overlay degrades to scheduled", func(t *testing.T) {
		st := base
		st.Realtime = &engine.RealtimeOverlay{
			ArrivalDelay: i32(300),
			Relationship: engine.RelationshipSkipped,
		}
		arr, _, err := ResolveStopTime(st, "UTC")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if arr.Delay != nil {
			t.Errorf("skipped stop must not carry a live delay, got %d", *arr.Delay)
		}
	})

	t.Run("overlay resolves both events", func(t *testing.T) {
		st := base
		st.Realtime = &engine.RealtimeOverlay{
			ArrivalDelay:   i32(120),
			DepartureDelay: i32(90),
		}
		arr, dep, err := ResolveStopTime(st, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if arr.TimeOfDay != "08:02:00" || arr.Delay == nil || *arr.Delay != 120 {
			t.Errorf("arrival: expected 08:02:00 / 120, got %s / %v", arr.TimeOfDay, arr.Delay)
		}
		if dep.TimeOfDay != "08:02:30" || dep.Delay == nil || *dep.Delay != 90 {
			t.Errorf("departure: expected 08:02:30 / 90, got %s / %v", dep.TimeOfDay, dep.Delay)
		}
	})
}
