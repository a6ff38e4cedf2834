package views

import (
	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"github.com/urban-transit-lab/transit-explorer/engine"
	"github.com/urban-transit-lab/transit-explorer/engine/enginetest"
)

func f64(v float64) *float64 { return &v }
func i32(v int32) *int32     { return &v }

// newFixtureEngine builds a small two-trip network: route R1 with trips T1
// and T2 over stops S1..S3, service S-WKDAY active on 20240115 and nothing
// active on 20240114.
func newFixtureEngine() *enginetest.Fake {
	return &enginetest.Fake{
		AgencyRecords: []engine.Agency{
			{ID: "AG", Name: "Test Agency", Timezone: "UTC"},
		},
		RouteRecords: []engine.Route{
			{ID: "R1", AgencyID: "AG", ShortName: "1", LongName: "Center - Airport", Type: 3},
			{ID: "R2", AgencyID: "AG", ShortName: "2", LongName: "Ring", Type: 3},
		},
		TripRecords: []engine.Trip{
			{ID: "T1", RouteID: "R1", ServiceID: "S-WKDAY", Headsign: "Airport", DirectionID: "0"},
			{ID: "T2", RouteID: "R1", ServiceID: "S-WKDAY", Headsign: "Airport", DirectionID: "0"},
			{ID: "T3", RouteID: "R2", ServiceID: "S-SAT", Headsign: "Ring"},
		},
		StopRecords: []engine.Stop{
			{ID: "S1", Name: "Center", Lat: f64(42.00), Lon: f64(23.00)},
			{ID: "S2", Name: "Bridge", Lat: f64(42.00), Lon: f64(23.10)},
			{ID: "S3", Name: "Airport", Lat: f64(42.00), Lon: f64(23.20)},
		},
		StopTimeRecords: []engine.StopTime{
			{TripID: "T1", StopID: "S1", StopSequence: 1, ArrivalTime: "08:00:00", DepartureTime: "08:00:00"},
			{TripID: "T1", StopID: "S2", StopSequence: 2, ArrivalTime: "08:10:00", DepartureTime: "08:11:00",
				Realtime: &engine.RealtimeOverlay{ArrivalDelay: i32(120), DepartureDelay: i32(120)}},
			{TripID: "T1", StopID: "S3", StopSequence: 3, ArrivalTime: "08:20:00", DepartureTime: "08:20:00"},
			{TripID: "T2", StopID: "S1", StopSequence: 1, ArrivalTime: "09:00:00", DepartureTime: "09:00:00"},
			{TripID: "T2", StopID: "S2", StopSequence: 2, ArrivalTime: "09:10:00", DepartureTime: "09:11:00",
				Realtime: &engine.RealtimeOverlay{Relationship: engine.RelationshipSkipped}},
			{TripID: "T2", StopID: "S3", StopSequence: 3, ArrivalTime: "09:20:00", DepartureTime: "09:20:00"},
		},
		Vehicles: []engine.VehicleSnapshot{
			{VehicleID: "V1", TripID: "T1", RouteID: "R1", Lat: 42.00, Lon: 23.05,
				StopID: "S2", CurrentStatus: gtfsrt.VehiclePosition_IN_TRANSIT_TO},
		},
		AlertRecords: []engine.Alert{
			{ID: "A1", Header: "Detour on route 1", Effect: "DETOUR", RouteIDs: []string{"R1"}},
		},
		ServiceIDsByDate: map[string][]string{
			"20240115": {"S-WKDAY"},
			"20240113": {"S-SAT"},
		},
	}
}
