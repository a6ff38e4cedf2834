package reconcile

import (
	"math"
	"sort"

	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"github.com/urban-transit-lab/transit-explorer/engine"
)

// StopState is the display relation between a live vehicle and one stop.
type StopState int

const (
	StopStateNone StopState = iota
	StopStateApproaching
	StopStateAtStop
)

func (s StopState) String() string {
	switch s {
	case StopStateApproaching:
		return "APPROACHING"
	case StopStateAtStop:
		return "AT_STOP"
	}
	return "NONE"
}

// StopProgress is how far a vehicle has traveled between two consecutive
// stops, as a percentage of the straight-line chord. Recomputed every
// refresh, never persisted.
type StopProgress struct {
	FromStopID string  `json:"fromStopId"`
	ToStopID   string  `json:"toStopId"`
	Percent    float64 `json:"percent"`
}

// MatchVehicle finds the vehicle serving a trip. One vehicle per trip is
// expected; if the feed reports more, the first match in iteration order
// wins.
func MatchVehicle(tripID string, vehicles []engine.VehicleSnapshot) (engine.VehicleSnapshot, bool) {
	for _, v := range vehicles {
		if v.TripID == tripID {
			return v, true
		}
	}
	return engine.VehicleSnapshot{}, false
}

// ClassifyStop relates a vehicle to one stop on its trip. A stop is
// APPROACHING only when it is literally the vehicle-reported current stop;
// stops further ahead on the trip stay NONE.
func ClassifyStop(stopID string, v engine.VehicleSnapshot) StopState {
	if stopID == "" || v.StopID != stopID {
		return StopStateNone
	}
	switch v.CurrentStatus {
	case gtfsrt.VehiclePosition_STOPPED_AT:
		return StopStateAtStop
	case gtfsrt.VehiclePosition_INCOMING_AT, gtfsrt.VehiclePosition_IN_TRANSIT_TO:
		return StopStateApproaching
	}
	return StopStateNone
}

// ProgressBetweenStops interpolates the vehicle position linearly along the
// chord from one stop to the next and returns the traveled share in [0,100].
// It reports false when either stop lacks coordinates or the chord has zero
// length. The chord ignores the actual route shape; accepted for display.
func ProgressBetweenStops(from, to engine.Stop, lat, lon float64) (float64, bool) {
	if !from.HasCoordinates() || !to.HasCoordinates() {
		return 0, false
	}
	total := HaversineKM(*from.Lat, *from.Lon, *to.Lat, *to.Lon)
	if total == 0 {
		return 0, false
	}
	traveled := HaversineKM(*from.Lat, *from.Lon, lat, lon)
	pct := traveled / total * 100
	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}
	return pct, true
}

// SortStopTimes orders stop-times by stop sequence in place. The join never
// assumes input ordering; call this before any previous-stop lookup.
func SortStopTimes(stopTimes []engine.StopTime) {
	sort.SliceStable(stopTimes, func(i, j int) bool {
		return stopTimes[i].StopSequence < stopTimes[j].StopSequence
	})
}

// PreviousStop returns the stop-time immediately before the named stop in a
// sequence-sorted trip, and false when the stop is first or absent.
func PreviousStop(sorted []engine.StopTime, stopID string) (engine.StopTime, bool) {
	for i, st := range sorted {
		if st.StopID == stopID {
			if i == 0 {
				return engine.StopTime{}, false
			}
			return sorted[i-1], true
		}
	}
	return engine.StopTime{}, false
}

// HaversineKM is the great-circle distance between two coordinates.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
