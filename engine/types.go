package engine

import (
	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
)

// Agency is a transit operator from the static dataset.
type Agency struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url,omitempty"`
	Timezone string `json:"timezone"`
}

// Route is a static GTFS route.
type Route struct {
	ID        string `json:"id"`
	AgencyID  string `json:"agencyId,omitempty"`
	ShortName string `json:"shortName,omitempty"`
	LongName  string `json:"longName,omitempty"`
	Type      int    `json:"type"`
	Color     string `json:"color,omitempty"`
}

// Trip is a static GTFS trip.
type Trip struct {
	ID          string `json:"id"`
	RouteID     string `json:"routeId"`
	ServiceID   string `json:"serviceId"`
	Headsign    string `json:"headsign,omitempty"`
	DirectionID string `json:"directionId,omitempty"`
	BlockID     string `json:"blockId,omitempty"`
	ShapeID     string `json:"shapeId,omitempty"`
}

// Stop is a static GTFS stop. Coordinates are optional; the dataset may omit
// them for station entrances or generic nodes.
type Stop struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
}

// HasCoordinates reports whether the stop carries a usable position.
func (s Stop) HasCoordinates() bool { return s.Lat != nil && s.Lon != nil }

// ScheduleRelationship classifies a realtime record against the schedule.
// GTFS-RT splits this across the trip descriptor (ADDED, CANCELED, ...) and
// the stop-time update (SKIPPED, ...); the engine flattens both into one enum.
type ScheduleRelationship int32

const (
	RelationshipScheduled ScheduleRelationship = iota
	RelationshipAdded
	RelationshipUnscheduled
	RelationshipCanceled
	RelationshipSkipped
)

func (r ScheduleRelationship) String() string {
	switch r {
	case RelationshipScheduled:
		return "SCHEDULED"
	case RelationshipAdded:
		return "ADDED"
	case RelationshipUnscheduled:
		return "UNSCHEDULED"
	case RelationshipCanceled:
		return "CANCELED"
	case RelationshipSkipped:
		return "SKIPPED"
	}
	return "SCHEDULED"
}

// Dropped reports whether the relationship removes the stop-time from
// service: callers fall back to scheduled-only display for these.
func (r ScheduleRelationship) Dropped() bool {
	return r == RelationshipCanceled || r == RelationshipSkipped
}

// RelationshipFromTrip maps a GTFS-RT trip-descriptor relationship.
func RelationshipFromTrip(r gtfsrt.TripDescriptor_ScheduleRelationship) ScheduleRelationship {
	switch r {
	case gtfsrt.TripDescriptor_ADDED:
		return RelationshipAdded
	case gtfsrt.TripDescriptor_UNSCHEDULED:
		return RelationshipUnscheduled
	case gtfsrt.TripDescriptor_CANCELED:
		return RelationshipCanceled
	}
	return RelationshipScheduled
}

// RelationshipFromStopTime maps a GTFS-RT stop-time-update relationship.
func RelationshipFromStopTime(r gtfsrt.TripUpdate_StopTimeUpdate_ScheduleRelationship) ScheduleRelationship {
	switch r {
	case gtfsrt.TripUpdate_StopTimeUpdate_SKIPPED:
		return RelationshipSkipped
	case gtfsrt.TripUpdate_StopTimeUpdate_UNSCHEDULED:
		return RelationshipUnscheduled
	}
	return RelationshipScheduled
}

// RealtimeOverlay is the live data the engine merges onto a scheduled
// stop-time when a trip update covers it. Any subset of the fields may be
// populated; delays are signed seconds, times are Unix seconds.
type RealtimeOverlay struct {
	ArrivalDelay   *int32               `json:"arrivalDelay,omitempty"`
	ArrivalTime    *int64               `json:"arrivalTime,omitempty"`
	DepartureDelay *int32               `json:"departureDelay,omitempty"`
	DepartureTime  *int64               `json:"departureTime,omitempty"`
	Relationship   ScheduleRelationship `json:"relationship"`
}

// StopTime is a scheduled stop visit on a trip, optionally overlaid with
// realtime data. Times are GTFS "HH:MM:SS" strings and may exceed 24:00:00
// for service past midnight.
type StopTime struct {
	TripID        string           `json:"tripId"`
	StopID        string           `json:"stopId"`
	StopSequence  int              `json:"stopSequence"`
	ArrivalTime   string           `json:"arrivalTime"`
	DepartureTime string           `json:"departureTime"`
	PickupType    int              `json:"pickupType,omitempty"`
	DropOffType   int              `json:"dropOffType,omitempty"`
	Realtime      *RealtimeOverlay `json:"realtime,omitempty"`
}

// VehicleSnapshot is one live vehicle position from the realtime feed.
type VehicleSnapshot struct {
	VehicleID     string                                   `json:"vehicleId"`
	TripID        string                                   `json:"tripId"`
	RouteID       string                                   `json:"routeId,omitempty"`
	Lat           float64                                  `json:"lat"`
	Lon           float64                                  `json:"lon"`
	Bearing       *float64                                 `json:"bearing,omitempty"`
	Speed         *float64                                 `json:"speed,omitempty"`
	StopID        string                                   `json:"stopId,omitempty"`
	CurrentStatus gtfsrt.VehiclePosition_VehicleStopStatus `json:"currentStatus"`
	Timestamp     int64                                    `json:"timestamp,omitempty"`
}

// StopTimeUpdate is one per-stop prediction inside a trip update.
type StopTimeUpdate struct {
	StopID         string               `json:"stopId"`
	StopSequence   int                  `json:"stopSequence,omitempty"`
	ArrivalDelay   *int32               `json:"arrivalDelay,omitempty"`
	ArrivalTime    *int64               `json:"arrivalTime,omitempty"`
	DepartureDelay *int32               `json:"departureDelay,omitempty"`
	DepartureTime  *int64               `json:"departureTime,omitempty"`
	Relationship   ScheduleRelationship `json:"relationship"`
}

// TripUpdate is one live trip-level update from the realtime feed.
type TripUpdate struct {
	TripID       string               `json:"tripId"`
	RouteID      string               `json:"routeId,omitempty"`
	VehicleID    string               `json:"vehicleId,omitempty"`
	StartDate    string               `json:"startDate,omitempty"`
	Relationship ScheduleRelationship `json:"relationship"`
	Timestamp    int64                `json:"timestamp,omitempty"`
	StopTimes    []StopTimeUpdate     `json:"stopTimeUpdates,omitempty"`
}

// Alert is a service alert from the realtime feed.
type Alert struct {
	ID          string   `json:"id"`
	Header      string   `json:"header"`
	Description string   `json:"description,omitempty"`
	Cause       string   `json:"cause,omitempty"`
	Effect      string   `json:"effect,omitempty"`
	URL         string   `json:"url,omitempty"`
	ActiveFrom  int64    `json:"activeFrom,omitempty"`
	ActiveUntil int64    `json:"activeUntil,omitempty"`
	RouteIDs    []string `json:"routeIds,omitempty"`
	StopIDs     []string `json:"stopIds,omitempty"`
	TripIDs     []string `json:"tripIds,omitempty"`
}

// ServiceIDSet is the set of service identifiers active on a date. An empty
// set is a valid "no service today" answer, not an error.
type ServiceIDSet map[string]struct{}

// NewServiceIDSet builds a set from a list of identifiers.
func NewServiceIDSet(ids ...string) ServiceIDSet {
	s := make(ServiceIDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s ServiceIDSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

func (s ServiceIDSet) Empty() bool { return len(s) == 0 }

// Slice returns the identifiers in unspecified order.
func (s ServiceIDSet) Slice() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}
