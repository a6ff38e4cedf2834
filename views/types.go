package views

import (
	"github.com/urban-transit-lab/transit-explorer/engine"
	"github.com/urban-transit-lab/transit-explorer/reconcile"
)

// RouteRow is one row of the routes grid.
type RouteRow struct {
	RouteID   string `json:"routeId"`
	ShortName string `json:"shortName,omitempty"`
	LongName  string `json:"longName,omitempty"`
	Type      int    `json:"type"`
	Color     string `json:"color,omitempty"`
	TripCount int    `json:"tripCount"`
}

// RoutesGrid lists all routes with their trip counts for a date. NoService
// marks a date with an empty active-service set; the routes are still listed
// so the grid renders, with zero counts.
type RoutesGrid struct {
	Date      string     `json:"date"`
	NoService bool       `json:"noService"`
	Routes    []RouteRow `json:"routes"`
}

// TripRow is one row of the trips list.
type TripRow struct {
	TripID         string `json:"tripId"`
	RouteID        string `json:"routeId"`
	Headsign       string `json:"headsign,omitempty"`
	DirectionID    string `json:"directionId,omitempty"`
	FirstDeparture string `json:"firstDeparture,omitempty"`
	LastArrival    string `json:"lastArrival,omitempty"`
	StopCount      int    `json:"stopCount"`
}

// TripsList lists the trips of a route running on a date.
type TripsList struct {
	RouteID   string    `json:"routeId"`
	Date      string    `json:"date"`
	NoService bool      `json:"noService"`
	Trips     []TripRow `json:"trips"`
}

// StopTimeRow is one stop of a trip with scheduled and effective times.
// Delay pointers are nil when no realtime signal covered the event.
type StopTimeRow struct {
	StopID             string                   `json:"stopId"`
	StopName           string                   `json:"stopName,omitempty"`
	StopSequence       int                      `json:"stopSequence"`
	ScheduledArrival   string                   `json:"scheduledArrival"`
	ScheduledDeparture string                   `json:"scheduledDeparture"`
	EffectiveArrival   string                   `json:"effectiveArrival"`
	EffectiveDeparture string                   `json:"effectiveDeparture"`
	ArrivalDelay       *int32                   `json:"arrivalDelay,omitempty"`
	DepartureDelay     *int32                   `json:"departureDelay,omitempty"`
	Dropped            bool                     `json:"dropped,omitempty"`
	VehicleState       string                   `json:"vehicleState"`
	Progress           *reconcile.StopProgress  `json:"progress,omitempty"`
}

// StopTimesTable is the full stop-time listing of one trip.
type StopTimesTable struct {
	TripID  string                  `json:"tripId"`
	Rows    []StopTimeRow           `json:"rows"`
	Vehicle *engine.VehicleSnapshot `json:"vehicle,omitempty"`
}

// Departure is one row of the departures board.
type Departure struct {
	TripID    string `json:"tripId"`
	RouteID   string `json:"routeId"`
	Headsign  string `json:"headsign,omitempty"`
	Scheduled string `json:"scheduled"`
	Effective string `json:"effective"`
	Delay     *int32 `json:"delay,omitempty"`
	Dropped   bool   `json:"dropped,omitempty"`

	sortKey int
}

// DeparturesBoard lists upcoming departures at a stop on a date, ordered by
// effective time.
type DeparturesBoard struct {
	StopID     string      `json:"stopId"`
	StopName   string      `json:"stopName,omitempty"`
	Date       string      `json:"date"`
	NoService  bool        `json:"noService"`
	Departures []Departure `json:"departures"`
}

// TimetableColumn is one trip's column in the timetable grid. Times align
// with the grid's StopIDs; an empty string means the trip skips that stop.
type TimetableColumn struct {
	TripID string   `json:"tripId"`
	Times  []string `json:"times"`
}

// TimetableGrid is the stops-by-trips departure matrix of a route on a date.
type TimetableGrid struct {
	RouteID   string            `json:"routeId"`
	Date      string            `json:"date"`
	NoService bool              `json:"noService"`
	StopIDs   []string          `json:"stopIds"`
	StopNames []string          `json:"stopNames"`
	Columns   []TimetableColumn `json:"columns"`
}

// VehicleMarker is one live vehicle on the map with its inter-stop progress
// when computable.
type VehicleMarker struct {
	VehicleID string                  `json:"vehicleId"`
	TripID    string                  `json:"tripId"`
	RouteID   string                  `json:"routeId,omitempty"`
	Lat       float64                 `json:"lat"`
	Lon       float64                 `json:"lon"`
	Bearing   *float64                `json:"bearing,omitempty"`
	Status    string                  `json:"status"`
	Progress  *reconcile.StopProgress `json:"progress,omitempty"`
}

// MapView is the live vehicle layer.
type MapView struct {
	Vehicles []VehicleMarker `json:"vehicles"`
}

// AlertRow is one service alert.
type AlertRow struct {
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
}

// AlertsTable lists currently active alerts.
type AlertsTable struct {
	Alerts []AlertRow `json:"alerts"`
}
