package engine

import (
	"github.com/go-playground/validator/v10"
)

// Filter descriptors passed across the engine boundary. Each optional field
// narrows the result set; zero values mean "no constraint". Where a concern
// has both a single-value and a multi-value field (TripID vs TripIDs) at most
// one of the two may be set — the validator enforces it, so callers get an
// explicit FilterError instead of silently duck-typed behavior.

var validate = validator.New()

// FilterError reports an invalid filter descriptor before it crosses the
// boundary.
type FilterError struct{ Msg string }

func (e *FilterError) Error() string { return e.Msg }

func validateFilter(f any) error {
	if err := validate.Struct(f); err != nil {
		return &FilterError{Msg: "invalid filter: " + err.Error()}
	}
	return nil
}

// RouteFilter narrows route queries.
type RouteFilter struct {
	AgencyID string   `json:"agencyId,omitempty"`
	RouteID  string   `json:"routeId,omitempty" validate:"excluded_with=RouteIDs"`
	RouteIDs []string `json:"routeIds,omitempty"`
}

func (f RouteFilter) Validate() error { return validateFilter(f) }

// TripFilter narrows trip queries. Date is an agency-local "YYYYMMDD" string;
// the engine resolves it to active service ids internally when ServiceIDs is
// not supplied.
type TripFilter struct {
	RouteID    string   `json:"routeId,omitempty"`
	TripID     string   `json:"tripId,omitempty" validate:"excluded_with=TripIDs"`
	TripIDs    []string `json:"tripIds,omitempty"`
	ServiceIDs []string `json:"serviceIds,omitempty"`
	Date       string   `json:"date,omitempty" validate:"omitempty,len=8,numeric"`
}

func (f TripFilter) Validate() error { return validateFilter(f) }

// StopFilter narrows stop queries.
type StopFilter struct {
	StopID  string   `json:"stopId,omitempty" validate:"excluded_with=StopIDs"`
	StopIDs []string `json:"stopIds,omitempty"`
}

func (f StopFilter) Validate() error { return validateFilter(f) }

// StopTimeFilter narrows stop-time queries. WithRealtime asks the engine to
// merge the current realtime overlay into each returned record.
type StopTimeFilter struct {
	TripID       string   `json:"tripId,omitempty" validate:"excluded_with=TripIDs"`
	TripIDs      []string `json:"tripIds,omitempty"`
	StopID       string   `json:"stopId,omitempty" validate:"excluded_with=StopIDs"`
	StopIDs      []string `json:"stopIds,omitempty"`
	ServiceIDs   []string `json:"serviceIds,omitempty"`
	Date         string   `json:"date,omitempty" validate:"omitempty,len=8,numeric"`
	WithRealtime bool     `json:"withRealtime,omitempty"`
}

func (f StopTimeFilter) Validate() error { return validateFilter(f) }

// AlertFilter narrows alert queries. ActiveAt is Unix seconds; zero means
// "now" on the engine side.
type AlertFilter struct {
	ActiveOnly bool  `json:"activeOnly,omitempty"`
	ActiveAt   int64 `json:"activeAt,omitempty" validate:"gte=0"`
}

func (f AlertFilter) Validate() error { return validateFilter(f) }
