// Package enginetest provides an in-memory engine.Engine for tests. It
// applies the same filter semantics the real engine documents, over fixture
// slices assigned directly to the struct fields.
package enginetest

import (
	"context"
	"io"
	"sort"
	"sync/atomic"

	"github.com/urban-transit-lab/transit-explorer/engine"
)

// Fake is an in-memory engine.Engine.
type Fake struct {
	AgencyRecords   []engine.Agency
	RouteRecords    []engine.Route
	TripRecords     []engine.Trip
	StopRecords     []engine.Stop
	StopTimeRecords []engine.StopTime
	AlertRecords    []engine.Alert
	Vehicles        []engine.VehicleSnapshot
	Updates         []engine.TripUpdate

	// ServiceIDsByDate maps "YYYYMMDD" to the active service ids.
	ServiceIDsByDate map[string][]string

	// ExportPayload is streamed by ExportDatabase.
	ExportPayload []byte

	// Err, when set, is returned by every call.
	Err error

	fetchCalls atomic.Int64
}

var _ engine.Engine = (*Fake)(nil)

// FetchCalls reports how many times FetchRealtimeData ran.
func (f *Fake) FetchCalls() int64 { return f.fetchCalls.Load() }

func (f *Fake) Agencies(ctx context.Context) ([]engine.Agency, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.AgencyRecords, nil
}

func (f *Fake) Routes(ctx context.Context, fl engine.RouteFilter) ([]engine.Route, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if err := fl.Validate(); err != nil {
		return nil, err
	}
	ids := idSet(fl.RouteID, fl.RouteIDs)
	var out []engine.Route
	for _, r := range f.RouteRecords {
		if fl.AgencyID != "" && r.AgencyID != fl.AgencyID {
			continue
		}
		if ids != nil && !ids.Contains(r.ID) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *Fake) Trips(ctx context.Context, fl engine.TripFilter) ([]engine.Trip, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if err := fl.Validate(); err != nil {
		return nil, err
	}
	ids := idSet(fl.TripID, fl.TripIDs)
	services := f.resolveServices(fl.ServiceIDs, fl.Date)
	var out []engine.Trip
	for _, t := range f.TripRecords {
		if fl.RouteID != "" && t.RouteID != fl.RouteID {
			continue
		}
		if ids != nil && !ids.Contains(t.ID) {
			continue
		}
		if services != nil && !services.Contains(t.ServiceID) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *Fake) Stops(ctx context.Context, fl engine.StopFilter) ([]engine.Stop, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if err := fl.Validate(); err != nil {
		return nil, err
	}
	ids := idSet(fl.StopID, fl.StopIDs)
	var out []engine.Stop
	for _, s := range f.StopRecords {
		if ids != nil && !ids.Contains(s.ID) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *Fake) StopTimes(ctx context.Context, fl engine.StopTimeFilter) ([]engine.StopTime, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if err := fl.Validate(); err != nil {
		return nil, err
	}
	tripIDs := idSet(fl.TripID, fl.TripIDs)
	stopIDs := idSet(fl.StopID, fl.StopIDs)
	services := f.resolveServices(fl.ServiceIDs, fl.Date)
	tripService := map[string]string{}
	for _, t := range f.TripRecords {
		tripService[t.ID] = t.ServiceID
	}
	var out []engine.StopTime
	for _, st := range f.StopTimeRecords {
		if tripIDs != nil && !tripIDs.Contains(st.TripID) {
			continue
		}
		if stopIDs != nil && !stopIDs.Contains(st.StopID) {
			continue
		}
		if services != nil && !services.Contains(tripService[st.TripID]) {
			continue
		}
		if !fl.WithRealtime {
			st.Realtime = nil
		}
		out = append(out, st)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TripID != out[j].TripID {
			return out[i].TripID < out[j].TripID
		}
		return out[i].StopSequence < out[j].StopSequence
	})
	return out, nil
}

func (f *Fake) Alerts(ctx context.Context, fl engine.AlertFilter) ([]engine.Alert, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if err := fl.Validate(); err != nil {
		return nil, err
	}
	if !fl.ActiveOnly {
		return f.AlertRecords, nil
	}
	at := fl.ActiveAt
	var out []engine.Alert
	for _, a := range f.AlertRecords {
		if at != 0 {
			if a.ActiveFrom != 0 && at < a.ActiveFrom {
				continue
			}
			if a.ActiveUntil != 0 && at > a.ActiveUntil {
				continue
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *Fake) VehiclePositions(ctx context.Context) ([]engine.VehicleSnapshot, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Vehicles, nil
}

func (f *Fake) TripUpdates(ctx context.Context) ([]engine.TripUpdate, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Updates, nil
}

func (f *Fake) ActiveServiceIDs(ctx context.Context, date string) (engine.ServiceIDSet, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return engine.NewServiceIDSet(f.ServiceIDsByDate[date]...), nil
}

func (f *Fake) FetchRealtimeData(ctx context.Context) error {
	if f.Err != nil {
		return f.Err
	}
	f.fetchCalls.Add(1)
	return nil
}

func (f *Fake) ExportDatabase(ctx context.Context, w io.Writer, progress func(float64)) error {
	if f.Err != nil {
		return f.Err
	}
	if progress != nil {
		progress(0.5)
		progress(1.0)
	}
	_, err := w.Write(f.ExportPayload)
	return err
}

// resolveServices turns explicit service ids or a date into a set; nil means
// no service constraint at all.
func (f *Fake) resolveServices(ids []string, date string) engine.ServiceIDSet {
	if len(ids) > 0 {
		return engine.NewServiceIDSet(ids...)
	}
	if date != "" {
		return engine.NewServiceIDSet(f.ServiceIDsByDate[date]...)
	}
	return nil
}

func idSet(single string, many []string) engine.ServiceIDSet {
	if single != "" {
		return engine.NewServiceIDSet(single)
	}
	if len(many) > 0 {
		return engine.NewServiceIDSet(many...)
	}
	return nil
}
