package reconcile

import (
	"github.com/urban-transit-lab/transit-explorer/engine"
)

// halfDay is the ambiguity threshold for midnight-wraparound correction.
const halfDay = SecondsPerDay / 2

// Effective is one resolved stop-time event. Delay is nil when no usable
// realtime signal existed — "no live data" is distinct from "exactly on
// time".
type Effective struct {
	TimeOfDay string `json:"timeOfDay"`
	Delay     *int32 `json:"delay,omitempty"`
}

// Live reports whether a realtime signal contributed to the value.
func (e Effective) Live() bool { return e.Delay != nil }

// ResolveDelay combines one scheduled time with up to two realtime signals
// into an effective time-of-day and signed delay (positive = late).
//
// An absolute timestamp always wins over a plain delay: it is the more direct
// observation. With only a delay, the effective time is scheduled + delay.
// With neither, the scheduled time passes through unchanged and Delay is nil.
//
// The absolute path renders the instant in the agency zone and corrects the
// midnight-wraparound ambiguity: an explicitly next-day schedule time
// (>= 24:00:00) shifts the observation forward one day, and otherwise a raw
// difference beyond ±12h means schedule and observation fell on different
// calendar days, so one day is added or removed. No service-date anchor is
// needed.
func ResolveDelay(scheduled string, delaySeconds *int32, absoluteTimestamp *int64, timezone string) (Effective, error) {
	schedSec, err := TimeToSeconds(scheduled)
	if err != nil {
		return Effective{}, err
	}

	if absoluteTimestamp != nil {
		tod, err := TimestampToTimeOfDay(*absoluteTimestamp, timezone)
		if err != nil {
			return Effective{}, err
		}
		observed, _ := TimeToSeconds(tod)
		raw := observed - schedSec
		if schedSec >= SecondsPerDay {
			raw = observed + SecondsPerDay - schedSec
		} else if raw > halfDay {
			raw -= SecondsPerDay
		} else if raw < -halfDay {
			raw += SecondsPerDay
		}
		d := int32(raw)
		return Effective{TimeOfDay: tod, Delay: &d}, nil
	}

	if delaySeconds != nil {
		d := *delaySeconds
		return Effective{TimeOfDay: SecondsToTime(schedSec + int(d)), Delay: &d}, nil
	}

	return Effective{TimeOfDay: scheduled}, nil
}

// ResolveStopTime resolves both events of one stop-time record. A missing
// overlay, or one whose schedule relationship drops the stop (CANCELED,
// SKIPPED), degrades to scheduled-only values rather than erroring.
func ResolveStopTime(st engine.StopTime, timezone string) (arrival, departure Effective, err error) {
	var rt *engine.RealtimeOverlay
	if st.Realtime != nil && !st.Realtime.Relationship.Dropped() {
		rt = st.Realtime
	}
	if rt == nil {
		arrival, err = ResolveDelay(st.ArrivalTime, nil, nil, timezone)
		if err != nil {
			return
		}
		departure, err = ResolveDelay(st.DepartureTime, nil, nil, timezone)
		return
	}
	arrival, err = ResolveDelay(st.ArrivalTime, rt.ArrivalDelay, rt.ArrivalTime, timezone)
	if err != nil {
		return
	}
	departure, err = ResolveDelay(st.DepartureTime, rt.DepartureDelay, rt.DepartureTime, timezone)
	return
}
