package reconcile

// InvalidTimeFormatError reports a schedule time string that does not split
// into three numeric components. The record carrying it is unusable.
type InvalidTimeFormatError struct{ Value string }

func (e *InvalidTimeFormatError) Error() string {
	return "invalid schedule time: " + e.Value
}

// MissingTimezoneError reports a delay computation that needed an agency
// timezone and did not get a usable one. The package never substitutes a
// default here: a silently wrong delay is worse than a loud failure. Callers
// rendering cosmetic-only times may retry with an explicit fallback zone.
type MissingTimezoneError struct{ Zone string }

func (e *MissingTimezoneError) Error() string {
	if e.Zone == "" {
		return "agency timezone required but not set"
	}
	return "agency timezone unusable: " + e.Zone
}
