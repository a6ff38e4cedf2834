package explorer

import (
	"strings"
	"time"
	"unicode"
)

// QueryError is a request-parameter problem reported back as HTTP 400.
type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

// requireParam fetches a mandatory query parameter.
func requireParam(params map[string]string, name string) (string, error) {
	v := strings.TrimSpace(params[name])
	if v == "" {
		return "", &QueryError{Msg: "You must provide a " + name + "."}
	}
	return v, nil
}

// resolveDate validates an explicit "YYYYMMDD" date parameter, or defaults to
// today in the given zone. Defaulting in the agency zone keeps the service
// day correct near midnight; an unusable zone falls back to the process-local
// clock, which is a display decision the caller already opted into by
// omitting the date.
func resolveDate(params map[string]string, timezone string) (string, error) {
	if v := strings.TrimSpace(params["date"]); v != "" {
		if len(v) != 8 || !allDigits(v) {
			return "", &QueryError{Msg: "date must be YYYYMMDD."}
		}
		return v, nil
	}
	loc := time.Local
	if timezone != "" {
		if l, err := time.LoadLocation(timezone); err == nil {
			loc = l
		}
	}
	return time.Now().In(loc).Format("20060102"), nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
