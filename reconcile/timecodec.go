package reconcile

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SecondsPerDay is one service day in seconds.
const SecondsPerDay = 86400

// TimeToSeconds parses a GTFS "HH:MM:SS" string into seconds since the start
// of the service day. HH is not clamped, so trips past midnight yield values
// of 86400 and above.
func TimeToSeconds(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, &InvalidTimeFormatError{Value: s}
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || h < 0 {
		return 0, &InvalidTimeFormatError{Value: s}
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, &InvalidTimeFormatError{Value: s}
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, &InvalidTimeFormatError{Value: s}
	}
	return h*3600 + m*60 + sec, nil
}

// SecondsToTime renders seconds-since-service-day-start as "HH:MM:SS".
// Negative input clamps to zero. Values past 24h are not wrapped; a caller
// wanting a wall-clock display applies the modulo itself.
func SecondsToTime(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600, sec%3600/60, sec%60)
}

// TimestampToTimeOfDay renders a Unix instant as a 24-hour "HH:MM:SS" string
// in the named IANA zone. Conversion goes through the timezone database, so
// it stays correct across DST transitions.
func TimestampToTimeOfDay(unixSeconds int64, timezone string) (string, error) {
	loc, err := loadZone(timezone)
	if err != nil {
		return "", err
	}
	return time.Unix(unixSeconds, 0).In(loc).Format("15:04:05"), nil
}

func loadZone(timezone string) (*time.Location, error) {
	if timezone == "" {
		return nil, &MissingTimezoneError{}
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, &MissingTimezoneError{Zone: timezone}
	}
	return loc, nil
}
