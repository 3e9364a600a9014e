package timezone

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimezone  = errors.New("invalid timezone")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// Wall-clock layouts accepted from clients, tried in order. Times are
// rendered back with RFC3339 offsets at whole-second precision.
var inputLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
}

const renderLayout = "2006-01-02T15:04:05-07:00"

// referenceDate is the fixed probe used by IsValid. Resolving it must
// succeed for a zone name to be accepted.
const referenceDate = "2024-01-01"

// ToUTC interprets a wall-clock timestamp as local time in the named IANA
// zone and returns the corresponding UTC instant.
func ToUTC(local string, zone string) (time.Time, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimezone, zone)
	}

	for _, layout := range inputLayouts {
		t, err := time.ParseInLocation(layout, local, loc)
		if err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, local)
}

// ToZoned returns the instant re-homed in the named zone. The result
// carries both the instant and the offset used to render it; it is for
// display only and is never written back to storage.
func ToZoned(instant time.Time, zone string) (time.Time, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimezone, zone)
	}
	return instant.In(loc), nil
}

// Format renders an instant as wall-clock time in the named zone,
// e.g. "2024-06-01T09:00:00+05:30".
func Format(instant time.Time, zone string) (string, error) {
	zoned, err := ToZoned(instant, zone)
	if err != nil {
		return "", err
	}
	return zoned.Format(renderLayout), nil
}

// IsValid reports whether the zone name resolves. It is a pure probe: each
// call constructs its own zone-bound time and never touches process-wide
// defaults.
func IsValid(zone string) bool {
	if zone == "" {
		return false
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return false
	}
	_, err = time.ParseInLocation("2006-01-02", referenceDate, loc)
	return err == nil
}
