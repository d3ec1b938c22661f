package schedule

import "time"

// TimeKey renders an absolute instant as the zero-padded 24-hour "HH:MM"
// wall-clock reading in the named IANA zone. Offset lookup goes through the
// zone database, so the same instant and zone always produce the same key,
// including across DST transitions.
//
// An unknown zone reports ok=false; callers treat that as "cannot compare"
// rather than an error.
func TimeKey(instant time.Time, zone string) (string, bool) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return "", false
	}

	return instant.In(loc).Format("15:04"), true
}
