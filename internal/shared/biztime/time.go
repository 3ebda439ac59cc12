// Package biztime centralizes time handling. All timestamps are stored and
// compared in UTC; JSON responses render Unix seconds so clients never see
// server-local offsets.
package biztime

import "time"

// Now returns the current time in UTC truncated to second precision,
// matching the storage granularity of every timestamp column.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// FromUnix converts a Unix-seconds value to a UTC time.
func FromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// ToUnix converts a time to Unix seconds. The zero time maps to 0.
func ToUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
