package model

import "time"

// TimeLayout is the wire format for interval timestamps.
// Minute resolution, no seconds, no zone.
const TimeLayout = "2006-01-02 15:04"

// FormatTime renders a timestamp in the wire format.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseTime parses a wire-format timestamp. The input must match the
// layout exactly; anything else is an error.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}
