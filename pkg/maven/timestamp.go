package maven

import (
	"fmt"
	"regexp"
	"time"
)

// Timestamp is a Maven-style timestamp in YYYYMMDDHHMMSS integer form, as
// found in <lastUpdated> tags and deployed SNAPSHOT filenames. Later
// timestamps are numerically greater, and staleness is decided by raw
// integer subtraction. That subtraction is NOT elapsed time: the gap across
// a month or day boundary is wildly different from the true duration. The
// original tooling accepted this as close enough, so we keep the behavior
// rather than silently changing which components get flagged.
type Timestamp int64

// StaleThreshold is the maximum raw Timestamp difference between the last
// snapshot deploy and the last vetted time before a component is considered
// to need a release. 1000000 is one day in the digit encoding.
const StaleThreshold Timestamp = 1000000

var tsPattern = regexp.MustCompile(`^(\d{4})(\d\d)(\d\d)\.?(\d\d)(\d\d)(\d\d)$`)

// ParseTimestamp converts Maven timestamp strings into a Timestamp.
//
// Valid forms:
//   - 20210702144918 (seen in <lastUpdated> in maven-metadata.xml)
//   - 20210702.144917 (seen in deployed SNAPSHOT filenames)
func ParseTimestamp(s string) (Timestamp, error) {
	m := tsPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid timestamp: %q", s)
	}
	var ts Timestamp
	for _, group := range m[1:] {
		for _, c := range group {
			ts = ts*10 + Timestamp(c-'0')
		}
	}
	return ts, nil
}

// FromTime converts a wall-clock time to a Timestamp. Times are normalized
// to UTC so that HTTP Last-Modified headers and metadata tags agree.
func FromTime(t time.Time) Timestamp {
	t = t.UTC()
	return Timestamp(t.Year())*1e10 +
		Timestamp(t.Month())*1e8 +
		Timestamp(t.Day())*1e6 +
		Timestamp(t.Hour())*1e4 +
		Timestamp(t.Minute())*1e2 +
		Timestamp(t.Second())
}

// Time converts back to a wall-clock time. Only valid for nonzero timestamps.
func (ts Timestamp) Time() time.Time {
	n := int64(ts)
	sec := int(n % 100)
	min := int(n / 1e2 % 100)
	hour := int(n / 1e4 % 100)
	day := int(n / 1e6 % 100)
	month := time.Month(n / 1e8 % 100)
	year := int(n / 1e10)
	return time.Date(year, month, day, hour, min, sec, 0, time.UTC)
}

// IsZero reports whether the timestamp is the absent/unknown sentinel.
func (ts Timestamp) IsZero() bool {
	return ts == 0
}

func (ts Timestamp) String() string {
	return fmt.Sprintf("%014d", int64(ts))
}

// MaxTimestamp returns the later of two timestamps.
func MaxTimestamp(a, b Timestamp) Timestamp {
	if a > b {
		return a
	}
	return b
}
