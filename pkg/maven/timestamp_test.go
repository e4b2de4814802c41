package maven

import (
	"testing"
	"time"
)

func TestParseTimestampMetadataForm(t *testing.T) {
	ts, err := ParseTimestamp("20210702144918")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts != 20210702144918 {
		t.Fatalf("expected 20210702144918, got %d", ts)
	}
}

func TestParseTimestampSnapshotFilenameForm(t *testing.T) {
	ts, err := ParseTimestamp("20210702.144917")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts != 20210702144917 {
		t.Fatalf("expected 20210702144917, got %d", ts)
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "yesterday", "2021-07-02", "2021070214491", "20210702..144917"} {
		if _, err := ParseTimestamp(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestFromTimeRoundTrip(t *testing.T) {
	at := time.Date(2021, 7, 2, 14, 49, 18, 0, time.UTC)
	ts := FromTime(at)
	if ts != 20210702144918 {
		t.Fatalf("expected 20210702144918, got %d", ts)
	}
	if !ts.Time().Equal(at) {
		t.Fatalf("round trip mismatch: %v != %v", ts.Time(), at)
	}
}

func TestFromTimeNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	ts := FromTime(time.Date(2021, 7, 2, 16, 49, 18, 0, loc))
	if ts != 20210702144918 {
		t.Fatalf("expected UTC-normalized 20210702144918, got %d", ts)
	}
}

func TestStaleThresholdIsOneEncodedDay(t *testing.T) {
	// The threshold is a raw integer gap, not a duration: one day within a
	// month is exactly 1000000 apart in the digit encoding.
	var a, b Timestamp = 20230101000000, 20230102000000
	if b-a != StaleThreshold {
		t.Fatalf("expected one encoded day, got %d", b-a)
	}
}

func TestMaxTimestamp(t *testing.T) {
	if MaxTimestamp(1, 2) != 2 || MaxTimestamp(2, 1) != 2 || MaxTimestamp(0, 0) != 0 {
		t.Fatalf("MaxTimestamp misbehaves")
	}
}

func TestTimestampString(t *testing.T) {
	if got := Timestamp(20210702144918).String(); got != "20210702144918" {
		t.Fatalf("unexpected string form %q", got)
	}
	if got := Timestamp(0).String(); got != "00000000000000" {
		t.Fatalf("zero should render zero-padded, got %q", got)
	}
}
