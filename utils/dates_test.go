package utils

import (
	"errors"
	"testing"
	"time"
)

func mustZone(t *testing.T, name string) *ShopZone {
	t.Helper()
	z, err := NewShopZone(name)
	if err != nil {
		t.Fatalf("load zone %s: %v", name, err)
	}
	return z
}

func TestDayStartUTC(t *testing.T) {
	z := mustZone(t, "America/Los_Angeles")

	tests := []struct {
		ymd       string
		wantStart time.Time
		wantNext  time.Time
	}{
		{"2025-01-15", time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC), time.Date(2025, 1, 16, 8, 0, 0, 0, time.UTC)},
		{"2025-07-01", time.Date(2025, 7, 1, 7, 0, 0, 0, time.UTC), time.Date(2025, 7, 2, 7, 0, 0, 0, time.UTC)},
		// DST starts: a 23 hour local day
		{"2025-03-09", time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC), time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)},
		// DST ends: a 25 hour local day
		{"2025-11-02", time.Date(2025, 11, 2, 7, 0, 0, 0, time.UTC), time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		start, err := z.DayStartUTC(tt.ymd)
		if err != nil {
			t.Fatalf("DayStartUTC(%s): %v", tt.ymd, err)
		}
		if !start.Equal(tt.wantStart) {
			t.Errorf("DayStartUTC(%s) = %v, want %v", tt.ymd, start, tt.wantStart)
		}
		next, err := z.NextDayStartUTC(tt.ymd)
		if err != nil {
			t.Fatalf("NextDayStartUTC(%s): %v", tt.ymd, err)
		}
		if !next.Equal(tt.wantNext) {
			t.Errorf("NextDayStartUTC(%s) = %v, want %v", tt.ymd, next, tt.wantNext)
		}
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	z := mustZone(t, "")
	for _, in := range []string{"", "2025-13-01", "01/15/2025", "2025-1-5"} {
		_, err := z.ParseDate(in)
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", in, err)
		}
	}
}

func TestNewShopZoneUnknown(t *testing.T) {
	_, err := NewShopZone("Nowhere/Special")
	if !errors.Is(err, ErrInvalidTimezone) {
		t.Fatalf("expected ErrInvalidTimezone, got %v", err)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		h, m    int
		wantErr bool
	}{
		{in: "12:00 AM", h: 0, m: 0},
		{in: "12:30 PM", h: 12, m: 30},
		{in: "1:05 PM", h: 13, m: 5},
		{in: "11:45 am", h: 11, m: 45},
		{in: "7:15PM", h: 19, m: 15},
		{in: "13:00 PM", wantErr: true},
		{in: "0:30 AM", wantErr: true},
		{in: "9:60 AM", wantErr: true},
		{in: "9 AM", wantErr: true},
		{in: "21:00", wantErr: true},
	}

	for _, tt := range tests {
		h, m, err := ParseClock(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidClock) {
				t.Errorf("ParseClock(%q) error = %v, want ErrInvalidClock", tt.in, err)
			}
			continue
		}
		if err != nil || h != tt.h || m != tt.m {
			t.Errorf("ParseClock(%q) = %d:%d, %v; want %d:%d", tt.in, h, m, err, tt.h, tt.m)
		}
	}
}

func TestClockToUTC(t *testing.T) {
	z := mustZone(t, "America/Los_Angeles")
	day, _ := z.ParseDate("2025-01-15")

	got, err := z.ClockToUTC(day, "11:30 PM")
	if err != nil {
		t.Fatalf("ClockToUTC: %v", err)
	}
	if want := time.Date(2025, 1, 16, 7, 30, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	// the calendar date is read in the shop zone, not in UTC
	utcEvening := time.Date(2025, 1, 16, 3, 0, 0, 0, time.UTC)
	got, _ = z.ClockToUTC(utcEvening, "9:00 AM")
	if want := time.Date(2025, 1, 15, 17, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if _, err := z.ClockToUTC(day, "noon"); !errors.Is(err, ErrInvalidClock) {
		t.Fatalf("expected ErrInvalidClock, got %v", err)
	}
}

func TestBucketStart(t *testing.T) {
	z := mustZone(t, "America/Los_Angeles")
	// 2025-01-15T23:30-08:00
	at := time.Date(2025, 1, 16, 7, 30, 0, 0, time.UTC)

	tests := []struct {
		g    Granularity
		want time.Time
	}{
		{GranularityDay, time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)},
		{GranularityWeek, time.Date(2025, 1, 13, 8, 0, 0, 0, time.UTC)},
		{GranularityMonth, time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got := z.BucketStart(at, tt.g)
		if !got.Equal(tt.want) {
			t.Errorf("BucketStart(%s) = %v, want %v", tt.g, got, tt.want)
		}
		local := got.In(z.Location())
		if local.Hour() != 0 || local.Minute() != 0 {
			t.Errorf("BucketStart(%s) is not local midnight: %v", tt.g, local)
		}
	}
}

func TestBucketStartAcrossDST(t *testing.T) {
	z := mustZone(t, "America/Los_Angeles")
	// Wednesday 2025-03-12 in PDT; its week began Monday 2025-03-10 PDT
	at := time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)
	if got, want := z.BucketStart(at, GranularityWeek), time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("week: got %v, want %v", got, want)
	}
	// March began in PST
	if got, want := z.BucketStart(at, GranularityMonth), time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("month: got %v, want %v", got, want)
	}
}

func TestParseGranularity(t *testing.T) {
	if g, err := ParseGranularity(""); err != nil || g != GranularityDay {
		t.Fatalf("empty granularity defaults to day, got %s %v", g, err)
	}
	if _, err := ParseGranularity("quarter"); err == nil {
		t.Fatalf("expected error for unknown granularity")
	}
}

func TestTruncateMinute(t *testing.T) {
	in := time.Date(2025, 1, 15, 10, 30, 59, 999_000_000, time.FixedZone("x", 3600))
	if got, want := TruncateMinute(in), time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	z := mustZone(t, "America/Los_Angeles")
	start := time.Date(2025, 3, 8, 0, 0, 0, 0, z.Location())
	end := time.Date(2025, 3, 9, 9, 0, 0, 0, z.Location())
	if got := DaysBetween(start, end); got != 1 {
		t.Fatalf("expected 1 day, got %d", got)
	}
}

func TestFormat(t *testing.T) {
	z := mustZone(t, "America/Los_Angeles")
	at := time.Date(2025, 1, 16, 7, 30, 0, 0, time.UTC)
	if got := z.Format(at, ClockLayout); got != "11:30 PM" {
		t.Fatalf("got %q", got)
	}
	if got := z.DateParam(at); got != "2025-01-15" {
		t.Fatalf("got %q", got)
	}
}
