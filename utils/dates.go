// utils/dates.go
package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

const (
	DefaultShopTimezone = "America/Los_Angeles"
	DateLayout          = "2006-01-02"
	ClockLayout         = "3:04 PM"
)

var (
	ErrInvalidDate     = errors.New("invalid date format")
	ErrInvalidClock    = errors.New("invalid time format")
	ErrInvalidTimezone = errors.New("invalid timezone")
)

// ParseError describes an input that could not be read as a date or clock time.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var clockPattern = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})\s*(AM|PM)$`)

// Granularity is the width of a revenue bucket.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case "", GranularityDay:
		return GranularityDay, nil
	case GranularityWeek, GranularityMonth:
		return Granularity(s), nil
	}
	return "", fmt.Errorf("unknown granularity %q", s)
}

// ShopZone converts between the shop's local calendar and UTC instants.
// Offsets are always resolved for the date in question, so DST transitions
// are handled by the zone database.
type ShopZone struct {
	loc *time.Location
	cal *now.Config
}

func NewShopZone(name string) (*ShopZone, error) {
	if name == "" {
		name = DefaultShopTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &ParseError{Value: name, Err: ErrInvalidTimezone}
	}
	return &ShopZone{
		loc: loc,
		cal: &now.Config{WeekStartDay: time.Monday, TimeLocation: loc},
	}, nil
}

func (z *ShopZone) Location() *time.Location {
	return z.loc
}

func (z *ShopZone) Name() string {
	return z.loc.String()
}

// ParseDate reads a YYYY-MM-DD calendar date as local midnight.
func (z *ShopZone) ParseDate(ymd string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(ymd), z.loc)
	if err != nil {
		return time.Time{}, &ParseError{Value: ymd, Err: ErrInvalidDate}
	}
	return d, nil
}

// DayStartUTC returns the UTC instant of 00:00 local time on ymd.
func (z *ShopZone) DayStartUTC(ymd string) (time.Time, error) {
	d, err := z.ParseDate(ymd)
	if err != nil {
		return time.Time{}, err
	}
	return z.cal.With(d).BeginningOfDay().UTC(), nil
}

// NextDayStartUTC returns the UTC instant of 00:00 local time on ymd + 1 day,
// the exclusive upper bound of that local day.
func (z *ShopZone) NextDayStartUTC(ymd string) (time.Time, error) {
	d, err := z.ParseDate(ymd)
	if err != nil {
		return time.Time{}, err
	}
	y, m, day := d.Date()
	return time.Date(y, m, day+1, 0, 0, 0, 0, z.loc).UTC(), nil
}

// ParseClock converts "h:mm AM|PM" into 24-hour hour and minute.
func ParseClock(clock string) (int, int, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(clock))
	if m == nil {
		return 0, 0, &ParseError{Value: clock, Err: ErrInvalidClock}
	}
	h, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if h < 1 || h > 12 || minute > 59 {
		return 0, 0, &ParseError{Value: clock, Err: ErrInvalidClock}
	}
	pm := strings.EqualFold(m[3], "PM")
	switch {
	case pm && h != 12:
		h += 12
	case !pm && h == 12:
		h = 0
	}
	return h, minute, nil
}

// ClockToUTC combines the local calendar date of date with a 12-hour clock
// string and returns the UTC instant.
func (z *ShopZone) ClockToUTC(date time.Time, clock string) (time.Time, error) {
	h, minute, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.In(z.loc).Date()
	return time.Date(y, m, d, h, minute, 0, 0, z.loc).UTC(), nil
}

// Format renders an instant in local time.
func (z *ShopZone) Format(t time.Time, layout string) string {
	return t.In(z.loc).Format(layout)
}

// DateParam returns the local calendar date of t as YYYY-MM-DD.
func (z *ShopZone) DateParam(t time.Time) string {
	return z.Format(t, DateLayout)
}

// BucketStart truncates t to the start of its local day, week (Monday) or
// month and returns that boundary as a UTC instant.
func (z *ShopZone) BucketStart(t time.Time, g Granularity) time.Time {
	local := z.cal.With(t.In(z.loc))
	switch g {
	case GranularityWeek:
		return local.BeginningOfWeek().UTC()
	case GranularityMonth:
		return local.BeginningOfMonth().UTC()
	default:
		return local.BeginningOfDay().UTC()
	}
}

// TruncateMinute drops seconds and sub-second jitter from an instant.
func TruncateMinute(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}

// DaysBetween counts calendar days from start to end, each read in its own
// location. DST days still count as one.
func DaysBetween(start, end time.Time) int {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	s := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}
