// Package timescale converts instants between the astronomical time scales
// that appear in VOEvent coordinate systems: UTC, TAI, TT and TDB.
//
// Go's time.Time has no notion of a time scale, so values in this package
// carry the clock reading of the named scale in the UTC location. For
// example the TT reading of the UTC instant 2016-01-01T00:00:00Z is returned
// as 2016-01-01T00:01:08.184Z.
//
// UTC conversions use the IERS leap-second table and are defined from
// 1972-01-01 onwards. TDB is computed from TT with the two leading periodic
// terms, which is accurate to a few tens of microseconds.
package timescale

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	// ErrOutOfRange is returned for instants before the leap-second era.
	ErrOutOfRange = errors.New("timescale: instant outside leap-second table")
	// ErrBadTimestamp is returned by ParseISO for unrecognised input.
	ErrBadTimestamp = errors.New("timescale: unrecognised ISO-8601 timestamp")
)

// TTMinusTAI is the constant offset between Terrestrial Time and TAI.
const TTMinusTAI = 32184 * time.Millisecond

// j2000 is the Julian date of the J2000.0 epoch.
const j2000 = 2451545.0

// unixEpochJD is the Julian date of 1970-01-01T00:00:00.
const unixEpochJD = 2440587.5

type leapSecond struct {
	from   time.Time // UTC instant from which offset applies
	offset int       // TAI-UTC in seconds
}

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// leapSeconds is TAI-UTC since the introduction of integral leap seconds.
// TODO: extend when IERS Bulletin C announces the next leap second.
var leapSeconds = []leapSecond{
	{utcDate(1972, time.January, 1), 10},
	{utcDate(1972, time.July, 1), 11},
	{utcDate(1973, time.January, 1), 12},
	{utcDate(1974, time.January, 1), 13},
	{utcDate(1975, time.January, 1), 14},
	{utcDate(1976, time.January, 1), 15},
	{utcDate(1977, time.January, 1), 16},
	{utcDate(1978, time.January, 1), 17},
	{utcDate(1979, time.January, 1), 18},
	{utcDate(1980, time.January, 1), 19},
	{utcDate(1981, time.July, 1), 20},
	{utcDate(1982, time.July, 1), 21},
	{utcDate(1983, time.July, 1), 22},
	{utcDate(1985, time.July, 1), 23},
	{utcDate(1988, time.January, 1), 24},
	{utcDate(1990, time.January, 1), 25},
	{utcDate(1991, time.January, 1), 26},
	{utcDate(1992, time.July, 1), 27},
	{utcDate(1993, time.July, 1), 28},
	{utcDate(1994, time.July, 1), 29},
	{utcDate(1996, time.January, 1), 30},
	{utcDate(1997, time.July, 1), 31},
	{utcDate(1999, time.January, 1), 32},
	{utcDate(2006, time.January, 1), 33},
	{utcDate(2009, time.January, 1), 34},
	{utcDate(2012, time.July, 1), 35},
	{utcDate(2015, time.July, 1), 36},
	{utcDate(2017, time.January, 1), 37},
}

// TAIMinusUTC returns TAI-UTC, in whole seconds, at the UTC instant t.
func TAIMinusUTC(t time.Time) (int, error) {
	t = t.UTC()
	if t.Before(leapSeconds[0].from) {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, t.Format(time.RFC3339))
	}
	offset := leapSeconds[0].offset
	for _, ls := range leapSeconds {
		if t.Before(ls.from) {
			break
		}
		offset = ls.offset
	}
	return offset, nil
}

// UTCToTAI converts a UTC instant to a TAI reading.
func UTCToTAI(utc time.Time) (time.Time, error) {
	offset, err := TAIMinusUTC(utc)
	if err != nil {
		return time.Time{}, err
	}
	return utc.UTC().Add(time.Duration(offset) * time.Second), nil
}

// TAIToUTC converts a TAI reading to a UTC instant.
func TAIToUTC(tai time.Time) (time.Time, error) {
	tai = tai.UTC()
	for i := len(leapSeconds) - 1; i >= 0; i-- {
		ls := leapSeconds[i]
		shift := time.Duration(ls.offset) * time.Second
		if !tai.Before(ls.from.Add(shift)) {
			return tai.Add(-shift), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: TAI %s", ErrOutOfRange, tai.Format(time.RFC3339))
}

// TAIToTT converts a TAI reading to a TT reading.
func TAIToTT(tai time.Time) time.Time {
	return tai.UTC().Add(TTMinusTAI)
}

// TTToTAI converts a TT reading to a TAI reading.
func TTToTAI(tt time.Time) time.Time {
	return tt.UTC().Add(-TTMinusTAI)
}

// UTCToTT converts a UTC instant to a TT reading.
func UTCToTT(utc time.Time) (time.Time, error) {
	tai, err := UTCToTAI(utc)
	if err != nil {
		return time.Time{}, err
	}
	return TAIToTT(tai), nil
}

// TTToUTC converts a TT reading to a UTC instant.
func TTToUTC(tt time.Time) (time.Time, error) {
	return TAIToUTC(TTToTAI(tt))
}

// TTToTDB converts a TT reading to a TDB reading.
func TTToTDB(tt time.Time) time.Time {
	tt = tt.UTC()
	return tt.Add(seconds(tdbMinusTT(tt)))
}

// TDBToTT converts a TDB reading to a TT reading. TDB-TT varies by at most
// a few milliseconds per year, so evaluating it at the TDB reading is exact
// to well below a microsecond.
func TDBToTT(tdb time.Time) time.Time {
	tdb = tdb.UTC()
	return tdb.Add(-seconds(tdbMinusTT(tdb)))
}

// TDBToUTC converts a TDB (Barycentric Dynamical Time) reading to UTC.
func TDBToUTC(tdb time.Time) (time.Time, error) {
	return TTToUTC(TDBToTT(tdb))
}

// UTCToTDB converts a UTC instant to a TDB reading.
func UTCToTDB(utc time.Time) (time.Time, error) {
	tt, err := UTCToTT(utc)
	if err != nil {
		return time.Time{}, err
	}
	return TTToTDB(tt), nil
}

// tdbMinusTT returns TDB-TT in seconds (USNO Circular 179, eq. 2.6).
func tdbMinusTT(tt time.Time) float64 {
	g := (357.53 + 0.98560028*(julianDate(tt)-j2000)) * math.Pi / 180
	return 0.001657*math.Sin(g) + 0.000014*math.Sin(2*g)
}

func julianDate(t time.Time) float64 {
	return float64(t.UnixNano())/float64(24*time.Hour) + unixEpochJD
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// isoLayouts are tried in order by ParseISO. Fractional seconds are accepted
// by time.Parse after the seconds field even when the layout omits them.
var isoLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseISO parses an ISO-8601 timestamp as found in VOEvent ISOTime and
// Date elements. A timestamp without a zone designator is read as UTC.
func ParseISO(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
}
