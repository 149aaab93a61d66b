package timescale

import (
	"errors"
	"testing"
	"time"
)

func within(t *testing.T, got, want time.Time, tol time.Duration) {
	t.Helper()
	d := got.Sub(want)
	if d < 0 {
		d = -d
	}
	if d > tol {
		t.Errorf("got %s, want %s (±%s), off by %s", got.Format(time.RFC3339Nano), want.Format(time.RFC3339Nano), tol, d)
	}
}

func TestTAIMinusUTC(t *testing.T) {
	tests := []struct {
		name string
		utc  time.Time
		want int
	}{
		{"start of table", utcDate(1972, time.January, 1), 10},
		{"mid 1972", time.Date(1972, time.March, 1, 0, 0, 0, 0, time.UTC), 10},
		{"before 2017 leap", time.Date(2016, time.December, 31, 23, 59, 59, 0, time.UTC), 36},
		{"after 2017 leap", utcDate(2017, time.January, 1), 37},
		{"recent", time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC), 37},
		{"non-UTC location", time.Date(2015, time.July, 1, 2, 0, 0, 0, time.FixedZone("CEST", 2*3600)), 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TAIMinusUTC(tt.utc)
			if err != nil {
				t.Fatalf("TAIMinusUTC() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("TAIMinusUTC() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTAIMinusUTC_OutOfRange(t *testing.T) {
	_, err := TAIMinusUTC(utcDate(1965, time.January, 1))
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	_, err = TAIToUTC(utcDate(1971, time.December, 31))
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestUTCToTAI_RoundTrip(t *testing.T) {
	instants := []time.Time{
		utcDate(1980, time.June, 1),
		time.Date(2016, time.January, 2, 2, 23, 6, 930000000, time.UTC),
		time.Date(2016, time.December, 31, 23, 59, 59, 0, time.UTC),
		utcDate(2017, time.January, 1),
	}

	for _, utc := range instants {
		tai, err := UTCToTAI(utc)
		if err != nil {
			t.Fatalf("UTCToTAI(%s) error: %v", utc, err)
		}
		back, err := TAIToUTC(tai)
		if err != nil {
			t.Fatalf("TAIToUTC(%s) error: %v", tai, err)
		}
		if !back.Equal(utc) {
			t.Errorf("round trip of %s gave %s", utc, back)
		}
	}
}

func TestUTCToTT(t *testing.T) {
	utc := utcDate(2016, time.January, 1)
	tt, err := UTCToTT(utc)
	if err != nil {
		t.Fatalf("UTCToTT() error: %v", err)
	}
	want := utc.Add(36*time.Second + TTMinusTAI)
	if !tt.Equal(want) {
		t.Errorf("UTCToTT() = %s, want %s", tt, want)
	}

	back, err := TTToUTC(tt)
	if err != nil {
		t.Fatalf("TTToUTC() error: %v", err)
	}
	if !back.Equal(utc) {
		t.Errorf("TTToUTC() = %s, want %s", back, utc)
	}
}

func TestTDBToUTC(t *testing.T) {
	// In 2016 TAI-UTC is 36 s, so TDB-UTC is 68.184 s plus a periodic
	// term of at most 1.7 ms.
	tdb := time.Date(2016, time.January, 2, 2, 23, 6, 930000000, time.UTC)
	utc, err := TDBToUTC(tdb)
	if err != nil {
		t.Fatalf("TDBToUTC() error: %v", err)
	}
	within(t, utc, tdb.Add(-68184*time.Millisecond), 2*time.Millisecond)

	if utc.Equal(tdb) {
		t.Error("expected TDB conversion to change the instant")
	}
}

func TestTDB_RoundTrip(t *testing.T) {
	utc := time.Date(2021, time.March, 15, 6, 30, 0, 0, time.UTC)
	tdb, err := UTCToTDB(utc)
	if err != nil {
		t.Fatalf("UTCToTDB() error: %v", err)
	}
	back, err := TDBToUTC(tdb)
	if err != nil {
		t.Fatalf("TDBToUTC() error: %v", err)
	}
	within(t, back, utc, time.Microsecond)
}

func TestTDBMinusTT_Bounded(t *testing.T) {
	start := utcDate(2000, time.January, 1)
	for day := 0; day < 366; day += 7 {
		tt := start.AddDate(0, 0, day)
		d := tdbMinusTT(tt)
		if d > 0.0017 || d < -0.0017 {
			t.Errorf("TDB-TT at %s = %g s, outside ±1.7 ms", tt.Format("2006-01-02"), d)
		}
	}
}

func TestParseISO(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2012-09-20T22:54:20.64", time.Date(2012, time.September, 20, 22, 54, 20, 640000000, time.UTC)},
		{"2016-09-25T11:16:48+00:00", time.Date(2016, time.September, 25, 11, 16, 48, 0, time.UTC)},
		{"2016-09-25T11:16:48Z", time.Date(2016, time.September, 25, 11, 16, 48, 0, time.UTC)},
		{"2016-09-25T13:16:48+02:00", time.Date(2016, time.September, 25, 11, 16, 48, 0, time.UTC)},
		{"2016-09-25T11:16:48+0000", time.Date(2016, time.September, 25, 11, 16, 48, 0, time.UTC)},
		{"2016-09-25 11:16:48", time.Date(2016, time.September, 25, 11, 16, 48, 0, time.UTC)},
		{"  2015-07-10T14:50:54  ", time.Date(2015, time.July, 10, 14, 50, 54, 0, time.UTC)},
		{"2015-07-10", utcDate(2015, time.July, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseISO(tt.in)
			if err != nil {
				t.Fatalf("ParseISO(%q) error: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseISO(%q) = %s, want %s", tt.in, got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("ParseISO(%q) location = %s, want UTC", tt.in, got.Location())
			}
		})
	}
}

func TestParseISO_Invalid(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2016-13-45T00:00:00"} {
		if _, err := ParseISO(in); !errors.Is(err, ErrBadTimestamp) {
			t.Errorf("ParseISO(%q) error = %v, want ErrBadTimestamp", in, err)
		}
	}
}
