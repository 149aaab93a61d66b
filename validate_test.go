package voevent

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/tsawler/voevent/definitions"
	"github.com/tsawler/voevent/model"
)

func TestValid_Packets(t *testing.T) {
	tests := []struct {
		file string
		want bool
	}{
		{"SWIFT_bat_position_v2.0_example.xml", true},
		{"MOA_Lensing_Event_2015-BLG-0001.xml", true},
		{"Gaia16aac.xml", true},
		{"ASASSN_15lh.xml", true},
		{"springboro_observatory.xml", true},
		{"tt_timescale.xml", true},
		{"latin1_packet.xml", true},
		{"lightcurve_table.xml", true},
		{"bad_isotime.xml", false},
		{"no_namespace_packet.xml", false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			d := loadPacket(t, tt.file)
			if got := Valid(d); got != tt.want {
				t.Errorf("Valid = %v, want %v (%v)", got, tt.want, AssertValid(d))
			}
		})
	}
}

func TestValid_LeavesDocumentUntouched(t *testing.T) {
	d := loadPacket(t, "SWIFT_bat_position_v2.0_example.xml")
	before, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	if !Valid(d) {
		t.Fatalf("expected valid packet: %v", AssertValid(d))
	}

	after, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("validation changed the serialized document")
	}
	if d.Root().Tag() != "VOEvent" || d.Section("What") == nil {
		t.Error("validation changed the in-memory normalization")
	}
}

func TestAssertValid_Invalid(t *testing.T) {
	d := New("example.org/test", 1, RoleTest)
	d.Section("Who").SetChild("BadChild", "42")

	err := AssertValid(d)
	if err == nil {
		t.Fatal("expected a packet with an unknown Who child to be invalid")
	}
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Reason() == "" {
		t.Error("expected a reason")
	}
	if Valid(d) {
		t.Error("Valid disagrees with AssertValid")
	}
}

func TestValid_RecoversAfterFix(t *testing.T) {
	d := loadPacket(t, "SWIFT_bat_position_v2.0_example.xml")
	who := d.Section("Who")
	bad := who.SetChild("BadChild", "42")
	if Valid(d) {
		t.Fatal("expected an unknown Who child to be invalid")
	}
	who.Remove(bad)
	if !Valid(d) {
		t.Errorf("expected packet to be valid again: %v", AssertValid(d))
	}
}

func TestValid_BadISOTime(t *testing.T) {
	d := loadPacket(t, "lightcurve_table.xml")
	iso := d.Section("WhereWhen").Find("ObsDataLocation", "ObservationLocation", "AstroCoords", "Time", "TimeInstant", "ISOTime")
	if iso == nil {
		t.Fatal("fixture has no ISOTime")
	}
	iso.SetText("2016-13-45T99:00:00")
	if Valid(d) {
		t.Error("expected an out-of-range ISOTime to be invalid")
	}
}

func TestValid_BadRole(t *testing.T) {
	d := New("example.org/test", 1, "rumour")
	if Valid(d) {
		t.Error("expected an unknown role to be invalid")
	}
}

func TestValid_BadIVORN(t *testing.T) {
	d := New("noslash", 1, RoleTest)
	if Valid(d) {
		t.Error("expected an IVORN without authority/path to be invalid")
	}
}

type recordingValidator struct {
	got []byte
	err error
}

func (v *recordingValidator) Validate(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	v.got = data
	return v.err
}

func TestValidAgainst(t *testing.T) {
	d := New("example.org/test", 1, RoleTest)

	v := &recordingValidator{}
	if !ValidAgainst(v, d) {
		t.Fatal("expected accepting validator to report valid")
	}
	if !bytes.HasPrefix(v.got, []byte(`<?xml version="1.0" encoding="UTF-8"?>`)) {
		t.Errorf("validator did not receive a declaration: %.60s", v.got)
	}
	if !strings.Contains(string(v.got), "<voe:VOEvent") {
		t.Error("validator did not receive the prefixed root")
	}

	rejection := errors.New("nope")
	v = &recordingValidator{err: rejection}
	err := AssertValidAgainst(v, d)
	if !errors.Is(err, ErrInvalid) || !errors.Is(err, rejection) {
		t.Errorf("expected ErrInvalid wrapping the validator error, got %v", err)
	}
}

func TestValid_BuiltPacket(t *testing.T) {
	d := New("voevent.example.org/TEST", 100, RoleTest)

	// Sections are populated out of schema order on purpose.
	AddCitations(d, NewCitation("ivo://voevent.example.org/TEST#99", definitions.CiteSupersedes))
	AddWhy(d,
		Importance(0.5),
		Expires(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)),
		Inferences(NewInference(Probability(0.1), Relation("identified"), InferenceName("GRB121212A"))),
	)
	AddHow(d, Descriptions("Robotic telescope"), References(NewReference("http://example.org/how", Meaning("docs"))))
	SetAuthor(d, Author{ContactName: "A. Observer", Title: "Test alerts"})
	SetWho(d, time.Date(2020, 3, 4, 5, 6, 7, 890, time.UTC), "voevent.example.org/robot")
	if err := AddWhereWhen(d,
		model.Position2D{RA: 123.5, Dec: -45.25, Err: 0.1, Units: definitions.UnitDegrees, System: definitions.SkyUTCFK5Geo},
		time.Date(2020, 3, 4, 5, 0, 0, 500000000, time.UTC),
		definitions.ObservatoryGeoSurface,
	); err != nil {
		t.Fatal(err)
	}

	params := []*Element{
		Must(NewParam("mag", 17.5, Unit("mag"), UCD("phot.mag"))),
		Must(NewParam("flag", true)),
	}
	what := d.Section("What")
	what.Append(Must(NewParam("count", 3)))
	what.Append(NewGroup(params, GroupName("photometry")))

	if err := AssertValid(d); err != nil {
		data, _ := d.Bytes()
		t.Fatalf("built packet invalid: %v\n%s", err, data)
	}
}
