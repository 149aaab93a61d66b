package voevent

import (
	"fmt"
	"time"

	"github.com/tsawler/voevent/definitions"
	"github.com/tsawler/voevent/model"
	"github.com/tsawler/voevent/schema"
)

// New returns a minimal packet identified by "ivo://"+stream+"#"+streamID
// with the given role. The packet has empty What and WhereWhen sections and
// a Who section holding a Description that credits this library. Provided
// stream has the "authority/path" form required of an IVORN, the result is
// already schema-valid.
//
// streamID is rendered with fmt.Sprint, so both strings and numbers work.
func New(stream string, streamID any, role string) *Document {
	d, err := Parse(schema.Skeleton())
	if err != nil {
		panic(fmt.Sprintf("voevent: embedded skeleton is unusable: %v", err))
	}
	root := d.Root()
	root.SetAttribute("ivorn", "ivo://"+stream+"#"+fmt.Sprint(streamID))
	root.SetAttribute("role", role)
	who := root.ensure("Who")
	root.ensure("What")
	root.ensure("WhereWhen")
	who.SetChild("Description", fmt.Sprintf(
		"VOEvent created with voevent, version %s. See https://github.com/tsawler/voevent for details.",
		LibraryVersion))
	return d
}

// SetWho sets the AuthorIVORN and Date of the Who section, creating either
// as needed. authorIVORN is given without its "ivo://" scheme. A zero date
// or an empty authorIVORN leaves that field untouched. Dates are written to
// whole-second precision with their UTC offset.
func SetWho(d *Document, date time.Time, authorIVORN string) {
	who := d.Root().ensure("Who")
	if authorIVORN != "" {
		who.SetChild("AuthorIVORN", "ivo://"+authorIVORN)
	}
	if !date.IsZero() {
		who.SetChild("Date", isoformat(truncateToSecond(date), true))
	}
}

// Author holds the contact details written by SetAuthor. Empty fields are
// skipped.
type Author struct {
	Title        string
	ShortName    string
	LogoURL      string
	ContactName  string
	ContactEmail string
	ContactPhone string
	Contributor  string
}

// SetAuthor fills Who/Author with the non-empty fields of a, replacing the
// text of fields already present and keeping the rest.
func SetAuthor(d *Document, a Author) {
	author := d.Root().ensure("Who").ensure("Author")
	fields := []struct{ tag, value string }{
		{"title", a.Title},
		{"shortName", a.ShortName},
		{"logoURL", a.LogoURL},
		{"contactName", a.ContactName},
		{"contactEmail", a.ContactEmail},
		{"contactPhone", a.ContactPhone},
		{"contributor", a.Contributor},
	}
	for _, f := range fields {
		if f.value != "" {
			author.SetChild(f.tag, f.value)
		}
	}
}

// AddWhereWhen appends an ObsDataLocation describing where and when the
// event was observed. observatoryLocation is the observatory id, such as
// definitions.ObservatoryGeoSurface. obsTime is converted to UTC.
//
// Each call appends a new ObsDataLocation; existing ones are kept.
func AddWhereWhen(d *Document, coords model.Position, obsTime time.Time, observatoryLocation string) error {
	if coords == nil {
		return fmt.Errorf("%w: nil position", ErrUnsupportedCoords)
	}
	switch coords.(type) {
	case model.Position2D, model.Position3D:
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedCoords, coords)
	}

	obs := NewElement("ObsDataLocation")
	obs.appendNew("ObservatoryLocation").SetAttribute("id", observatoryLocation)
	loc := obs.appendNew("ObservationLocation")
	loc.appendNew("AstroCoordSystem").SetAttribute("id", coords.CoordSystem())
	ac := loc.appendNew("AstroCoords")
	ac.SetAttribute("coord_system_id", coords.CoordSystem())

	t := ac.appendNew("Time")
	t.SetAttribute("unit", definitions.UnitSeconds)
	t.appendNew("TimeInstant").appendNew("ISOTime").SetText(isoformat(obsTime.UTC(), false))

	switch p := coords.(type) {
	case model.Position2D:
		pos := ac.appendNew("Position2D")
		pos.SetAttribute("unit", p.Units)
		pos.appendNew("Name1").SetText("RA")
		pos.appendNew("Name2").SetText("Dec")
		v := pos.appendNew("Value2")
		v.appendNew("C1").SetText(formatFloat(p.RA, 64))
		v.appendNew("C2").SetText(formatFloat(p.Dec, 64))
		pos.appendNew("Error2Radius").SetText(formatFloat(p.Err, 64))
	case model.Position3D:
		pos := ac.appendNew("Position3D")
		pos.SetAttribute("unit", p.Units)
		pos.appendNew("Name1").SetText("LONG")
		pos.appendNew("Name2").SetText("LAT")
		pos.appendNew("Name3").SetText("ELEV")
		v := pos.appendNew("Value3")
		v.appendNew("C1").SetText(formatFloat(p.Long, 64))
		v.appendNew("C2").SetText(formatFloat(p.Lat, 64))
		v.appendNew("C3").SetText(formatFloat(p.Elev, 64))
	}

	d.Root().ensure("WhereWhen").insertOrdered(obs)
	return nil
}

type howConfig struct {
	descriptions []string
	references   []*Element
}

// HowOption configures AddHow.
type HowOption func(*howConfig)

// Descriptions adds a Description child for each string.
func Descriptions(descriptions ...string) HowOption {
	return func(c *howConfig) { c.descriptions = append(c.descriptions, descriptions...) }
}

// References adds Reference elements built with NewReference.
func References(refs ...*Element) HowOption {
	return func(c *howConfig) { c.references = append(c.references, refs...) }
}

// AddHow appends descriptions and then references to the How section,
// creating it if needed.
func AddHow(d *Document, opts ...HowOption) {
	var cfg howConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	how := d.Root().ensure("How")
	for _, text := range cfg.descriptions {
		how.appendNew("Description").SetText(text)
	}
	how.Append(cfg.references...)
}

type whyConfig struct {
	importance *float64
	expires    time.Time
	inferences []*Element
}

// WhyOption configures AddWhy.
type WhyOption func(*whyConfig)

// Importance sets the importance attribute, a value in [0, 1].
func Importance(importance float64) WhyOption {
	return func(c *whyConfig) { c.importance = &importance }
}

// Expires sets the expires attribute. It is written to whole-second
// precision.
func Expires(t time.Time) WhyOption {
	return func(c *whyConfig) { c.expires = t }
}

// Inferences adds Inference elements built with NewInference.
func Inferences(inferences ...*Element) WhyOption {
	return func(c *whyConfig) { c.inferences = append(c.inferences, inferences...) }
}

// AddWhy updates the Why section, creating it if needed. Importance and
// expiry overwrite earlier values; inferences are appended.
func AddWhy(d *Document, opts ...WhyOption) {
	var cfg whyConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	why := d.Root().ensure("Why")
	if cfg.importance != nil {
		why.SetAttribute("importance", formatFloat(*cfg.importance, 64))
	}
	if !cfg.expires.IsZero() {
		why.SetAttribute("expires", isoformat(truncateToSecond(cfg.expires), true))
	}
	why.Append(cfg.inferences...)
}

// AddCitations appends EventIVORN elements built with NewCitation to the
// Citations section. Calling it with no citations does nothing, since an
// empty Citations section is not valid.
func AddCitations(d *Document, citations ...*Element) {
	if len(citations) == 0 {
		return
	}
	c := d.Root().ensure("Citations")
	for _, cite := range citations {
		if cite != nil {
			c.insertOrdered(cite)
		}
	}
}
