package voevent

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/tsawler/voevent/definitions"
	"github.com/tsawler/voevent/model"
	"github.com/tsawler/voevent/timescale"
)

// EventPosition returns the sky position recorded in the index'th
// ObsDataLocation of the WhereWhen section (0 for the first).
//
// Axis names are optional in packets; when Name1 or Name2 is present it
// must read RA or Dec respectively, otherwise ErrUnsupportedCoords is
// returned. A missing Error2Radius reads as zero.
func EventPosition(d *Document, index int) (model.Position2D, error) {
	loc, err := observationLocation(d, index)
	if err != nil {
		return model.Position2D{}, err
	}
	pos, err := require(loc, "AstroCoords", "Position2D")
	if err != nil {
		return model.Position2D{}, err
	}
	if err := checkAxisNames(pos, "RA", "Dec"); err != nil {
		return model.Position2D{}, err
	}

	var p model.Position2D
	if p.RA, err = floatAt(pos, "Value2", "C1"); err != nil {
		return model.Position2D{}, err
	}
	if p.Dec, err = floatAt(pos, "Value2", "C2"); err != nil {
		return model.Position2D{}, err
	}
	if pos.Child("Error2Radius") != nil {
		if p.Err, err = floatAt(pos, "Error2Radius"); err != nil {
			return model.Position2D{}, err
		}
	}
	p.Units, _ = pos.Attribute("unit")
	p.System = coordSystemID(loc)
	return p, nil
}

// EventPosition3D returns the three-component position recorded in the
// index'th ObsDataLocation. Axis names, when present, must read LONG, LAT
// and ELEV.
func EventPosition3D(d *Document, index int) (model.Position3D, error) {
	loc, err := observationLocation(d, index)
	if err != nil {
		return model.Position3D{}, err
	}
	pos, err := require(loc, "AstroCoords", "Position3D")
	if err != nil {
		return model.Position3D{}, err
	}
	if err := checkAxisNames(pos, "LONG", "LAT", "ELEV"); err != nil {
		return model.Position3D{}, err
	}

	var p model.Position3D
	if p.Long, err = floatAt(pos, "Value3", "C1"); err != nil {
		return model.Position3D{}, err
	}
	if p.Lat, err = floatAt(pos, "Value3", "C2"); err != nil {
		return model.Position3D{}, err
	}
	if p.Elev, err = floatAt(pos, "Value3", "C3"); err != nil {
		return model.Position3D{}, err
	}
	p.Units, _ = pos.Attribute("unit")
	p.System = coordSystemID(loc)
	return p, nil
}

// EventTimeUTC returns the observation time of the index'th ObsDataLocation
// converted to UTC. The boolean is false, with a nil error, when the packet
// records no ISO observation time at that index: WhereWhen, the
// ObsDataLocation, its ObservationLocation, the Time or the ISOTime may
// each be absent.
//
// The timescale is taken from the prefix of the coordinate system id.
// UTC and TDB are supported; TT and GPS return ErrTimescaleNotImplemented
// and anything else ErrUnknownTimescale.
func EventTimeUTC(d *Document, index int) (time.Time, bool, error) {
	ww := d.Section("WhereWhen")
	if ww == nil {
		return time.Time{}, false, nil
	}
	obs := ww.Children("ObsDataLocation")
	if index < 0 || index >= len(obs) {
		return time.Time{}, false, nil
	}
	loc := obs[index].Child("ObservationLocation")
	if loc == nil {
		return time.Time{}, false, nil
	}
	tm := loc.Find("AstroCoords", "Time")
	if tm == nil {
		return time.Time{}, false, nil
	}

	system := coordSystemID(loc)
	scale, _, _ := strings.Cut(system, "-")
	switch scale {
	case definitions.TimeScaleUTC, definitions.TimeScaleTDB:
	case definitions.TimeScaleTT, definitions.TimeScaleGPS:
		return time.Time{}, false, fmt.Errorf("%w: %s", ErrTimescaleNotImplemented, system)
	default:
		return time.Time{}, false, fmt.Errorf("%w: %q", ErrUnknownTimescale, system)
	}

	iso := tm.Find("TimeInstant", "ISOTime")
	if iso == nil {
		if tm.Find("TimeInstant", "TimeOffset") != nil {
			return time.Time{}, false, fmt.Errorf("%w: TimeOffset representation", ErrTimescaleNotImplemented)
		}
		return time.Time{}, false, nil
	}
	t, err := timescale.ParseISO(iso.Text())
	if err != nil {
		return time.Time{}, false, err
	}
	if scale == definitions.TimeScaleTDB {
		if t, err = timescale.TDBToUTC(t); err != nil {
			return time.Time{}, false, err
		}
	}
	return t, true, nil
}

// PullAstroCoords returns the sky position of the index'th ObsDataLocation.
//
// Deprecated: use EventPosition.
func PullAstroCoords(d *Document, index int) (model.Position2D, error) {
	return EventPosition(d, index)
}

// PullISOTime returns the observation time of the index'th ObsDataLocation
// in UTC.
//
// Deprecated: use EventTimeUTC.
func PullISOTime(d *Document, index int) (time.Time, bool, error) {
	return EventTimeUTC(d, index)
}

// ToplevelParams returns the Params that are direct children of What, keyed
// by name attribute. Each value holds all attributes of its Param.
func ToplevelParams(d *Document) *model.Multimap[model.Attrs] {
	return paramMap(d.Section("What"))
}

// GroupedParams returns the Groups of the What section keyed by name, each
// mapping to its own Params keyed by name. Groups without Params map to an
// empty Multimap.
func GroupedParams(d *Document) *model.Multimap[*model.Multimap[model.Attrs]] {
	groups := model.NewMultimap[*model.Multimap[model.Attrs]]()
	what := d.Section("What")
	if what == nil {
		return groups
	}
	for _, g := range what.Children("Group") {
		groups.Add(nameKey(g), paramMap(g))
	}
	return groups
}

// PullParams returns the attributes of What's Params as a two-level map.
// Top-level Params sit under the "" key, and each Group's Params under the
// group name; unnamed Params are keyed "".
//
// Later entries silently replace earlier ones with the same key, so an
// unnamed Group replaces the top-level Params.
//
// Deprecated: use ToplevelParams and GroupedParams, which keep every entry.
func PullParams(d *Document) map[string]map[string]model.Attrs {
	result := make(map[string]map[string]model.Attrs)
	what := d.Section("What")
	if what == nil || len(what.Children("")) == 0 {
		return result
	}
	top := make(map[string]model.Attrs)
	result[""] = top
	for _, p := range what.Children("Param") {
		name, _ := p.Attribute("name")
		top[name] = p.Attributes()
	}
	for _, g := range what.Children("Group") {
		params := make(map[string]model.Attrs)
		name, _ := g.Attribute("name")
		result[name] = params
		for _, p := range g.Children("Param") {
			pname, _ := p.Attribute("name")
			params[pname] = p.Attributes()
		}
	}
	return result
}

// PrettyString returns an indented XML rendering of e and its subtree.
func PrettyString(e *Element) string {
	doc := etree.NewDocument()
	doc.SetRoot(e.e.Copy())
	doc.Indent(2)
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}

func paramMap(parent *Element) *model.Multimap[model.Attrs] {
	params := model.NewMultimap[model.Attrs]()
	if parent == nil {
		return params
	}
	for _, p := range parent.Children("Param") {
		params.Add(nameKey(p), p.Attributes())
	}
	return params
}

func nameKey(e *Element) model.Key {
	if name, ok := e.Attribute("name"); ok {
		return model.Named(name)
	}
	return model.Unnamed
}

func observationLocation(d *Document, index int) (*Element, error) {
	ww := d.Section("WhereWhen")
	if ww == nil {
		return nil, fmt.Errorf("%w: WhereWhen", ErrMissingElement)
	}
	obs := ww.Children("ObsDataLocation")
	if index < 0 || index >= len(obs) {
		return nil, fmt.Errorf("%w: WhereWhen/ObsDataLocation[%d]", ErrMissingElement, index)
	}
	return require(obs[index], "ObservationLocation")
}

// require descends path from e, reporting the first missing step.
func require(e *Element, path ...string) (*Element, error) {
	cur := e
	for i, name := range path {
		next := cur.Child(name)
		if next == nil {
			return nil, fmt.Errorf("%w: %s/%s", ErrMissingElement, e.Tag(), strings.Join(path[:i+1], "/"))
		}
		cur = next
	}
	return cur, nil
}

func floatAt(e *Element, path ...string) (float64, error) {
	leaf, err := require(e, path...)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(leaf.Text()), 64)
	if err != nil {
		return 0, fmt.Errorf("%s/%s: %w", e.Tag(), strings.Join(path, "/"), err)
	}
	return f, nil
}

// checkAxisNames verifies the Name1..NameN annotations that are present.
func checkAxisNames(pos *Element, want ...string) error {
	for i, w := range want {
		tag := "Name" + strconv.Itoa(i+1)
		if n := pos.Child(tag); n != nil {
			if got := strings.TrimSpace(n.Text()); got != w {
				return fmt.Errorf("%w: %s is %q, want %q", ErrUnsupportedCoords, tag, got, w)
			}
		}
	}
	return nil
}

// coordSystemID prefers the AstroCoordSystem id and falls back to the
// coord_system_id of AstroCoords.
func coordSystemID(loc *Element) string {
	if sys := loc.Child("AstroCoordSystem"); sys != nil {
		if id, ok := sys.Attribute("id"); ok {
			return id
		}
	}
	if ac := loc.Child("AstroCoords"); ac != nil {
		id, _ := ac.Attribute("coord_system_id")
		return id
	}
	return ""
}
