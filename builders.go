package voevent

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tsawler/voevent/definitions"
)

// optional is a string setting that distinguishes "unset" from "".
type optional struct {
	value string
	set   bool
}

func some(v string) optional { return optional{value: v, set: true} }

func (o optional) apply(el *Element, attr string) {
	if o.set {
		el.SetAttribute(attr, o.value)
	}
}

type paramConfig struct {
	unit, ucd, dataType, utype optional
	noAutoConvert              bool
}

// ParamOption configures NewParam.
type ParamOption func(*paramConfig)

// Unit sets the unit attribute of a Param.
func Unit(unit string) ParamOption {
	return func(c *paramConfig) { c.unit = some(unit) }
}

// UCD sets the Unified Content Descriptor of a Param.
func UCD(ucd string) ParamOption {
	return func(c *paramConfig) { c.ucd = some(ucd) }
}

// DataType sets the dataType attribute explicitly. Automatic conversion of
// non-string values is disabled when a data type is given.
func DataType(dataType string) ParamOption {
	return func(c *paramConfig) { c.dataType = some(dataType) }
}

// Utype sets the utype attribute of a Param.
func Utype(utype string) ParamOption {
	return func(c *paramConfig) { c.utype = some(utype) }
}

// NoAutoConvert makes NewParam reject any value that is not a string.
func NoAutoConvert() ParamOption {
	return func(c *paramConfig) { c.noAutoConvert = true }
}

// NewParam creates a Param element. Attributes are written in the order
// name, value, unit, ucd, dataType, utype.
//
// value may be nil (no value attribute), a string (stored verbatim), or,
// unless conversion is disabled, one of the following, which also sets
// dataType when none was given:
//
//	bool            "true" / "false", dataType "string"
//	integer kinds   decimal, dataType "int"
//	float32/float64 shortest round-trip form, dataType "float"
//	time.Time       ISO 8601 with offset, dataType "string"
//
// Booleans are written in the XML Schema form "true" / "false", not the
// capitalised "True" / "False" found in some existing packets; pass a
// string to reproduce those exactly.
//
// Any other value yields ErrUnsupportedValue.
func NewParam(name string, value any, opts ...ParamOption) (*Element, error) {
	var cfg paramConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	p := NewElement("Param")
	p.SetAttribute("name", name)
	if value != nil {
		text, dataType, err := paramValue(value, cfg)
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", name, err)
		}
		p.SetAttribute("value", text)
		if dataType != "" && !cfg.dataType.set {
			cfg.dataType = some(dataType)
		}
	}
	cfg.unit.apply(p, "unit")
	cfg.ucd.apply(p, "ucd")
	cfg.dataType.apply(p, "dataType")
	cfg.utype.apply(p, "utype")
	return p, nil
}

func paramValue(value any, cfg paramConfig) (string, string, error) {
	if s, ok := value.(string); ok {
		return s, "", nil
	}
	if cfg.noAutoConvert || cfg.dataType.set {
		return "", "", fmt.Errorf("%w: %T with automatic conversion disabled", ErrUnsupportedValue, value)
	}
	text, dataType, ok := autoConvert(value)
	if !ok {
		return "", "", fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}
	return text, dataType, nil
}

func autoConvert(value any) (text, dataType string, ok bool) {
	switch v := value.(type) {
	case bool:
		return strconv.FormatBool(v), definitions.DataTypeString, true
	case int:
		return strconv.FormatInt(int64(v), 10), definitions.DataTypeInt, true
	case int8:
		return strconv.FormatInt(int64(v), 10), definitions.DataTypeInt, true
	case int16:
		return strconv.FormatInt(int64(v), 10), definitions.DataTypeInt, true
	case int32:
		return strconv.FormatInt(int64(v), 10), definitions.DataTypeInt, true
	case int64:
		return strconv.FormatInt(v, 10), definitions.DataTypeInt, true
	case uint:
		return strconv.FormatUint(uint64(v), 10), definitions.DataTypeInt, true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), definitions.DataTypeInt, true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), definitions.DataTypeInt, true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), definitions.DataTypeInt, true
	case uint64:
		return strconv.FormatUint(v, 10), definitions.DataTypeInt, true
	case float32:
		return formatFloat(float64(v), 32), definitions.DataTypeFloat, true
	case float64:
		return formatFloat(v, 64), definitions.DataTypeFloat, true
	case time.Time:
		return isoformat(v, true), definitions.DataTypeString, true
	}
	return "", "", false
}

// formatFloat writes f in its shortest round-trip form, in positional
// notation between 1e-4 and 1e16 and always with a fractional part there.
// Infinities and NaN use the XML Schema spellings.
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, bitSize)
	}
	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// isoformat renders t as an ISO 8601 timestamp. Microseconds are written
// only when non-zero; sub-microsecond precision is dropped.
func isoformat(t time.Time, withOffset bool) string {
	layout := "2006-01-02T15:04:05"
	if t.Nanosecond()/1000 != 0 {
		layout += ".000000"
	}
	if withOffset {
		layout += "-07:00"
	}
	return t.Format(layout)
}

func truncateToSecond(t time.Time) time.Time {
	return t.Add(-time.Duration(t.Nanosecond()))
}

type groupConfig struct {
	name, groupType optional
}

// GroupOption configures NewGroup.
type GroupOption func(*groupConfig)

// GroupName sets the name attribute of a Group.
func GroupName(name string) GroupOption {
	return func(c *groupConfig) { c.name = some(name) }
}

// GroupType sets the type attribute of a Group.
func GroupType(groupType string) GroupOption {
	return func(c *groupConfig) { c.groupType = some(groupType) }
}

// NewGroup creates a Group element holding params. Unset options produce
// no attribute; an option set to "" produces an empty one.
func NewGroup(params []*Element, opts ...GroupOption) *Element {
	var cfg groupConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	g := NewElement("Group")
	cfg.name.apply(g, "name")
	cfg.groupType.apply(g, "type")
	g.Append(params...)
	return g
}

type referenceConfig struct {
	meaning, mimeType optional
}

// ReferenceOption configures NewReference.
type ReferenceOption func(*referenceConfig)

// Meaning sets the meaning attribute of a Reference.
func Meaning(meaning string) ReferenceOption {
	return func(c *referenceConfig) { c.meaning = some(meaning) }
}

// MIMEType sets the mimetype attribute of a Reference.
func MIMEType(mimeType string) ReferenceOption {
	return func(c *referenceConfig) { c.mimeType = some(mimeType) }
}

// NewReference creates a Reference element pointing at uri.
func NewReference(uri string, opts ...ReferenceOption) *Element {
	var cfg referenceConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	r := NewElement("Reference")
	r.SetAttribute("uri", uri)
	cfg.mimeType.apply(r, "mimetype")
	cfg.meaning.apply(r, "meaning")
	return r
}

type inferenceConfig struct {
	probability     *float64
	relation        optional
	names, concepts []string
}

// InferenceOption configures NewInference.
type InferenceOption func(*inferenceConfig)

// Probability sets the probability attribute, a value in [0, 1].
func Probability(p float64) InferenceOption {
	return func(c *inferenceConfig) { c.probability = &p }
}

// Relation sets the relation attribute, such as "associated".
func Relation(relation string) InferenceOption {
	return func(c *inferenceConfig) { c.relation = some(relation) }
}

// InferenceName adds a Name child for each name.
func InferenceName(names ...string) InferenceOption {
	return func(c *inferenceConfig) { c.names = append(c.names, names...) }
}

// InferenceConcept adds a Concept child for each concept.
func InferenceConcept(concepts ...string) InferenceOption {
	return func(c *inferenceConfig) { c.concepts = append(c.concepts, concepts...) }
}

// NewInference creates an Inference element for use with the Inferences
// option of AddWhy.
func NewInference(opts ...InferenceOption) *Element {
	var cfg inferenceConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	inf := NewElement("Inference")
	if cfg.probability != nil {
		inf.SetAttribute("probability", formatFloat(*cfg.probability, 64))
	}
	cfg.relation.apply(inf, "relation")
	for _, n := range cfg.names {
		inf.appendNew("Name").SetText(n)
	}
	for _, c := range cfg.concepts {
		inf.appendNew("Concept").SetText(c)
	}
	return inf
}

// NewCitation creates an EventIVORN element citing ivorn. citeType is one
// of followup, supersedes or retraction.
func NewCitation(ivorn, citeType string) *Element {
	c := NewElement("EventIVORN")
	c.SetAttribute("cite", citeType)
	c.SetText(ivorn)
	return c
}
