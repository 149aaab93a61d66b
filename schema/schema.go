// Package schema holds the VOEvent v2.0 XML Schema and the packet skeleton,
// embedded at build time, and compiles the schema into a reusable validator.
//
// The compiled schema is immutable after construction and safe to share
// between goroutines. Most callers use [V2], which compiles the embedded
// schema once per process:
//
//	v, err := schema.V2()
//	if err != nil {
//	    // the embedded schema is broken; this is a build defect
//	}
//	if err := v.Validate(bytes.NewReader(packet)); err != nil {
//	    fmt.Println("invalid:", err)
//	}
package schema

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/jacoelho/xsd"
)

// Namespace is the target namespace of the VOEvent v2.0 schema.
const Namespace = "http://www.ivoa.net/xml/VOEvent/v2.0"

// Version is the only schema version this module understands.
const Version = "2.0"

const (
	schemaFile   = "VOEvent-v2.0.xsd"
	skeletonFile = "skeleton.xml"
)

//go:embed VOEvent-v2.0.xsd skeleton.xml
var files embed.FS

// Validator checks a serialized XML document against a schema.
// Validate returns nil for a conforming document and an error carrying
// the validator's diagnostic otherwise.
type Validator interface {
	Validate(r io.Reader) error
}

// Schema is a compiled XML Schema.
type Schema struct {
	engine *xsd.Engine
}

// Compile compiles the schema named location from fsys. The schema must be
// self-contained: include and import locations are not resolved.
func Compile(fsys fs.FS, location string) (*Schema, error) {
	data, err := fs.ReadFile(fsys, location)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", location, err)
	}
	engine, err := xsd.Compile(xsd.Reader(location, bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", location, err)
	}
	return &Schema{engine: engine}, nil
}

// Validate validates the UTF-8 XML document read from r. A rejected
// document yields an *xsd.Error, or xsd.Errors when several violations
// are found.
func (s *Schema) Validate(r io.Reader) error {
	return s.engine.Validate(r)
}

var v2 = sync.OnceValues(func() (*Schema, error) {
	return Compile(files, schemaFile)
})

// V2 returns the compiled VOEvent v2.0 schema. Compilation happens on the
// first call; later calls return the same instance.
func V2() (*Schema, error) {
	return v2()
}

// Source returns the raw text of the embedded VOEvent v2.0 schema.
func Source() []byte {
	return mustRead(schemaFile)
}

// Skeleton returns the minimal VOEvent v2.0 document used as the starting
// point for new packets.
func Skeleton() []byte {
	return mustRead(skeletonFile)
}

func mustRead(name string) []byte {
	data, err := files.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("schema: embedded file %s missing: %v", name, err))
	}
	return data
}
