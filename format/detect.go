// Package format identifies VOEvent packets and their schema version
// without parsing the whole document.
package format

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/tsawler/voevent/definitions"
	"github.com/tsawler/voevent/internal/charset"
)

// Version is a VOEvent schema version.
type Version int

const (
	// Unknown indicates a document that is not a recognisable VOEvent.
	Unknown Version = iota
	// V1_1 indicates a VOEvent 1.1 packet.
	V1_1
	// V2_0 indicates a VOEvent 2.0 packet.
	V2_0
)

// String returns the version number, or "Unknown".
func (v Version) String() string {
	switch v {
	case V1_1:
		return "1.1"
	case V2_0:
		return "2.0"
	default:
		return "Unknown"
	}
}

// Namespace returns the namespace URI of the version's schema.
func (v Version) Namespace() string {
	switch v {
	case V1_1:
		return definitions.NamespaceV1_1
	case V2_0:
		return definitions.NamespaceV2_0
	default:
		return ""
	}
}

// IsPacketFile reports whether filename has an extension used for stored
// packets (.xml or .voe).
func IsPacketFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xml", ".voe":
		return true
	default:
		return false
	}
}

// DetectFromMagic determines the version from the leading bytes of a
// packet. It returns Unknown when the data is not a VOEvent or cannot be
// read far enough to tell.
func DetectFromMagic(data []byte) Version {
	v, err := DetectFromReader(bytes.NewReader(data))
	if err != nil {
		return Unknown
	}
	return v
}

// DetectFromReader reads r up to the root start tag and determines the
// version from its version attribute, falling back to its namespace. A
// root element other than VOEvent yields Unknown with a nil error.
func DetectFromReader(r io.Reader) (Version, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReader
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return Unknown, nil
		}
		if err != nil {
			return Unknown, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "VOEvent" {
			return Unknown, nil
		}
		return rootVersion(start), nil
	}
}

func rootVersion(start xml.StartElement) Version {
	for _, a := range start.Attr {
		if a.Name.Space == "" && a.Name.Local == "version" {
			switch strings.TrimSpace(a.Value) {
			case "2.0":
				return V2_0
			case "1.1":
				return V1_1
			}
			return Unknown
		}
	}
	switch start.Name.Space {
	case definitions.NamespaceV2_0:
		return V2_0
	case definitions.NamespaceV1_1:
		return V1_1
	}
	return Unknown
}
