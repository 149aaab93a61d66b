package voevent

import (
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"

	"github.com/tsawler/voevent/internal/charset"
	"github.com/tsawler/voevent/schema"
)

// Parse reads a VOEvent v2.0 packet from data. Whitespace in the source is
// preserved. The declared XML encoding is honoured.
func Parse(data []byte) (*Document, error) {
	return ParseWithOptions(data, ParseOptions{})
}

// ParseWithOptions is Parse with explicit options.
func ParseWithOptions(data []byte, opts ParseOptions) (*Document, error) {
	tree := etree.NewDocument()
	tree.ReadSettings.CharsetReader = charset.NewReader
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing VOEvent: %w", err)
	}
	root := tree.Root()
	if root == nil {
		return nil, ErrEmptyDocument
	}
	if root.Tag != "VOEvent" {
		return nil, fmt.Errorf("%w: found <%s>", ErrNotVOEvent, root.FullTag())
	}
	d := newDocument(tree)
	if !opts.SkipVersionCheck {
		if v := d.Version(); v != schema.Version {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, v)
		}
	}
	return d, nil
}

// Load reads all of r and parses it as a packet.
func Load(r io.Reader) (*Document, error) {
	return LoadWithOptions(r, ParseOptions{})
}

// LoadWithOptions is Load with explicit options.
func LoadWithOptions(r io.Reader, opts ParseOptions) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading VOEvent: %w", err)
	}
	return ParseWithOptions(data, opts)
}

// LoadFile parses the packet stored in filename.
func LoadFile(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Serialize renders d as XML. The root element is written with the
// namespace prefix the document was created or parsed with. Comments and
// processing instructions outside the root element are not carried over.
func Serialize(d *Document, opts WriteOptions) ([]byte, error) {
	enc := opts.encoding()
	if !charset.IsUTF8(enc) {
		if _, err := charset.Lookup(enc); err != nil {
			return nil, err
		}
	}

	out := etree.NewDocument()
	if opts.XMLDeclaration {
		out.CreateProcInst("xml", fmt.Sprintf(`version="1.0" encoding="%s"`, enc))
		out.CreateText("\n")
	}
	out.SetRoot(d.standardRoot())
	if opts.PrettyPrint {
		out.Indent(2)
	}

	data, err := out.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("writing VOEvent: %w", err)
	}
	return charset.Encode(data, enc)
}

// Dump serializes d and writes the result to w.
func Dump(d *Document, w io.Writer, opts WriteOptions) error {
	data, err := Serialize(d, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
