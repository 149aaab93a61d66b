package voevent

import (
	"github.com/beevik/etree"
)

// Document is a VOEvent packet held as a mutable XML tree.
//
// While held in a Document the root element carries no namespace prefix,
// so sections are reached by plain names such as "Who" or "What". The
// prefix the packet was parsed or created with is remembered and restored
// whenever the document is serialized or validated. Neither operation
// modifies the Document.
type Document struct {
	tree   *etree.Document
	prefix string
}

func newDocument(tree *etree.Document) *Document {
	return &Document{
		tree:   tree,
		prefix: stripRootPrefix(tree),
	}
}

// Root returns the VOEvent root element.
func (d *Document) Root() *Element {
	return wrap(d.tree.Root())
}

// Section returns the first top-level section with the given name, such as
// "Who" or "WhereWhen", or nil.
func (d *Document) Section(name string) *Element {
	return d.Root().Child(name)
}

// IVORN returns the packet identifier.
func (d *Document) IVORN() string {
	v, _ := d.Root().Attribute("ivorn")
	return v
}

// Role returns the packet role.
func (d *Document) Role() string {
	v, _ := d.Root().Attribute("role")
	return v
}

// Version returns the declared VOEvent version.
func (d *Document) Version() string {
	v, _ := d.Root().Attribute("version")
	return v
}

// Prefix returns the namespace prefix the root element is written with.
// It is empty for packets whose root was unqualified.
func (d *Document) Prefix() string {
	return d.prefix
}

// Namespace returns the namespace URI bound to the root element, or the
// empty string if it has none.
func (d *Document) Namespace() string {
	key := "xmlns"
	if d.prefix != "" {
		key = "xmlns:" + d.prefix
	}
	for _, a := range d.tree.Root().Attr {
		if a.FullKey() == key {
			return a.Value
		}
	}
	return ""
}

// Copy returns an independent deep copy of the document.
func (d *Document) Copy() *Document {
	return &Document{
		tree:   d.tree.Copy(),
		prefix: d.prefix,
	}
}

// Bytes serializes the document with DefaultWriteOptions.
func (d *Document) Bytes() ([]byte, error) {
	return Serialize(d, DefaultWriteOptions())
}

// standardRoot returns a detached copy of the root element re-qualified
// with the document's namespace prefix. The document itself is untouched.
func (d *Document) standardRoot() *etree.Element {
	root := d.tree.Root().Copy()
	if d.prefix != "" {
		root.Space = d.prefix
	}
	return root
}

// stripRootPrefix removes the namespace prefix from the root element's tag
// and returns it. Calling it on an already stripped tree returns "".
func stripRootPrefix(tree *etree.Document) string {
	root := tree.Root()
	if root == nil || root.Space == "" {
		return ""
	}
	prefix := root.Space
	root.Space = ""
	return prefix
}
