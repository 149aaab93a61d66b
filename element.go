package voevent

import (
	"github.com/beevik/etree"

	"github.com/tsawler/voevent/model"
)

// Element is a node of a VOEvent document tree. Children are addressed by
// their unqualified tag name, which is why a Document keeps its root
// namespace prefix stripped while it is being worked on.
//
// Elements returned by a Document are live views: changes made through them
// change the document.
type Element struct {
	e *etree.Element
}

func wrap(e *etree.Element) *Element {
	if e == nil {
		return nil
	}
	return &Element{e: e}
}

// NewElement creates a detached element with the given tag.
func NewElement(tag string) *Element {
	return wrap(etree.NewElement(tag))
}

// Tag returns the element's local name.
func (el *Element) Tag() string {
	return el.e.Tag
}

// Child returns the first child element named name, or nil.
func (el *Element) Child(name string) *Element {
	for _, c := range el.e.ChildElements() {
		if c.Tag == name {
			return wrap(c)
		}
	}
	return nil
}

// Children returns the child elements named name in document order. An
// empty name returns every child element.
func (el *Element) Children(name string) []*Element {
	var out []*Element
	for _, c := range el.e.ChildElements() {
		if name == "" || c.Tag == name {
			out = append(out, wrap(c))
		}
	}
	return out
}

// Find descends through the first child with each successive name and
// returns the element reached, or nil if any step is missing.
func (el *Element) Find(path ...string) *Element {
	cur := el
	for _, name := range path {
		if cur = cur.Child(name); cur == nil {
			return nil
		}
	}
	return cur
}

// Parent returns the parent element, or nil for a root or detached element.
func (el *Element) Parent() *Element {
	p := el.e.Parent()
	// The root element's parent is the document node, which has no tag.
	if p == nil || (p.Tag == "" && p.Parent() == nil) {
		return nil
	}
	return wrap(p)
}

// Attribute returns the value of the named attribute and whether it is
// present. A present attribute may hold the empty string.
func (el *Element) Attribute(name string) (string, bool) {
	a := el.e.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// SetAttribute sets the named attribute, replacing any existing value.
// New attributes are appended after existing ones.
func (el *Element) SetAttribute(name, value string) {
	el.e.CreateAttr(name, value)
}

// RemoveAttribute deletes the named attribute if present.
func (el *Element) RemoveAttribute(name string) {
	el.e.RemoveAttr(name)
}

// Attributes returns the element's attributes. Namespace declarations are
// not included.
func (el *Element) Attributes() model.Attrs {
	attrs := make(model.Attrs, len(el.e.Attr))
	for _, a := range el.e.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		attrs[a.FullKey()] = a.Value
	}
	return attrs
}

// Text returns the character data preceding the element's first child.
func (el *Element) Text() string {
	return el.e.Text()
}

// SetText replaces the element's leading character data.
func (el *Element) SetText(text string) {
	el.e.SetText(text)
}

// SetChild sets the text of the first child named name, creating the child
// if it does not exist. Created children are placed where the VOEvent
// schema expects them among their siblings.
func (el *Element) SetChild(name, text string) *Element {
	c := el.Child(name)
	if c == nil {
		c = NewElement(name)
		el.insertOrdered(c)
	}
	c.SetText(text)
	return c
}

// Append adds children after the existing ones. A child that already
// belongs to a tree is moved.
func (el *Element) Append(children ...*Element) {
	for _, c := range children {
		if c != nil {
			el.e.AddChild(c.e)
		}
	}
}

// Remove detaches child from el and reports whether it was a child.
func (el *Element) Remove(child *Element) bool {
	if child == nil {
		return false
	}
	return el.e.RemoveChild(child.e) != nil
}

// Copy returns a deep, detached copy of the element.
func (el *Element) Copy() *Element {
	return wrap(el.e.Copy())
}

// ensure returns the first child named name, creating it in schema order
// when absent.
func (el *Element) ensure(name string) *Element {
	if c := el.Child(name); c != nil {
		return c
	}
	c := NewElement(name)
	el.insertOrdered(c)
	return c
}

// appendNew appends and returns a new child element.
func (el *Element) appendNew(name string) *Element {
	return wrap(el.e.CreateElement(name))
}

// childOrder gives the sequence the schema imposes on the children of
// elements whose content model is ordered.
var childOrder = map[string][]string{
	"VOEvent":   {"Who", "What", "WhereWhen", "How", "Why", "Citations", "Description", "Reference"},
	"Who":       {"AuthorIVORN", "Date", "Description", "Reference", "Author"},
	"Author":    {"title", "shortName", "logoURL", "contactName", "contactEmail", "contactPhone", "contributor"},
	"WhereWhen": {"ObsDataLocation", "Description", "Reference"},
	"Citations": {"EventIVORN", "Description"},
}

// insertOrdered adds child after any siblings that precede it in schema
// order, or appends it when el has no ordered content model.
func (el *Element) insertOrdered(child *Element) {
	order := childOrder[el.e.Tag]
	rank := indexOf(order, child.e.Tag)
	if rank < 0 {
		el.e.AddChild(child.e)
		return
	}
	for _, c := range el.e.ChildElements() {
		if indexOf(order, c.Tag) > rank {
			el.e.InsertChildAt(c.Index(), child.e)
			return
		}
	}
	el.e.AddChild(child.e)
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
