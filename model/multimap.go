package model

import "sort"

// Attrs holds the attributes of a single element, keyed by attribute name.
type Attrs map[string]string

// Get returns the named attribute, or "" if it is absent.
func (a Attrs) Get(name string) string {
	return a[name]
}

// Has reports whether the named attribute is present.
func (a Attrs) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Names returns the attribute names in sorted order.
func (a Attrs) Names() []string {
	names := make([]string, 0, len(a))
	for k := range a {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of the attributes.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	c := make(Attrs, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}

// Key identifies a Multimap entry. Elements without a name attribute are
// keyed by [Unnamed], which is distinct from a name attribute holding "".
type Key struct {
	Name  string
	Named bool
}

// Unnamed is the key used for entries that carry no name attribute.
var Unnamed = Key{}

// Named returns the key for a present name attribute.
func Named(name string) Key {
	return Key{Name: name, Named: true}
}

// String returns the name, or "<unnamed>" for the Unnamed key.
func (k Key) String() string {
	if !k.Named {
		return "<unnamed>"
	}
	return k.Name
}

// Entry is one key/value pair of a Multimap.
type Entry[V any] struct {
	Key   Key
	Value V
}

// Multimap is an ordered multimap: it keeps every entry, including repeated
// keys, in insertion order. The zero value is ready to use.
type Multimap[V any] struct {
	entries []Entry[V]
	index   map[Key][]int
}

// NewMultimap returns an empty Multimap.
func NewMultimap[V any]() *Multimap[V] {
	return &Multimap[V]{}
}

// Add appends a value under key.
func (m *Multimap[V]) Add(key Key, value V) {
	if m.index == nil {
		m.index = make(map[Key][]int)
	}
	m.index[key] = append(m.index[key], len(m.entries))
	m.entries = append(m.entries, Entry[V]{Key: key, Value: value})
}

// Lookup returns the first value stored under key.
func (m *Multimap[V]) Lookup(key Key) (V, bool) {
	var zero V
	if m == nil {
		return zero, false
	}
	idx := m.index[key]
	if len(idx) == 0 {
		return zero, false
	}
	return m.entries[idx[0]].Value, true
}

// LookupAll returns every value stored under key, in insertion order.
func (m *Multimap[V]) LookupAll(key Key) []V {
	if m == nil {
		return nil
	}
	idx := m.index[key]
	if len(idx) == 0 {
		return nil
	}
	values := make([]V, len(idx))
	for i, j := range idx {
		values[i] = m.entries[j].Value
	}
	return values
}

// Get returns the first value stored under the given name.
func (m *Multimap[V]) Get(name string) (V, bool) {
	return m.Lookup(Named(name))
}

// GetAll returns every value stored under the given name.
func (m *Multimap[V]) GetAll(name string) []V {
	return m.LookupAll(Named(name))
}

// GetUnnamed returns the first value stored without a name.
func (m *Multimap[V]) GetUnnamed() (V, bool) {
	return m.Lookup(Unnamed)
}

// GetAllUnnamed returns every value stored without a name.
func (m *Multimap[V]) GetAllUnnamed() []V {
	return m.LookupAll(Unnamed)
}

// Has reports whether any value is stored under key.
func (m *Multimap[V]) Has(key Key) bool {
	return m != nil && len(m.index[key]) > 0
}

// Keys returns the distinct keys in order of first appearance.
func (m *Multimap[V]) Keys() []Key {
	if m == nil {
		return nil
	}
	keys := make([]Key, 0, len(m.index))
	for i, e := range m.entries {
		if m.index[e.Key][0] == i {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// Values returns the first value of each distinct key, in key order.
func (m *Multimap[V]) Values() []V {
	keys := m.Keys()
	values := make([]V, 0, len(keys))
	for _, k := range keys {
		values = append(values, m.entries[m.index[k][0]].Value)
	}
	return values
}

// AllValues returns every value in insertion order.
func (m *Multimap[V]) AllValues() []V {
	if m == nil {
		return nil
	}
	values := make([]V, len(m.entries))
	for i, e := range m.entries {
		values[i] = e.Value
	}
	return values
}

// Entries returns a copy of every entry in insertion order.
func (m *Multimap[V]) Entries() []Entry[V] {
	if m == nil {
		return nil
	}
	entries := make([]Entry[V], len(m.entries))
	copy(entries, m.entries)
	return entries
}

// Len returns the number of distinct keys.
func (m *Multimap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.index)
}

// Size returns the total number of entries, counting repeated keys.
func (m *Multimap[V]) Size() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}
