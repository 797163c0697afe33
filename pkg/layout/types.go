package layout

import "strconv"

// ValueType describes how an attribute value was written in the layout file.
type ValueType string

const (
	TypeString ValueType = "string"
	TypeNumber ValueType = "number"
	TypeBool   ValueType = "bool"
	TypeNull   ValueType = "null"
	TypeRecord ValueType = "record"
)

// Value is a scalar literal or a nested record such as a pose block.
type Value struct {
	Type ValueType
	// Scalar holds the literal text for non-record values, exactly as written.
	Scalar string
	// Record holds the nested attributes for TypeRecord values.
	Record []Attribute
}

// String builds a string scalar.
func String(s string) Value {
	return Value{Type: TypeString, Scalar: s}
}

// Number builds a numeric scalar from its literal text.
func Number(literal string) Value {
	return Value{Type: TypeNumber, Scalar: literal}
}

// Bool builds a boolean scalar.
func Bool(b bool) Value {
	return Value{Type: TypeBool, Scalar: strconv.FormatBool(b)}
}

// Record builds a nested record value.
func Record(attrs ...Attribute) Value {
	return Value{Type: TypeRecord, Record: append([]Attribute(nil), attrs...)}
}

// IsRecord reports whether the value nests further attributes.
func (v Value) IsRecord() bool {
	return v.Type == TypeRecord
}

// Attribute pairs an attribute name with its value.
type Attribute struct {
	Name  string
	Value Value
}

// Attr is shorthand for constructing an Attribute.
func Attr(name string, value Value) Attribute {
	return Attribute{Name: name, Value: value}
}

// Entry is one thruster or sensor instance from a layout file.
type Entry struct {
	// Key identifies the entry within its source.
	Key string
	// Macro names the xacro macro the entry instantiates (engine, wamv_camera).
	Macro string
	// Index is the zero-based declaration position within the source.
	Index int
	// Attributes are kept in declaration order.
	Attributes []Attribute
}

// Lookup returns the top-level attribute with the given name.
func (e Entry) Lookup(name string) (Value, bool) {
	for _, attr := range e.Attributes {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return Value{}, false
}

// Find searches the flattened attributes, so a component nested inside a
// pose record is found by its leaf name.
func (e Entry) Find(name string) (Value, bool) {
	for _, attr := range e.Flatten() {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return Value{}, false
}

// Flatten returns the scalar attributes of the entry with nested records
// expanded in place, depth first, in declaration order.
func (e Entry) Flatten() []Attribute {
	out := make([]Attribute, 0, len(e.Attributes))
	return flattenInto(out, e.Attributes)
}

func flattenInto(dst []Attribute, attrs []Attribute) []Attribute {
	for _, attr := range attrs {
		if attr.Value.IsRecord() {
			dst = flattenInto(dst, attr.Value.Record)
			continue
		}
		dst = append(dst, attr)
	}
	return dst
}

func (e Entry) clone() Entry {
	out := e
	out.Attributes = cloneAttributes(e.Attributes)
	return out
}

func cloneAttributes(attrs []Attribute) []Attribute {
	if attrs == nil {
		return nil
	}
	out := make([]Attribute, len(attrs))
	for i, attr := range attrs {
		out[i] = attr
		if attr.Value.IsRecord() {
			out[i].Value.Record = cloneAttributes(attr.Value.Record)
		}
	}
	return out
}

// Source is an ordered, immutable collection of entries plus the identifier
// the layout was read from.
type Source struct {
	id      string
	entries []Entry
	index   map[string]int
}

// NewSource builds a Source from entries in declaration order. Entry indexes
// are reassigned to match their position. Duplicate keys are rejected.
func NewSource(id string, entries ...Entry) (*Source, error) {
	src := &Source{
		id:      id,
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, entry := range entries {
		if _, exists := src.index[entry.Key]; exists {
			return nil, &ConfigurationError{
				Kind:   KindDuplicateEntry,
				Source: id,
				Entry:  entry.Key,
				Detail: "entry keys must be unique within a layout",
			}
		}
		cloned := entry.clone()
		cloned.Index = len(src.entries)
		src.index[cloned.Key] = cloned.Index
		src.entries = append(src.entries, cloned)
	}
	return src, nil
}

// ID returns the identifier the source was loaded from.
func (s *Source) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Len reports the number of entries.
func (s *Source) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entries returns a copy of the entries in declaration order.
func (s *Source) Entries() []Entry {
	if s == nil {
		return nil
	}
	out := make([]Entry, len(s.entries))
	for i, entry := range s.entries {
		out[i] = entry.clone()
	}
	return out
}

// Entry returns the entry registered under key.
func (s *Source) Entry(key string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	idx, ok := s.index[key]
	if !ok {
		return Entry{}, false
	}
	return s.entries[idx].clone(), true
}

// Keys lists entry keys in declaration order.
func (s *Source) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, len(s.entries))
	for i, entry := range s.entries {
		keys[i] = entry.Key
	}
	return keys
}
