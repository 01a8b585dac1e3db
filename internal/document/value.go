package document

// Value is one node of a decoded configuration document.
//
// Implementations are Scalar, Sequence, *Mapping and Tagged. The set is
// closed; a type switch over these four is exhaustive.
type Value interface {
	value()
}

// Scalar is a plain YAML value together with its resolved native tag
// ("!!str", "!!int", "!!bool", ...). The text is kept exactly as written so
// encoding does not reformat numbers or booleans.
type Scalar struct {
	Tag  string
	Text string
}

func (Scalar) value() {}

// String builds a string scalar.
func String(s string) Scalar {
	return Scalar{Tag: "!!str", Text: s}
}

// Bool builds a boolean scalar.
func Bool(b bool) Scalar {
	if b {
		return Scalar{Tag: "!!bool", Text: "true"}
	}
	return Scalar{Tag: "!!bool", Text: "false"}
}

// Sequence is an ordered list of values.
type Sequence []Value

func (Sequence) value() {}

// Tagged is a value carrying a tag that is not part of the native YAML type
// system, such as an environment-variable reference (!ENV) or a language
// object reference (tag:yaml.org,2002:python/name:pkg.mod.fn). The tag and
// payload are preserved verbatim across a decode/encode cycle.
//
// The payload is either a single scalar (Text) or an ordered sequence of
// scalars (Items); IsSequence records which shape was read.
type Tagged struct {
	Tag        string
	Text       string
	Items      []Scalar
	IsSequence bool
}

func (Tagged) value() {}

// Entry is a single key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value Value
}

// Mapping is a string-keyed map that preserves insertion order. Key order is
// semantically meaningful in the documents this tool rewrites (plugin order
// affects the external build tool), so mappings are never sorted.
type Mapping struct {
	entries []Entry
}

func (*Mapping) value() {}

// NewMapping returns an empty ordered mapping.
func NewMapping() *Mapping {
	return &Mapping{}
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.entries)
}

// Entries returns the entries in insertion order. The returned slice is the
// mapping's backing store; callers must not reorder it.
func (m *Mapping) Entries() []Entry {
	return m.entries
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	for _, e := range m.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set replaces the value under key, keeping its position, or appends a new
// entry when the key is absent.
func (m *Mapping) Set(key string, v Value) {
	for i, e := range m.entries {
		if e.Key == key {
			m.entries[i].Value = v
			return
		}
	}
	m.entries = append(m.entries, Entry{Key: key, Value: v})
}

// GetMapping returns the nested mapping under key, or nil when the key is
// absent or holds a different kind of value.
func (m *Mapping) GetMapping(key string) *Mapping {
	v, ok := m.Get(key)
	if !ok {
		return nil
	}
	nested, ok := v.(*Mapping)
	if !ok {
		return nil
	}
	return nested
}

// GetSequence returns the sequence under key, or nil when the key is absent
// or holds a different kind of value.
func (m *Mapping) GetSequence(key string) (Sequence, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	seq, ok := v.(Sequence)
	return seq, ok
}
