package snapraw

import "fmt"

// maxDirOrdinal bounds prefixed-name lookups. No known vendor file embeds
// more than a handful of directories in one metadata block.
const maxDirOrdinal = 10

// DirPrefix returns the field-name prefix for the directory with the
// given ordinal. Ordinal 0 fields carry no prefix.
func DirPrefix(ordinal int) string {
	if ordinal == 0 {
		return ""
	}
	return fmt.Sprintf("Dir%d_", ordinal)
}

// Fields is an ordered mapping from field name to decoded value,
// produced once per source file. It is not modified after assembly.
type Fields struct {
	names  []string
	values map[string]any
}

// Add records a decoded field. A repeated name within one extraction
// keeps its original position and takes the new value.
func (f *Fields) Add(name string, value any) {
	if f.values == nil {
		f.values = make(map[string]any)
	}
	if _, found := f.values[name]; !found {
		f.names = append(f.names, name)
	}
	f.values[name] = value
}

// Get returns the value for an exact field name.
func (f *Fields) Get(name string) (any, bool) {
	v, ok := f.values[name]
	return v, ok
}

// Lookup resolves a base field name across directory ordinals.
// The unprefixed name wins; otherwise higher ordinals are preferred,
// as later directory copies tend to be the more specific ones.
func (f *Fields) Lookup(base string) (name string, value any, ok bool) {
	if v, found := f.values[base]; found {
		return base, v, true
	}
	for n := maxDirOrdinal; n > 0; n-- {
		prefixed := DirPrefix(n) + base
		if v, found := f.values[prefixed]; found {
			return prefixed, v, true
		}
	}
	return "", nil, false
}

// Names returns the field names in insertion order.
func (f *Fields) Names() []string {
	return f.names
}

// Len returns the number of decoded fields.
func (f *Fields) Len() int {
	return len(f.names)
}
