package models

import "sort"

// Flags is the set of flag names a metadata source reported for an attribute.
type Flags map[string]bool

const FlagCallable = "callable"

func NewFlags(names ...string) Flags {
	f := make(Flags, len(names))
	for _, n := range names {
		f[n] = true
	}
	return f
}

func (f Flags) Has(name string) bool {
	return f[name]
}

func (f Flags) Callable() bool {
	return f.Has(FlagCallable)
}

// Names returns the set flags in sorted order.
func (f Flags) Names() []string {
	names := make([]string, 0, len(f))
	for n, set := range f {
		if set {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// AttributeDescriptor describes one attribute of the foreign object.
// Kind is the raw kind string from the metadata source; it is mapped onto a
// Kind by the dispatcher. Doc and Arglist are nil when the source had none.
// Value holds a literal (string, bool, int, float64, *big.Int) for scalar
// attributes.
type AttributeDescriptor struct {
	Kind    string
	Doc     *string
	Flags   Flags
	Arglist []string
	Value   interface{}
}

// Entry is one row of the descriptor table, in the table's natural order.
type Entry struct {
	Name       string
	StringName bool
	Descriptor *AttributeDescriptor
}

// Emittable reports whether the entry has a string name and descriptor-valued metadata.
func (e Entry) Emittable() bool {
	return e.StringName && e.Descriptor != nil
}

// ModuleMetadata is everything a metadata source knows about one target.
type ModuleMetadata struct {
	Target  string
	Doc     *string
	Entries []Entry
}
