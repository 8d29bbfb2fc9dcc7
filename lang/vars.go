package lang

import (
	"iter"
	"slices"
)

// Variables is an ordered, read-only table of scalar values available to
// expressions by name. A nil *Variables is an empty table.
type Variables struct {
	names  []string
	values map[string]*Value
}

// NewVariables returns a table holding the scalar values of entries.
// Non-scalar entries are skipped. A repeated name keeps its first position
// and its last value.
func NewVariables(entries ...Entry) *Variables {
	vars := &Variables{values: make(map[string]*Value, len(entries))}

	for _, e := range entries {
		if !e.Value.IsScalar() {
			continue
		}

		if _, ok := vars.values[e.Key]; !ok {
			vars.names = append(vars.names, e.Key)
		}

		vars.values[e.Key] = e.Value
	}

	return vars
}

// ExtractVariables returns the table formed by the direct scalar entries of
// root. Nested mappings are not searched. A root that is not a mapping yields
// an empty table.
func ExtractVariables(root *Value) *Variables {
	if root == nil || root.Kind != KindMapping {
		return NewVariables()
	}

	return NewVariables(root.Entries...)
}

// Lookup returns the value bound to name.
func (v *Variables) Lookup(name string) (*Value, bool) {
	if v == nil {
		return nil, false
	}

	val, ok := v.values[name]

	return val, ok
}

// Len returns the number of variables.
func (v *Variables) Len() int {
	if v == nil {
		return 0
	}

	return len(v.names)
}

// Names returns the variable names in insertion order.
func (v *Variables) Names() []string {
	if v == nil {
		return nil
	}

	return slices.Clone(v.names)
}

// All returns an iterator over the variables in insertion order.
func (v *Variables) All() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		if v == nil {
			return
		}

		for _, name := range v.names {
			if !yield(name, v.values[name]) {
				return
			}
		}
	}
}
