package model

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// TypeMap is the per-build dictionary from a type's full display name to
// its node, built fresh by each Model Builder invocation and never shared
// across binaries (spec.md §5, "Shared-resource policy"). It is backed by
// an insertion-ordered map so that the deterministic stable traversal
// order required by spec.md §5 survives iteration, matching the ordering
// discipline the teacher applies to its own lookup maps.
//
// Only first-class types - declared in an input binary, not a reference-
// only placeholder - are ever inserted; Intern enforces this.
type TypeMap struct {
	om *orderedmap.OrderedMap[string, *Type]
}

// NewTypeMap creates an empty TypeMap.
func NewTypeMap() *TypeMap {
	return &TypeMap{om: orderedmap.New[string, *Type]()}
}

// Intern inserts t under its FullName, first write wins. It is a no-op
// (and returns false) for a reference-only placeholder - this is the
// invariant that prevents cycles through generic self-reference.
func (m *TypeMap) Intern(t *Type) bool {
	if t == nil || t.IsPlaceholder() {
		return false
	}
	if _, exists := m.om.Get(t.FullName); exists {
		return false
	}
	m.om.Set(t.FullName, t)
	return true
}

// Lookup returns the interned type for a full display name, if any.
func (m *TypeMap) Lookup(fullName string) (*Type, bool) {
	return m.om.Get(fullName)
}

// Len returns the number of interned (first-class) types.
func (m *TypeMap) Len() int {
	return m.om.Len()
}

// Each iterates interned types in insertion order.
func (m *TypeMap) Each(fn func(fullName string, t *Type)) {
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}
