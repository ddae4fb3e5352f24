package model

// NewPlaceholderType creates a new, non-interned Type node suitable only
// for a parameter or return-type position (spec.md §4.3, "Reference-only
// placeholders (critical invariant)"). It always has IsExternalReference
// set and an empty Members slice, and it is never written into a TypeMap:
// callers must not call TypeMap.Intern on the result. This is what stops a
// method that returns its own declaring type, or a generic self-reference,
// from producing an unbounded object graph.
func NewPlaceholderType(simpleName, fullName, displaySignature string) *Type {
	return &Type{
		SimpleName:          simpleName,
		FullName:            fullName,
		DisplaySignature:    displaySignature,
		Kind:                TypeKindOther,
		IsExternalReference: true,
		Members:             nil,
	}
}

// IsPlaceholder reports whether t looks like a reference-only placeholder:
// external and with no members. A first-class external shadow type (see
// the Extension Relocator) is also IsExternalReference but carries members,
// so it is not a placeholder by this definition.
func (t *Type) IsPlaceholder() bool {
	return t != nil && t.IsExternalReference && len(t.Members) == 0
}
