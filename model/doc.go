// Package model defines the in-memory documentation graph that the rest of
// docgraph builds, relocates, resolves and merges: Assembly, Namespace,
// Type, Member, Parameter and EnumValue nodes, all sharing one embedded
// DocFragment rather than a polymorphic node hierarchy (see DESIGN.md).
//
// The graph is a tree plus non-owning References (see Reference). Ownership
// edges run Assembly -> Namespace -> Type -> Member -> Parameter, and
// Type -> EnumValue. A Member's return-type Reference and a Parameter's
// type Reference are reference-only placeholders: they never carry an
// expanded Member list, which is what keeps a type that returns itself from
// serializing forever. NewPlaceholderType is the only constructor that may
// be used in a parameter/return position; it is never interned into a
// TypeMap.
package model
