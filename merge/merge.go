// Package merge combines several single-assembly documentation graphs
// (one per loaded binary) into one, by namespace/type/member identity,
// first-input-wins for ownership (spec.md §4.7).
package merge

import "github.com/relaydocs/docgraph/model"

// Merge combines assemblies into a single graph, using the first as the
// base that later ones are folded into. Merge panics if assemblies is
// empty — callers are expected to guard the Orchestrator's own
// "at least one binary" precondition before calling in.
func Merge(assemblies []*model.Assembly) *model.Assembly {
	base := assemblies[0]
	for _, extra := range assemblies[1:] {
		mergeAssembly(base, extra)
	}
	return base
}

func mergeAssembly(base, extra *model.Assembly) {
	model.MergeSparseDocs(&base.DocFragment, extra.DocFragment)
	base.Diagnostics = append(base.Diagnostics, extra.Diagnostics...)

	index := make(map[string]*model.Namespace, len(base.Namespaces))
	for _, ns := range base.Namespaces {
		index[ns.FullName] = ns
	}

	for _, extraNS := range extra.Namespaces {
		if baseNS, ok := index[extraNS.FullName]; ok {
			mergeNamespace(baseNS, extraNS)
			continue
		}
		base.Namespaces = append(base.Namespaces, extraNS)
		index[extraNS.FullName] = extraNS
	}
}

func mergeNamespace(base, extra *model.Namespace) {
	model.MergeSparseDocs(&base.DocFragment, extra.DocFragment)

	index := make(map[string]*model.Type, len(base.Types))
	for _, t := range base.Types {
		index[t.FullName] = t
	}

	for _, extraType := range extra.Types {
		if baseType, ok := index[extraType.FullName]; ok {
			mergeType(baseType, extraType)
			continue
		}
		base.Types = append(base.Types, extraType)
		index[extraType.FullName] = extraType
	}
}

// mergeType merges extra's members into base by member display-string
// identity; a duplicate is discarded, first wins. Doc fields flow in
// sparsely; enum values are taken wholesale from whichever side declared
// them first (a type is never redeclared as an enum by one source and a
// class by another, so there is nothing finer-grained to merge there).
func mergeType(base, extra *model.Type) {
	model.MergeSparseDocs(&base.DocFragment, extra.DocFragment)

	index := make(map[string]bool, len(base.Members))
	for _, m := range base.Members {
		index[m.DisplayName] = true
	}

	for _, extraMember := range extra.Members {
		if index[extraMember.DisplayName] {
			continue
		}
		base.Members = append(base.Members, extraMember)
		index[extraMember.DisplayName] = true
	}

	if len(base.Values) == 0 && len(extra.Values) > 0 {
		base.Values = extra.Values
	}
}
