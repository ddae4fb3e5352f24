package builder

import (
	"strings"

	"github.com/relaydocs/docgraph/internal/vendordocs"
	"github.com/relaydocs/docgraph/model"
)

// Relocate runs the Extension Relocator pass (spec.md §4.4) over an
// already-built graph: every member flagged IsExtension during Build is
// moved off its declaring static type and onto the type its first
// parameter names, with that parameter stripped from its signature. A
// static type left with no members afterward, and any namespace left with
// no types, is pruned.
func Relocate(assembly *model.Assembly, tm *model.TypeMap, opts Options) []model.Diagnostic {
	var diagnostics []model.Diagnostic

	type relocation struct {
		member *model.Member
		from   *model.Type
	}
	var pending []relocation
	emptiedBySorting := make(map[*model.Type]bool)

	for _, ns := range assembly.Namespaces {
		for _, t := range ns.Types {
			hadExtension := false
			kept := t.Members[:0]
			for _, m := range t.Members {
				if m.IsExtension {
					hadExtension = true
					pending = append(pending, relocation{member: m, from: t})
					continue
				}
				kept = append(kept, m)
			}
			t.Members = kept
			if hadExtension && len(kept) == 0 {
				emptiedBySorting[t] = true
			}
		}
	}

	for _, r := range pending {
		m := r.member
		extended := m.Parameters[0].TypeDisplayName

		target, ok := tm.Lookup(extended)
		if !ok {
			if !opts.CreateExternalTypeReferences {
				diagnostics = append(diagnostics, model.Diagnostic{
					Kind:    model.DiagnosticReferenceUnresolved,
					Message: "extension method's extended type was not found in any loaded binary and shadow-type creation is disabled",
					Symbol:  r.from.FullName + "." + m.SimpleName,
				})
				continue
			}
			target = shadowType(extended, assembly)
		}

		stripFirstParam(m, extended)
		target.Members = append(target.Members, m)
		// A new shadow type can only be interned once it holds a member:
		// while empty it reads as a placeholder and Intern refuses it.
		// For a type already in tm this is a no-op.
		tm.Intern(target)
	}

	assembly.Namespaces = pruneEmpty(assembly.Namespaces, emptiedBySorting)
	return diagnostics
}

func stripFirstParam(m *model.Member, extended string) {
	m.ExtendedTypeName = extended
	rest := m.Parameters[1:]
	m.Parameters = rest
	m.DisplayName = compactDisplayModel(m.SimpleName, rest)
	mods := "public"
	if m.Visibility != model.VisibilityPublic {
		mods = m.Visibility.String()
	}
	m.Signature = mods + " static " + m.ReturnTypeDisplayName + " " + m.SimpleName + "(" + paramListModel(rest) + ")"
}

func compactDisplayModel(name string, params []*model.Parameter) string {
	args := make([]string, 0, len(params))
	for _, p := range params {
		args = append(args, p.TypeDisplayName)
	}
	return name + "(" + strings.Join(args, ", ") + ")"
}

func paramListModel(params []*model.Parameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.TypeDisplayName+" "+p.Name)
	}
	return strings.Join(parts, ", ")
}

// shadowType creates a minimal external-reference Type for an extended
// type this build never saw declared, so a relocated extension method
// still has somewhere to live (spec.md §4.4 "vendor type without a
// loaded binary"). Relocate interns it once the method has been added.
func shadowType(fullName string, assembly *model.Assembly) *model.Type {
	nsName, simple := splitFullName(fullName)
	shadow := &model.Type{
		SimpleName:          simple,
		FullName:            fullName,
		DisplaySignature:    simple,
		Kind:                model.TypeKindClass,
		IsExternalReference: true,
	}
	if vendor, ok := vendordocs.Lookup(fullName); ok {
		shadow.Summary = "Type declared in the " + vendor + " framework assembly."
		if url, ok := vendordocs.URL(fullName); ok {
			shadow.Remarks = "See the vendor documentation: " + url
		}
	} else {
		shadow.Summary = "Extended type declared outside the loaded binaries."
	}

	for _, ns := range assembly.Namespaces {
		if ns.FullName == nsName {
			ns.Types = append(ns.Types, shadow)
			return shadow
		}
	}
	ns := &model.Namespace{FullName: nsName, Types: []*model.Type{shadow}}
	assembly.Namespaces = append(assembly.Namespaces, ns)
	return shadow
}

func splitFullName(fullName string) (ns, simple string) {
	idx := strings.LastIndex(fullName, ".")
	if idx < 0 {
		return "", fullName
	}
	return fullName[:idx], fullName[idx+1:]
}

// pruneEmpty drops only the types that were pure extension-method hosts
// (tracked in emptied) and, in turn, any namespace left with nothing in
// it; a static class that still has other members, or that never held an
// extension method, is left alone even if it happens to be empty.
func pruneEmpty(namespaces []*model.Namespace, emptied map[*model.Type]bool) []*model.Namespace {
	out := namespaces[:0]
	for _, ns := range namespaces {
		types := ns.Types[:0]
		for _, t := range ns.Types {
			if emptied[t] {
				continue
			}
			types = append(types, t)
		}
		ns.Types = types
		if len(ns.Types) == 0 {
			continue
		}
		out = append(out, ns)
	}
	return out
}
