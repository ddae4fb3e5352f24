// Package builder turns a loader.Result into a linked model.Assembly:
// accessibility filtering, enum/type-kind detection, reference-only
// placeholders for every parameter and return-type slot, the three fixed
// signature forms, and the per-build TypeMap invariant §4.3 requires.
package builder

import (
	"github.com/relaydocs/docgraph/intern"
	"github.com/relaydocs/docgraph/loader"
	"github.com/relaydocs/docgraph/metadata"
	"github.com/relaydocs/docgraph/model"
	"github.com/relaydocs/docgraph/xmldoc"
)

// Build consumes one loader.Result and produces the Assembly node and its
// TypeMap (first-class types only, per invariant §3/§4.3). Symbol
// resolution faults for individual members never abort the build
// (spec.md §4.3 "Failure semantics"); they are appended to
// Assembly.Diagnostics.
func Build(binaryName string, res *loader.Result, opts Options) (*model.Assembly, *model.TypeMap) {
	asm := res.Assembly
	doc := res.Doc

	assembly := &model.Assembly{
		Name:        asm.Name,
		Version:     asm.Version,
		DisplayName: asm.Name,
		Diagnostics: append([]model.Diagnostic(nil), res.Diagnostics...),
	}

	tm := model.NewTypeMap()
	nsIndex := make(map[string]*model.Namespace)
	var nsOrder []string

	// A large assembly repeats the same handful of type-name strings
	// (return types like "void"/"string", namespace prefixes, base-type
	// names) across thousands of members; tbl dedupes their backing
	// storage across this one Build call.
	tbl := &intern.Table{}

	// kept pairs each surviving type with the metadata.TypeSymbol it came
	// from, so the inherited-member walk below can run as its own pass
	// once every first-class type is interned - ECMA-335 does not
	// guarantee a base TypeDef appears before its derived TypeDef, so
	// walkInherited cannot safely run inline in the loop that interns
	// types (a base declared later would not be in tm yet).
	var kept []struct {
		t  *model.Type
		ts metadata.TypeSymbol
	}

	for _, ts := range asm.Types {
		vis := parseVisibility(ts.Visibility)
		kind := parseTypeKind(ts.Kind)

		t := &model.Type{
			SimpleName:          tbl.String(ts.SimpleName),
			FullName:            tbl.String(joinNonEmpty(ts.Namespace, ts.SimpleName)),
			DisplaySignature:    ts.SimpleName,
			Kind:                kind,
			AssemblyName:        binaryName,
			BaseTypeDisplayName: tbl.String(ts.BaseType),
		}

		// A type compiled as static (sealed+abstract is the C# compiler's
		// only encoding of "static class"; there is no dedicated TypeDef
		// flag) is the sole place extension methods can be declared, so
		// this is the heuristic substitute for decoding the ExtensionAttribute
		// custom attribute, which this reader does not decode at all.
		isStaticClass := ts.IsSealed && ts.IsAbstract

		if doc != nil {
			if raw, ok := doc.Members[typeCanonicalID(ts.Namespace, ts.SimpleName)]; ok {
				frag, _, diags := xmldoc.ParseFragment(raw)
				t.DocFragment = frag
				assembly.Diagnostics = append(assembly.Diagnostics, withSymbol(diags, t.FullName)...)
			}
		}

		if kind == model.TypeKindEnum {
			for _, ev := range ts.EnumValues {
				t.Values = append(t.Values, &model.EnumValue{Name: ev.Name})
			}
		}

		if !opts.allows(vis) {
			// The type itself is filtered out, but traversal into its
			// namespace still happened above the loop (spec.md §3
			// "recursion continues into nested namespaces unconditionally"
			// - there is no nesting of namespaces in the flattened
			// metadata layer, so this is a no-op for type-level filtering
			// beyond simply not emitting the type).
			continue
		}

		for _, gm := range groupMembers(ts.Members) {
			if !opts.allows(gm.visibility) {
				continue
			}
			m := buildMember(ts, gm, doc, &assembly.Diagnostics, tbl)
			if isStaticClass && gm.kind == model.MemberKindMethod && gm.isStatic && len(gm.params) > 0 {
				m.IsExtension = true
			}
			t.Members = append(t.Members, m)
		}

		ns, ok := nsIndex[ts.Namespace]
		if !ok {
			ns = &model.Namespace{FullName: ts.Namespace}
			nsIndex[ts.Namespace] = ns
			nsOrder = append(nsOrder, ts.Namespace)
		}
		ns.Types = append(ns.Types, t)
		tm.Intern(t)
		kept = append(kept, struct {
			t  *model.Type
			ts metadata.TypeSymbol
		}{t, ts})
	}

	if opts.IncludeInherited {
		for _, k := range kept {
			walkInherited(k.t, k.ts, tm, opts)
		}
	}

	for _, name := range nsOrder {
		ns := nsIndex[name]
		if len(ns.Types) == 0 {
			continue
		}
		assembly.Namespaces = append(assembly.Namespaces, ns)
	}

	return assembly, tm
}

func withSymbol(diags []model.Diagnostic, symbol string) []model.Diagnostic {
	for i := range diags {
		if diags[i].Symbol == "" {
			diags[i].Symbol = symbol
		}
	}
	return diags
}

func buildMember(ts metadata.TypeSymbol, gm groupedMember, doc *xmldoc.Doc, diagnostics *[]model.Diagnostic, tbl *intern.Table) *model.Member {
	m := &model.Member{
		SimpleName:            gm.name,
		Kind:                  gm.kind,
		MethodKind:            gm.methodKind,
		Visibility:            gm.visibility,
		ReturnTypeDisplayName: tbl.String(gm.returnType),
		DeclaringTypeName:     tbl.String(joinNonEmpty(ts.Namespace, ts.SimpleName)),
	}

	if gm.returnType != "" && gm.returnType != "void" {
		m.ReturnTypeRef = model.NewPlaceholderType(lastSegment(gm.returnType), gm.returnType, gm.returnType)
	}

	for _, p := range gm.params {
		typeName := tbl.String(p.TypeName)
		param := &model.Parameter{
			Name:            p.Name,
			TypeDisplayName: typeName,
			Display:         typeName + " " + p.Name,
			TypeRef:         model.NewPlaceholderType(lastSegment(typeName), typeName, typeName),
		}
		m.Parameters = append(m.Parameters, param)
	}

	switch gm.kind {
	case model.MemberKindField:
		m.DisplayName = gm.name
		m.Signature = fieldSignature(m.Visibility.String(), gm.isStatic, gm.returnType, gm.name)
	case model.MemberKindProperty:
		m.DisplayName = gm.name
		m.Signature = propertySignature(m.Visibility.String(), gm.returnType, gm.name, gm.hasGetter, gm.hasSetter)
	case model.MemberKindEvent:
		m.DisplayName = gm.name
		m.Signature = eventSignature(m.Visibility.String(), gm.returnType, gm.name)
	default: // method
		m.DisplayName = compactDisplay(gm.name, gm.params)
		if gm.methodKind == model.MethodKindConstructor || gm.methodKind == model.MethodKindStaticConstructor {
			m.Signature = constructorSignature(m.Visibility.String(), ts.SimpleName, gm.params)
		} else {
			m.Signature = detailedSignature(m.Visibility.String(), gm.isStatic, gm.isAbstract, gm.returnType, gm.name, gm.params)
		}
		m.Abstract = gm.isAbstract
	}

	if gm.limitation {
		*diagnostics = append(*diagnostics, model.Diagnostic{
			Kind:    model.DiagnosticSignatureDecodeLimitation,
			Message: "one or more types in this member's signature used an encoding this reader degrades to \"object\"",
			Symbol:  joinNonEmpty(ts.Namespace, ts.SimpleName) + "." + gm.name,
		})
	}

	if doc == nil || gm.sourceMethodName == "" {
		return m
	}

	var prefix string
	switch gm.kind {
	case model.MemberKindField:
		prefix = "F"
	case model.MemberKindProperty:
		prefix = "P"
	case model.MemberKindEvent:
		prefix = "E"
	default:
		prefix = "M"
	}
	key := memberCanonicalID(prefix, ts.Namespace, ts.SimpleName, gm.sourceMethodName, gm.params)
	if raw, ok := doc.Members[key]; ok {
		frag, paramDocs, diags := xmldoc.ParseFragment(raw)
		m.DocFragment = frag
		*diagnostics = append(*diagnostics, withSymbol(diags, m.DeclaringTypeName+"."+m.SimpleName)...)
		for _, p := range m.Parameters {
			if usage, ok := paramDocs[p.Name]; ok {
				p.Usage = usage
			}
		}
	}

	return m
}

func lastSegment(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i+1:]
		}
	}
	return name
}

// walkInherited appends non-implicit members from the base-type chain
// that survive accessibility filtering (public/protected always pass;
// internal unions only when the base type shares the same binary).
// The walk stops at System.Object: no members of the root object type
// are added, whether or not IncludeObjectInheritance is set.
func walkInherited(t *model.Type, ts metadata.TypeSymbol, tm *model.TypeMap, opts Options) {
	base := ts.BaseType
	for base != "" && base != "System.Object" {
		baseType, ok := tm.Lookup(base)
		if !ok {
			return // base type not in this build; nothing more to walk
		}
		for _, bm := range baseType.Members {
			if !inheritedAccessible(bm.Visibility, baseType.IsExternalReference) {
				continue
			}
			inherited := *bm
			inherited.Inherited = true
			inherited.DeclaringTypeName = baseType.FullName
			t.Members = append(t.Members, &inherited)
		}
		base = baseType.BaseTypeDisplayName
	}
	if opts.IncludeObjectInheritance && base == "System.Object" {
		// The root object type is never one of the loaded binaries' own
		// types, so there is nothing in the TypeMap to walk into; this is
		// the degenerate case spec.md §4.3 calls "error-object", handled
		// here by simply stopping rather than fabricating Object's members.
	}
}

func inheritedAccessible(v model.Visibility, baseIsExternal bool) bool {
	switch v {
	case model.VisibilityPublic, model.VisibilityProtected, model.VisibilityProtectedOrInternal, model.VisibilityProtectedAndInternal:
		return true
	case model.VisibilityInternal:
		return !baseIsExternal
	default:
		return false
	}
}
