// Package xref builds a lookup map over a merged documentation graph and
// resolves raw XML-doc cref strings into model.Reference values a
// renderer can turn into hyperlinks.
package xref

import (
	"path"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/relaydocs/docgraph/model"
)

// Resolver owns the canonical-ID lookup map built by Index and answers
// Resolve queries against it. It is built once over the merged graph,
// after the Merger (merge/) has combined all per-binary assemblies.
type Resolver struct {
	ids *orderedmap.OrderedMap[string, entry]

	// pathPrefix is joined onto a resolved RelativePath that does not
	// collapse to a same-directory filename, letting a
	// caller mount the API reference tree under a sub-path of its own
	// site (spec.md §6's "api-reference-path"). Empty by default.
	pathPrefix string
}

// entry is what Index stores per key: the resolved reference shape plus
// its root-relative path, computed once at index time rather than
// re-derived from a Target type switch at resolve time.
type entry struct {
	kind        model.ReferenceKind
	displayName string
	path        string // root-relative; "" for a namespace/assembly node
	anchor      string
	target      any
}

// New creates an empty Resolver.
func New() *Resolver {
	return &Resolver{ids: orderedmap.New[string, entry]()}
}

// SetPathPrefix configures the directory segment prepended to resolved
// RelativePaths (other than same-directory filenames) from this point
// forward.
func (r *Resolver) SetPathPrefix(prefix string) {
	r.pathPrefix = prefix
}

func (r *Resolver) register(key string, e entry) {
	if key == "" {
		return
	}
	if _, exists := r.ids.Get(key); exists {
		return
	}
	r.ids.Set(key, e)
}

// Index walks one assembly's namespace tree and registers every
// canonical ID, plus (for types) the un-prefixed full name and simple
// name, plus (for enum values) the TypeFullName.Value and F:-prefixed
// forms, per spec.md §4.5 step 1. First write wins throughout.
func (r *Resolver) Index(assembly *model.Assembly) {
	r.register("A:"+assembly.Name, entry{
		kind: model.ReferenceKindNamespace, displayName: assembly.Name, target: assembly,
	})

	for _, ns := range assembly.Namespaces {
		r.register("N:"+ns.FullName, entry{
			kind: model.ReferenceKindNamespace, displayName: ns.FullName, target: ns,
		})
		for _, t := range ns.Types {
			r.indexType(t)
		}
	}
}

func (r *Resolver) indexType(t *model.Type) {
	p := typePath(t)
	ref := entry{kind: model.ReferenceKindType, displayName: t.SimpleName, path: p, target: t}

	r.register("T:"+t.FullName, ref)
	r.register(t.FullName, ref)
	r.register(t.SimpleName, ref)

	if t.Kind == model.TypeKindEnum {
		for _, ev := range t.Values {
			evRef := entry{kind: model.ReferenceKindField, displayName: ev.Name, path: p, anchor: strings.ToLower(ev.Name), target: ev}
			r.register(t.FullName+"."+ev.Name, evRef)
			r.register("F:"+t.FullName+"."+ev.Name, evRef)
		}
	}

	for _, m := range t.Members {
		id := memberID(t, m)
		r.register(id, entry{
			kind:        memberReferenceKind(m.Kind),
			displayName: m.DisplayName,
			path:        p,
			anchor:      strings.ToLower(m.SimpleName),
			target:      m,
		})
	}
}

func memberReferenceKind(k model.MemberKind) model.ReferenceKind {
	switch k {
	case model.MemberKindField:
		return model.ReferenceKindField
	case model.MemberKindProperty:
		return model.ReferenceKindProperty
	case model.MemberKindEvent:
		return model.ReferenceKindEvent
	default:
		return model.ReferenceKindMethod
	}
}

// memberID reconstructs the canonical-ID shape idents.go's
// memberCanonicalID produces, except that constructor names keep their
// ".ctor"/".cctor" spelling and parameter types here come from
// model.Parameter.TypeDisplayName (the C# display form) rather than the
// ECMA canonical form the metadata layer no longer has by this point in
// the pipeline. An overloaded method's non-first overloads may therefore
// fail to resolve against a cref written with canonical parameter type
// names (e.g. "System.Int32" vs. our indexed "int") — see DESIGN.md.
func memberID(t *model.Type, m *model.Member) string {
	prefix := "M"
	switch m.Kind {
	case model.MemberKindField:
		prefix = "F"
	case model.MemberKindProperty:
		prefix = "P"
	case model.MemberKindEvent:
		prefix = "E"
	}
	base := prefix + ":" + t.FullName + "." + m.SimpleName
	if len(m.Parameters) == 0 {
		return base
	}
	parts := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		parts[i] = p.TypeDisplayName
	}
	return base + "(" + strings.Join(parts, ",") + ")"
}

func typePath(t *model.Type) string {
	return strings.ReplaceAll(t.FullName, ".", "/") + ".md"
}

// Resolve converts one raw cref string into a model.Reference, relative
// to fromPath (the root-relative path of the page doing the referencing),
// per spec.md §4.5 steps 2-4.
func (r *Resolver) Resolve(raw, fromPath string) *model.Reference {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return &model.Reference{Raw: raw, Kind: model.ReferenceKindExternal, DisplayName: raw, Resolved: true}
	}

	unprefixed := stripPrefix(raw)

	if e, ok := r.ids.Get(raw); ok {
		return r.materialize(e, raw, fromPath)
	}
	if e, ok := r.ids.Get(unprefixed); ok {
		return r.materialize(e, raw, fromPath)
	}
	if idx := strings.IndexByte(unprefixed, '('); idx >= 0 {
		if e, ok := r.ids.Get(unprefixed[:idx]); ok {
			return r.materialize(e, raw, fromPath)
		}
	}
	if url, ok := vendorURL(unprefixed); ok {
		return &model.Reference{
			Raw: raw, Kind: model.ReferenceKindFramework,
			DisplayName: stripGenericArity(trailingSegment(unprefixed)), RelativePath: url, Resolved: true,
		}
	}

	return &model.Reference{
		Raw: raw, Kind: model.ReferenceKindUnknown,
		DisplayName: stripGenericArity(trailingSegment(unprefixed)),
		Anchor:      heuristicAnchor(unprefixed),
		Resolved:    false,
	}
}

func (r *Resolver) materialize(e entry, raw, fromPath string) *model.Reference {
	rel := e.path
	if rel != "" && path.Dir(rel) == path.Dir(fromPath) {
		rel = path.Base(rel)
	} else if rel != "" && r.pathPrefix != "" {
		rel = path.Join(r.pathPrefix, rel)
	}
	return &model.Reference{
		Raw:          raw,
		Kind:         e.kind,
		DisplayName:  e.displayName,
		RelativePath: rel,
		Anchor:       e.anchor,
		Resolved:     true,
		Target:       e.target,
	}
}

// stripPrefix removes a leading "X:" two-character canonical-ID prefix,
// if present; any other string passes through unchanged.
func stripPrefix(s string) string {
	if len(s) > 1 && s[1] == ':' {
		return s[2:]
	}
	return s
}

func trailingSegment(s string) string {
	if idx := strings.LastIndexByte(s, '.'); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// stripGenericArity removes a trailing ECMA-335 canonical-ID generic-arity
// marker ("List`1" -> "List") so an unresolved or vendor-fallback display
// name reads the way a C# author would write the open generic's name
// (spec.md §8 scenario S5: display name "List", not "List`1").
func stripGenericArity(s string) string {
	idx := strings.LastIndexByte(s, '`')
	if idx < 0 {
		return s
	}
	if _, err := strconv.Atoi(s[idx+1:]); err != nil {
		return s
	}
	return s[:idx]
}

// heuristicAnchor implements spec.md §4.5 step 4's fallback for an
// unresolved string: the trailing dot-segment, but only when it starts
// lowercase (a crude signal that it names a member rather than a type).
func heuristicAnchor(s string) string {
	seg := trailingSegment(s)
	if seg == "" {
		return ""
	}
	c := seg[0]
	if c >= 'a' && c <= 'z' {
		return seg
	}
	return ""
}
