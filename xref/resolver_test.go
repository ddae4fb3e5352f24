package xref

import (
	"testing"

	"github.com/relaydocs/docgraph/model"
)

func sampleGraph() *model.Assembly {
	widget := &model.Type{
		SimpleName: "Widget", FullName: "Acme.Widgets.Widget", Kind: model.TypeKindClass,
		Members: []*model.Member{
			{SimpleName: "Spin", DisplayName: "Spin()", Kind: model.MemberKindMethod},
		},
	}
	color := &model.Type{
		SimpleName: "Color", FullName: "Acme.Widgets.Color", Kind: model.TypeKindEnum,
		Values: []*model.EnumValue{{Name: "Red"}, {Name: "Blue"}},
	}
	ns := &model.Namespace{FullName: "Acme.Widgets", Types: []*model.Type{widget, color}}
	return &model.Assembly{Name: "Widgets", Namespaces: []*model.Namespace{ns}}
}

func TestResolveExactCanonicalID(t *testing.T) {
	graph := sampleGraph()
	widget := graph.Namespaces[0].Types[0]
	r := New()
	r.Index(graph)

	ref := r.Resolve("T:Acme.Widgets.Widget", "Acme/Other.md")
	if !ref.Resolved {
		t.Fatalf("expected canonical type ID to resolve")
	}
	if ref.Kind != model.ReferenceKindType {
		t.Fatalf("expected ReferenceKindType, got %v", ref.Kind)
	}
	if ref.Target != widget {
		t.Fatalf("expected Target to be the same node registered under this ID, got %+v", ref.Target)
	}
	if ref.DisplayName != widget.SimpleName {
		t.Fatalf("expected DisplayName to equal the node's simple name %q, got %q", widget.SimpleName, ref.DisplayName)
	}
}

func TestResolveUnprefixedFallsBackToFullName(t *testing.T) {
	r := New()
	r.Index(sampleGraph())

	ref := r.Resolve("Acme.Widgets.Widget", "")
	if !ref.Resolved {
		t.Fatalf("expected un-prefixed full name to resolve")
	}
}

func TestResolveSameDirectoryCollapsesToFilename(t *testing.T) {
	r := New()
	r.Index(sampleGraph())

	ref := r.Resolve("T:Acme.Widgets.Widget", "Acme/Widgets/Color.md")
	if ref.RelativePath != "Widget.md" {
		t.Fatalf("expected same-directory reference to collapse to bare filename, got %q", ref.RelativePath)
	}
}

func TestResolveVendorURLFallback(t *testing.T) {
	r := New()
	r.Index(sampleGraph())

	ref := r.Resolve("T:System.Collections.Generic.List`1", "")
	if !ref.Resolved || ref.Kind != model.ReferenceKindFramework {
		t.Fatalf("expected a framework reference for an unknown System type, got %+v", ref)
	}
	want := "https://learn.microsoft.com/en-us/dotnet/api/system.collections.generic.list-1"
	if ref.RelativePath != want {
		t.Fatalf("expected the vendor URL with `1 rewritten to -1 and lowercased, got %q, want %q", ref.RelativePath, want)
	}
	if ref.DisplayName != "List" {
		t.Fatalf("expected display name List (arity marker stripped), got %q", ref.DisplayName)
	}
}

func TestResolveUnknownStringIsUnresolved(t *testing.T) {
	r := New()
	r.Index(sampleGraph())

	ref := r.Resolve("T:NoSuchNamespace.NoSuchType", "")
	if ref.Resolved {
		t.Fatalf("expected unresolved reference for an unindexed, non-vendor type")
	}
}

func TestEnumValueResolvesByDottedForm(t *testing.T) {
	r := New()
	r.Index(sampleGraph())

	ref := r.Resolve("Acme.Widgets.Color.Red", "")
	if !ref.Resolved {
		t.Fatalf("expected enum value dotted form to resolve")
	}
	ref2 := r.Resolve("F:Acme.Widgets.Color.Red", "")
	if !ref2.Resolved {
		t.Fatalf("expected F:-prefixed enum value form to resolve")
	}
}
