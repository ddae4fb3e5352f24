package builder

import (
	"testing"

	"github.com/relaydocs/docgraph/loader"
	"github.com/relaydocs/docgraph/metadata"
	"github.com/relaydocs/docgraph/model"
	"github.com/relaydocs/docgraph/xmldoc"
)

func sampleAssembly() *metadata.AssemblySymbol {
	return &metadata.AssemblySymbol{
		Name:    "Widgets",
		Version: "1.0.0.0",
		Types: []metadata.TypeSymbol{
			{
				Namespace:  "Acme.Widgets",
				SimpleName: "Widget",
				Visibility: "public",
				Kind:       "class",
				BaseType:   "System.Object",
				Members: []metadata.MemberSymbol{
					{Kind: "constructor", Name: ".ctor", Visibility: "public"},
					{Kind: "method", Name: "Spin", Visibility: "public", ReturnType: "Widget"},
					{Kind: "method", Name: "Describe", Visibility: "internal", ReturnType: "string"},
					{Kind: "accessor", Name: "get_Name", Visibility: "public", ReturnType: "string"},
					{Kind: "accessor", Name: "set_Name", Visibility: "public", Parameters: []metadata.ParamSymbol{{Name: "value", TypeName: "string"}}},
				},
			},
		},
	}
}

func TestBuildFiltersByVisibility(t *testing.T) {
	res := &loader.Result{Assembly: sampleAssembly()}
	asm, _ := Build("Widgets.dll", res, DefaultOptions())

	if len(asm.Namespaces) != 1 {
		t.Fatalf("expected 1 namespace, got %d", len(asm.Namespaces))
	}
	typ := asm.Namespaces[0].Types[0]
	for _, m := range typ.Members {
		if m.SimpleName == "Describe" {
			t.Fatalf("internal method Describe should have been filtered out under default (public-only) options")
		}
	}
}

func TestBuildFoldsAccessorsIntoProperty(t *testing.T) {
	res := &loader.Result{Assembly: sampleAssembly()}
	asm, _ := Build("Widgets.dll", res, DefaultOptions())

	typ := asm.Namespaces[0].Types[0]
	var found *model.Member
	for _, m := range typ.Members {
		if m.SimpleName == "Name" {
			found = m
		}
	}
	if found == nil {
		t.Fatalf("expected a folded Name property, got members: %+v", typ.Members)
	}
	if found.Kind != model.MemberKindProperty {
		t.Fatalf("expected MemberKindProperty, got %v", found.Kind)
	}
}

func TestBuildReturnTypeIsUninternedPlaceholder(t *testing.T) {
	res := &loader.Result{Assembly: sampleAssembly()}
	asm, tm := Build("Widgets.dll", res, DefaultOptions())

	typ := asm.Namespaces[0].Types[0]
	var spin *model.Member
	for _, m := range typ.Members {
		if m.SimpleName == "Spin" {
			spin = m
		}
	}
	if spin == nil {
		t.Fatalf("expected Spin method in output")
	}
	if spin.ReturnTypeRef == nil {
		t.Fatalf("expected a non-nil return-type placeholder")
	}
	if !spin.ReturnTypeRef.IsPlaceholder() {
		t.Fatalf("Spin returns its own declaring type; the return ref must be a fresh placeholder, not the interned type")
	}
	if _, ok := tm.Lookup("Acme.Widgets.Widget"); !ok {
		t.Fatalf("Widget itself should still be interned once")
	}
	if spin.ReturnTypeRef == typ {
		t.Fatalf("self-referencing return type must never alias the interned Type node (would create a cycle)")
	}
}

func TestBuildAttachesXmlDocByCanonicalID(t *testing.T) {
	doc := &xmldoc.Doc{
		Members: map[string]string{
			"M:Acme.Widgets.Widget.Spin": `<summary>Makes the widget spin.</summary>`,
		},
	}
	res := &loader.Result{Assembly: sampleAssembly(), Doc: doc}
	asm, _ := Build("Widgets.dll", res, DefaultOptions())

	typ := asm.Namespaces[0].Types[0]
	for _, m := range typ.Members {
		if m.SimpleName == "Spin" {
			if m.Summary != "Makes the widget spin." {
				t.Fatalf("expected Spin's doc summary to be attached, got %q", m.Summary)
			}
		}
	}
}

func staticHostAssembly() *metadata.AssemblySymbol {
	return &metadata.AssemblySymbol{
		Name: "Extensions",
		Types: []metadata.TypeSymbol{
			{
				Namespace:  "Acme.Widgets",
				SimpleName: "Widget",
				Visibility: "public",
				Kind:       "class",
				BaseType:   "System.Object",
			},
			{
				Namespace:  "Acme.Widgets.Extensions",
				SimpleName: "WidgetExtensions",
				Visibility: "public",
				Kind:       "class",
				BaseType:   "System.Object",
				IsSealed:   true,
				IsAbstract: true,
				Members: []metadata.MemberSymbol{
					{
						Kind:       "method",
						Name:       "Spin",
						Visibility: "public",
						IsStatic:   true,
						ReturnType: "void",
						Parameters: []metadata.ParamSymbol{
							{Name: "widget", TypeName: "Acme.Widgets.Widget", Position: 0},
							{Name: "times", TypeName: "int", Position: 1},
						},
					},
				},
			},
		},
	}
}

func TestRelocateMovesExtensionMethodAndStripsReceiver(t *testing.T) {
	res := &loader.Result{Assembly: staticHostAssembly()}
	opts := DefaultOptions()
	asm, tm := Build("Extensions.dll", res, opts)
	Relocate(asm, tm, opts)

	widget, ok := tm.Lookup("Acme.Widgets.Widget")
	if !ok {
		t.Fatalf("expected Widget to still be interned")
	}
	var spin *model.Member
	for _, m := range widget.Members {
		if m.SimpleName == "Spin" {
			spin = m
		}
	}
	if spin == nil {
		t.Fatalf("expected Spin to have been relocated onto Widget, got members: %+v", widget.Members)
	}
	if len(spin.Parameters) != 1 || spin.Parameters[0].Name != "times" {
		t.Fatalf("expected the receiver parameter to be stripped, got %+v", spin.Parameters)
	}

	for _, ns := range asm.Namespaces {
		for _, typ := range ns.Types {
			if typ.SimpleName == "WidgetExtensions" {
				t.Fatalf("expected the now-empty static host type to be pruned")
			}
		}
	}
}

func vendorExtensionAssembly() *metadata.AssemblySymbol {
	return &metadata.AssemblySymbol{
		Name: "Extensions",
		Types: []metadata.TypeSymbol{
			{
				Namespace:  "Acme.Extensions",
				SimpleName: "IntExtensions",
				Visibility: "public",
				Kind:       "class",
				BaseType:   "System.Object",
				IsSealed:   true,
				IsAbstract: true,
				Members: []metadata.MemberSymbol{
					{
						Kind:       "method",
						Name:       "Doubled",
						Visibility: "public",
						IsStatic:   true,
						ReturnType: "int",
						Parameters: []metadata.ParamSymbol{
							{Name: "x", TypeName: "System.Int32", Position: 0},
						},
					},
				},
			},
		},
	}
}

func enumAssembly() *metadata.AssemblySymbol {
	return &metadata.AssemblySymbol{
		Name: "Widgets",
		Types: []metadata.TypeSymbol{
			{
				Namespace:  "Acme.Widgets",
				SimpleName: "Color",
				Visibility: "public",
				Kind:       "enum",
				BaseType:   "System.Enum",
				EnumValues: []metadata.EnumValueSymbol{
					{Name: "Red"},
					{Name: "Green"},
					{Name: "Blue"},
				},
			},
		},
	}
}

func TestBuildEnumValuesPreserveDeclaredOrder(t *testing.T) {
	res := &loader.Result{Assembly: enumAssembly()}
	asm, _ := Build("Widgets.dll", res, DefaultOptions())

	typ := asm.Namespaces[0].Types[0]
	if typ.Kind != model.TypeKindEnum {
		t.Fatalf("expected TypeKindEnum, got %v", typ.Kind)
	}
	if len(typ.Values) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(typ.Values))
	}
	want := []string{"Red", "Green", "Blue"}
	for i, ev := range typ.Values {
		if ev.Name != want[i] {
			t.Fatalf("expected declared order %v, got %+v", want, typ.Values)
		}
	}
	// Flags/underlying-type are always left unset: metadata/ decodes no
	// custom attributes (FlagsAttribute) and no value__ field typing, so
	// this is the achievable subset of the flags-enum scenario.
	if typ.Flags {
		t.Fatalf("Flags should remain false; custom-attribute decoding is not implemented")
	}
	if typ.UnderlyingType != nil {
		t.Fatalf("UnderlyingType should remain nil; enum field typing is not implemented")
	}
}

func baseDerivedAssembly() *metadata.AssemblySymbol {
	return &metadata.AssemblySymbol{
		Name: "Widgets",
		Types: []metadata.TypeSymbol{
			{
				Namespace:  "Acme.Widgets",
				SimpleName: "Base",
				Visibility: "public",
				Kind:       "class",
				BaseType:   "System.Object",
				Members: []metadata.MemberSymbol{
					{Kind: "method", Name: "Pub", Visibility: "public", ReturnType: "void"},
					{Kind: "method", Name: "Secret", Visibility: "internal", ReturnType: "void"},
					{Kind: "method", Name: "Hidden", Visibility: "private", ReturnType: "void"},
				},
			},
			{
				Namespace:  "Acme.Widgets",
				SimpleName: "Derived",
				Visibility: "public",
				Kind:       "class",
				BaseType:   "Acme.Widgets.Base",
			},
		},
	}
}

func TestWalkInheritedAppliesDerivedTypeAccessibilityRule(t *testing.T) {
	res := &loader.Result{Assembly: baseDerivedAssembly()}
	opts := DefaultOptions()
	opts.IncludeInherited = true
	asm, _ := Build("Widgets.dll", res, opts)

	var derived *model.Type
	for _, ns := range asm.Namespaces {
		for _, t := range ns.Types {
			if t.SimpleName == "Derived" {
				derived = t
			}
		}
	}
	if derived == nil {
		t.Fatalf("expected Derived type in output")
	}

	seen := map[string]bool{}
	for _, m := range derived.Members {
		seen[m.SimpleName] = true
		if !m.Inherited {
			t.Fatalf("expected %s to be marked Inherited", m.SimpleName)
		}
	}
	if !seen["Pub"] {
		t.Fatalf("expected the public base member to be inherited, got %+v", derived.Members)
	}
	if !seen["Secret"] {
		t.Fatalf("expected the internal base member to be inherited (same-assembly base), got %+v", derived.Members)
	}
	if seen["Hidden"] {
		t.Fatalf("expected the private base member to never be inherited, got %+v", derived.Members)
	}
}

func derivedBeforeBaseAssembly() *metadata.AssemblySymbol {
	asm := baseDerivedAssembly()
	asm.Types[0], asm.Types[1] = asm.Types[1], asm.Types[0]
	return asm
}

// TestWalkInheritedToleratesDerivedDeclaredBeforeBase proves inherited-member
// collection does not depend on TypeDef declaration order: ECMA-335 never
// guarantees a base type's TypeDef precedes its derived type's.
func TestWalkInheritedToleratesDerivedDeclaredBeforeBase(t *testing.T) {
	res := &loader.Result{Assembly: derivedBeforeBaseAssembly()}
	opts := DefaultOptions()
	opts.IncludeInherited = true
	asm, _ := Build("Widgets.dll", res, opts)

	var derived *model.Type
	for _, ns := range asm.Namespaces {
		for _, t := range ns.Types {
			if t.SimpleName == "Derived" {
				derived = t
			}
		}
	}
	if derived == nil {
		t.Fatalf("expected Derived type in output")
	}

	seen := map[string]bool{}
	for _, m := range derived.Members {
		seen[m.SimpleName] = true
	}
	if !seen["Pub"] {
		t.Fatalf("expected the public base member to be inherited even though Derived's TypeDef came first, got %+v", derived.Members)
	}
	if !seen["Secret"] {
		t.Fatalf("expected the internal base member to be inherited even though Derived's TypeDef came first, got %+v", derived.Members)
	}
	if seen["Hidden"] {
		t.Fatalf("expected the private base member to never be inherited, got %+v", derived.Members)
	}
}

func TestRelocateCreatesVendorShadowType(t *testing.T) {
	res := &loader.Result{Assembly: vendorExtensionAssembly()}
	opts := DefaultOptions()
	asm, tm := Build("Extensions.dll", res, opts)
	Relocate(asm, tm, opts)

	shadow, ok := tm.Lookup("System.Int32")
	if !ok {
		t.Fatalf("expected a shadow type for System.Int32 to be interned")
	}
	if !shadow.IsExternalReference {
		t.Fatalf("shadow type must be marked external")
	}
	if shadow.Summary == "" || shadow.Remarks == "" {
		t.Fatalf("expected vendor-aware summary and remarks on the shadow type, got %+v", shadow.DocFragment)
	}
	var doubled *model.Member
	for _, m := range shadow.Members {
		if m.SimpleName == "Doubled" {
			doubled = m
		}
	}
	if doubled == nil {
		t.Fatalf("expected Doubled to be relocated onto the shadow Int32 type")
	}
}
