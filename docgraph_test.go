package docgraph

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/relaydocs/docgraph/model"
)

func sampleGraph() *model.Assembly {
	widget := &model.Type{
		SimpleName: "Widget", FullName: "Acme.Widgets.Widget", Kind: model.TypeKindClass,
		Members: []*model.Member{
			{SimpleName: "Spin", DisplayName: "Spin()", Kind: model.MemberKindMethod,
				Parameters: []*model.Parameter{{Name: "times", TypeDisplayName: "int"}}},
		},
	}
	internalType := &model.Type{
		SimpleName: "WidgetImpl", FullName: "Acme.Widgets.Internal.WidgetImpl", Kind: model.TypeKindClass,
	}
	return &model.Assembly{
		Name: "Widgets", DisplayName: "Widgets",
		Namespaces: []*model.Namespace{
			{FullName: "Acme.Widgets", Types: []*model.Type{widget}},
			{FullName: "Acme.Widgets.Internal", Types: []*model.Type{internalType}},
		},
	}
}

func TestExcludeTypesPrunesMatchingTypesAndEmptyNamespaces(t *testing.T) {
	asm := sampleGraph()
	excludeTypes(asm, []string{"Acme.Widgets.Internal.*"})

	if len(asm.Namespaces) != 1 {
		t.Fatalf("expected the now-empty Internal namespace to be pruned, got %d namespaces", len(asm.Namespaces))
	}
	if asm.Namespaces[0].FullName != "Acme.Widgets" {
		t.Fatalf("expected the surviving namespace to be Acme.Widgets, got %q", asm.Namespaces[0].FullName)
	}
}

func TestExcludeTypesNoopWhenNoPatterns(t *testing.T) {
	asm := sampleGraph()
	excludeTypes(asm, nil)
	if len(asm.Namespaces) != 2 {
		t.Fatalf("expected no pruning with an empty pattern list, got %d namespaces", len(asm.Namespaces))
	}
}

func TestWalkNodesVisitsEveryNodeKind(t *testing.T) {
	asm := sampleGraph()
	var kinds []string
	err := walkNodes(asm, func(n any) error {
		switch n.(type) {
		case *model.Assembly:
			kinds = append(kinds, "assembly")
		case *model.Namespace:
			kinds = append(kinds, "namespace")
		case *model.Type:
			kinds = append(kinds, "type")
		case *model.Member:
			kinds = append(kinds, "member")
		case *model.Parameter:
			kinds = append(kinds, "parameter")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walkNodes: %v", err)
	}
	want := map[string]bool{"assembly": true, "namespace": true, "type": true, "member": true, "parameter": true}
	for k := range want {
		found := false
		for _, got := range kinds {
			if got == k {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected walkNodes to visit a %s node, visited: %v", k, kinds)
		}
	}
}

func TestWalkNodesStopsAtFirstError(t *testing.T) {
	asm := sampleGraph()
	sentinel := errors.New("boom")
	calls := 0
	err := walkNodes(asm, func(n any) error {
		calls++
		if _, ok := n.(*model.Type); ok {
			return sentinel
		}
		return nil
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected the sentinel error to propagate, got %v", err)
	}
	// assembly, first namespace, first type: the walk must stop there.
	if calls != 3 {
		t.Fatalf("expected walkNodes to stop after the first type (3 calls), got %d", calls)
	}
}

func TestDefaultOptionsMatchSpecDefaults(t *testing.T) {
	o := DefaultOptions()
	if len(o.IncludedVisibilities) != 1 || o.IncludedVisibilities[0] != "public" {
		t.Fatalf("expected default included-visibilities = {public}, got %v", o.IncludedVisibilities)
	}
	if !o.IncludeObjectInheritance || !o.CreateExternalTypeReferences || !o.ShowPlaceholders {
		t.Fatalf("expected the three documented true-by-default flags to be true, got %+v", o)
	}
	if o.NamespaceMode != NamespaceModeFolder {
		t.Fatalf("expected default namespace mode to be folder")
	}
}

func TestLoadOptionsKeepsDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "opts.yaml")
	if err := os.WriteFile(path, []byte("conceptual-docs-enabled: true\nconceptual-path: ./conceptual\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	o, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if !o.ConceptualDocsEnabled || o.ConceptualPath != "./conceptual" {
		t.Fatalf("expected the configured fields to load, got %+v", o)
	}
	if !o.IncludeObjectInheritance || !o.CreateExternalTypeReferences || !o.ShowPlaceholders {
		t.Fatalf("expected omitted fields to keep their defaults, got %+v", o)
	}
}

func TestToBuilderOptionsDefaultsToPublicWhenUnset(t *testing.T) {
	o := Options{}
	bopts := o.toBuilderOptions()
	if !bopts.Visibilities[model.VisibilityPublic] {
		t.Fatalf("expected an empty IncludedVisibilities to fall back to public-only")
	}
}

func TestProcessRejectsEmptyTargets(t *testing.T) {
	orc := New()
	defer orc.Close()
	_, err := orc.Process(context.Background(), nil, DefaultOptions())
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for an empty target list, got %v", err)
	}
}

func TestCreatePlaceholdersRejectsEmptyTargets(t *testing.T) {
	orc := New()
	defer orc.Close()
	_, err := orc.CreatePlaceholders(context.Background(), nil, DefaultOptions())
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for an empty target list, got %v", err)
	}
}

func TestProcessReturnsCancelledForAlreadyCancelledContext(t *testing.T) {
	orc := New()
	defer orc.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orc.Process(ctx, []Target{{BinaryPath: "nonexistent.dll"}}, DefaultOptions())
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled for an already-cancelled context, got %v", err)
	}
}

func TestBuildAllReturnsCancelledForAlreadyCancelledContext(t *testing.T) {
	orc := New()
	defer orc.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancelled before the call, so buildAll's pre-start check returns

	_, _, err := orc.buildAll(ctx, []Target{{BinaryPath: "nonexistent.dll"}}, DefaultOptions())
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}
