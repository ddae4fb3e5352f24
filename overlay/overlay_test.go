package overlay

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/relaydocs/docgraph/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestApplyAttachesUsageAndRelatedAPIs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Acme", "Widgets", "Widget", "usage.md"), "Use Widget for spinning things.")
	writeFile(t, filepath.Join(root, "Acme", "Widgets", "Widget", "related-apis.md"), "# comment\nGadget\n\nGizmo\n")

	widget := &model.Type{SimpleName: "Widget", FullName: "Acme.Widgets.Widget"}
	ns := &model.Namespace{FullName: "Acme.Widgets", Types: []*model.Type{widget}}
	assembly := &model.Assembly{Name: "Widgets", Namespaces: []*model.Namespace{ns}}

	if err := Apply(context.Background(), root, assembly, Options{}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if widget.Usage != "Use Widget for spinning things." {
		t.Fatalf("expected usage to attach, got %q", widget.Usage)
	}
	if len(widget.RelatedAPIs) != 2 || widget.RelatedAPIs[0] != "Gadget" {
		t.Fatalf("expected related APIs [Gadget Gizmo], got %v", widget.RelatedAPIs)
	}
}

func TestApplySkipsPlaceholderByDefault(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Acme", "Widgets", "Widget", "usage.md"),
		"<!-- TODO: REMOVE THIS COMMENT AFTER YOU CUSTOMIZE THIS CONTENT -->\nplaceholder body")

	widget := &model.Type{SimpleName: "Widget", FullName: "Acme.Widgets.Widget"}
	ns := &model.Namespace{FullName: "Acme.Widgets", Types: []*model.Type{widget}}
	assembly := &model.Assembly{Name: "Widgets", Namespaces: []*model.Namespace{ns}}

	if err := Apply(context.Background(), root, assembly, Options{}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if widget.Usage != "" {
		t.Fatalf("expected placeholder file to be treated as absent, got %q", widget.Usage)
	}
}

func TestApplyKeepsPlaceholderContentWhenShowPlaceholdersEnabled(t *testing.T) {
	root := t.TempDir()
	const body = "<!-- TODO: REMOVE THIS COMMENT AFTER YOU CUSTOMIZE THIS CONTENT -->\nplaceholder body"
	writeFile(t, filepath.Join(root, "Acme", "Widgets", "Widget", "usage.md"), body)

	widget := &model.Type{SimpleName: "Widget", FullName: "Acme.Widgets.Widget"}
	ns := &model.Namespace{FullName: "Acme.Widgets", Types: []*model.Type{widget}}
	assembly := &model.Assembly{Name: "Widgets", Namespaces: []*model.Namespace{ns}}

	if err := Apply(context.Background(), root, assembly, Options{ShowPlaceholders: true}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if widget.Usage != body {
		t.Fatalf("expected the full placeholder contents when show-placeholders=true, got %q", widget.Usage)
	}
}

func TestApplyNeverOverwritesExistingSummary(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Acme", "Widgets", "summary.md"), "overlay summary")

	ns := &model.Namespace{FullName: "Acme.Widgets"}
	ns.Summary = "xml doc summary"
	assembly := &model.Assembly{Name: "Widgets", Namespaces: []*model.Namespace{ns}}

	if err := Apply(context.Background(), root, assembly, Options{}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if ns.Summary != "xml doc summary" {
		t.Fatalf("overlay must never overwrite a non-empty summary, got %q", ns.Summary)
	}
}

func TestApplyMissingRootIsNoop(t *testing.T) {
	assembly := &model.Assembly{Name: "Widgets"}
	if err := Apply(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"), assembly, Options{}); err != nil {
		t.Fatalf("expected a missing overlay root to be a silent no-op, got %v", err)
	}
}
