package merge

import (
	"testing"

	"github.com/relaydocs/docgraph/model"
)

func TestMergeSingletonReturnsAsIs(t *testing.T) {
	a := &model.Assembly{Name: "Only"}
	got := Merge([]*model.Assembly{a})
	if got != a {
		t.Fatalf("expected singleton merge to return the same assembly pointer")
	}
}

func TestMergeAppendsNewNamespaceAndDedupsMembers(t *testing.T) {
	widgetA := &model.Type{SimpleName: "Widget", FullName: "Acme.Widget", Members: []*model.Member{
		{SimpleName: "Spin", DisplayName: "Spin()"},
	}}
	widgetA.Summary = "from A"
	nsA := &model.Namespace{FullName: "Acme", Types: []*model.Type{widgetA}}
	a := &model.Assembly{Name: "A", Namespaces: []*model.Namespace{nsA}}

	widgetB := &model.Type{SimpleName: "Widget", FullName: "Acme.Widget", Members: []*model.Member{
		{SimpleName: "Spin", DisplayName: "Spin()"},   // duplicate, should be discarded
		{SimpleName: "Stop", DisplayName: "Stop()"},   // new, should be appended
	}}
	widgetB.Summary = "from B"
	otherType := &model.Type{SimpleName: "Gadget", FullName: "Other.Gadget"}
	nsB := &model.Namespace{FullName: "Acme", Types: []*model.Type{widgetB}}
	nsOther := &model.Namespace{FullName: "Other", Types: []*model.Type{otherType}}
	b := &model.Assembly{Name: "B", Namespaces: []*model.Namespace{nsB, nsOther}}

	merged := Merge([]*model.Assembly{a, b})

	if len(merged.Namespaces) != 2 {
		t.Fatalf("expected Acme + Other, got %d namespaces", len(merged.Namespaces))
	}
	if merged.Namespaces[0].Types[0].Summary != "from A" {
		t.Fatalf("sparse merge must not overwrite a non-empty summary, got %q", merged.Namespaces[0].Types[0].Summary)
	}
	if len(merged.Namespaces[0].Types[0].Members) != 2 {
		t.Fatalf("expected Spin (deduped) + Stop, got %d members", len(merged.Namespaces[0].Types[0].Members))
	}
}

func TestMergeDisjointTypesInSharedNamespacePreservesInputOrder(t *testing.T) {
	t1 := &model.Type{SimpleName: "T1", FullName: "X.T1"}
	t2 := &model.Type{SimpleName: "T2", FullName: "X.T2"}
	a := &model.Assembly{Name: "A", Namespaces: []*model.Namespace{
		{FullName: "X", Types: []*model.Type{t1}},
	}}
	b := &model.Assembly{Name: "B", Namespaces: []*model.Namespace{
		{FullName: "X", Types: []*model.Type{t2}},
	}}

	merged := Merge([]*model.Assembly{a, b})

	if len(merged.Namespaces) != 1 {
		t.Fatalf("expected one namespace X, got %d", len(merged.Namespaces))
	}
	ns := merged.Namespaces[0]
	if len(ns.Types) != 2 {
		t.Fatalf("expected both T1 and T2, got %+v", ns.Types)
	}
	if ns.Types[0].SimpleName != "T1" || ns.Types[1].SimpleName != "T2" {
		t.Fatalf("expected input order T1, T2, got %s, %s", ns.Types[0].SimpleName, ns.Types[1].SimpleName)
	}
}
