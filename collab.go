package docgraph

import "github.com/relaydocs/docgraph/model"

// Enricher is given a node (one of *model.Assembly, *model.Namespace,
// *model.Type, *model.Member, *model.Parameter, *model.EnumValue) and may
// add or overwrite any of its doc fields. Unlike the Conceptual Overlay's
// merge, an Enricher is allowed to clobber an already-populated field —
// it runs after the overlay, as the last word on content (spec.md §6).
type Enricher interface {
	Enrich(node any) error
}

// Transformer is given a node and may rewrite its string doc fields in
// place — typically to convert embedded XML markup (<see>, <c>, <para>)
// into the renderer's target prose format. Transformers run after every
// Enricher.
type Transformer interface {
	Transform(node any) error
}

// Renderer consumes the finished, merged, enriched, transformed model and
// produces output files. PlaceholderHook and NavigationHook are optional
// extension points: Process calls PlaceholderHook after merge and type
// exclusion, before the overlay, and NavigationHook after every Render;
// CreatePlaceholders calls neither. A Renderer that has no use for one
// simply returns nil.
type Renderer interface {
	Render(assembly *model.Assembly) error
	PlaceholderHook(assembly *model.Assembly) error
	NavigationHook(assembly *model.Assembly) error
}

// ReferenceHandler performs copy-plus-path-rewriting for one kind of
// external documentation reference (e.g. a guide tree, a changelog) into
// a destination sub-path, keyed by DocumentationType.
type ReferenceHandler interface {
	// DocumentationType names the kind of reference this handler accepts
	// (e.g. "guide", "sample"). Orchestrator.ReferenceHandlers holds
	// handlers, but neither Process nor CreatePlaceholders calls them.
	DocumentationType() string
	Handle(sourceRoot, destSubPath string) error
}

// NoopTransformer is a Transformer that leaves every node untouched.
// docgraph ships no renderer of its own (spec.md §4.8 — out of scope for
// this module).
type NoopTransformer struct{}

func (NoopTransformer) Transform(node any) error { return nil }
