// Package docgraph reads compiled .NET assemblies and their sidecar XML
// documentation comments directly off disk - no compilation, no
// reflection host, no "ignore-access-checks-to" trick - and turns them
// into one merged, cross-referenced documentation graph a renderer can
// walk.
//
// Process is the main entry point: point it at one or more (binary, xml)
// pairs and it runs every phase in order - load, build, relocate
// extension methods, merge, optionally overlay conceptual prose, then run
// whatever Enrichers, Transformers and Renderers the caller registered.
// CreatePlaceholders runs the same pipeline up through merge and then
// writes a placeholder conceptual-doc tree instead.
package docgraph

import (
	"context"
	"fmt"
	"path"

	"golang.org/x/sync/errgroup"

	"github.com/relaydocs/docgraph/builder"
	"github.com/relaydocs/docgraph/internal/errorutils"
	"github.com/relaydocs/docgraph/merge"
	"github.com/relaydocs/docgraph/model"
	"github.com/relaydocs/docgraph/overlay"
	"github.com/relaydocs/docgraph/xref"
)

// Target names one binary to process: its path, an optional sidecar XML
// doc path, and any referenced binaries to widen name resolution.
type Target struct {
	BinaryPath         string
	XMLPath            string
	ReferencedBinaries []string
}

// Result is what Process returns: the merged, finished model graph and
// the Resolver indexed over it, ready for a renderer to call Resolve on
// every cref it encounters.
type Result struct {
	Assembly *model.Assembly
	Resolver *xref.Resolver
}

// Orchestrator sequences the phases and owns the loader cache (spec.md
// §4.8). Its zero value is not usable; construct one with New.
type Orchestrator struct {
	cache *loaderCache

	Enrichers         []Enricher
	Transformers      []Transformer
	Renderers         []Renderer
	ReferenceHandlers []ReferenceHandler
}

// New creates an Orchestrator with an empty loader cache.
func New() *Orchestrator {
	return &Orchestrator{cache: newLoaderCache()}
}

// Close tears down the loader cache, disposing every cached Loader
// result (spec.md §4.8 "teardown disposes all loaders").
func (o *Orchestrator) Close() {
	o.cache.teardown()
}

// Process runs the full pipeline: load, build, relocate, merge, exclude,
// optional placeholder generation via any registered Renderer, overlay,
// then Enrichers, Transformers, and Renderers in that order.
func (o *Orchestrator) Process(ctx context.Context, targets []Target, opts Options) (*Result, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: at least one target is required", ErrInvalidArgument)
	}

	assemblies, buildDiags, err := o.buildAll(ctx, targets, opts)
	if err != nil {
		return nil, err
	}

	merged := merge.Merge(assemblies)
	merged.Diagnostics = append(merged.Diagnostics, buildDiags...)
	excludeTypes(merged, opts.ExcludedTypePatterns)

	for _, r := range o.Renderers {
		if err := r.PlaceholderHook(merged); err != nil {
			return nil, err
		}
	}

	if opts.ConceptualDocsEnabled {
		if err := overlay.Apply(ctx, opts.ConceptualPath, merged, opts.toOverlayOptions()); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	if err := walkNodes(merged, func(n any) error {
		for _, e := range o.Enrichers {
			if err := e.Enrich(n); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := walkNodes(merged, func(n any) error {
		for _, t := range o.Transformers {
			if err := t.Transform(n); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	for _, r := range o.Renderers {
		if err := r.Render(merged); err != nil {
			return nil, err
		}
	}
	for _, r := range o.Renderers {
		if err := r.NavigationHook(merged); err != nil {
			return nil, err
		}
	}

	resolver := xref.New()
	resolver.SetPathPrefix(opts.ApiReferencePath)
	resolver.Index(merged)

	return &Result{Assembly: merged, Resolver: resolver}, nil
}

// CreatePlaceholders runs the pipeline identically through merge and
// exclusion, then writes the placeholder conceptual-doc tree under
// opts.DocumentationRootPath instead of running overlay/collaborators
// (spec.md §4.8).
func (o *Orchestrator) CreatePlaceholders(ctx context.Context, targets []Target, opts Options) (*model.Assembly, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: at least one target is required", ErrInvalidArgument)
	}

	assemblies, buildDiags, err := o.buildAll(ctx, targets, opts)
	if err != nil {
		return nil, err
	}

	merged := merge.Merge(assemblies)
	merged.Diagnostics = append(merged.Diagnostics, buildDiags...)
	excludeTypes(merged, opts.ExcludedTypePatterns)

	if err := overlay.GeneratePlaceholders(opts.DocumentationRootPath, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// buildAll loads, builds, and relocates every target concurrently
// (spec.md §5 "parallel task-based... per-binary granularity"), writing
// into a slot per target index so the Merger's input-order guarantee
// (spec.md §4.7/§8 property 5) holds regardless of which binary finishes
// first. A failing target never aborts its siblings (spec.md §5 "Failure
// isolation: a failure in one binary's build is isolated to that
// binary's result and recorded; other binaries continue"): each
// per-target error becomes one Diagnostic, returned alongside whatever
// assemblies did build successfully - the caller decides fatality
// (spec.md §7 "the model is always returned... callers decide
// fatality"). buildAll returns a hard error in three cases: a context
// cancellation observed before any target started, one observed by the
// time every target has finished (spec.md §7 "Cancelled"), and every
// target failing, when all per-target errors are joined with
// errorutils.Join under ErrSymbolResolutionFailure.
func (o *Orchestrator) buildAll(ctx context.Context, targets []Target, opts Options) ([]*model.Assembly, []model.Diagnostic, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	results := make([]*model.Assembly, len(targets))
	faults := make([]error, len(targets))

	g, _ := errgroup.WithContext(ctx)
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			asm, err := o.buildOne(target, opts)
			if err != nil {
				faults[i] = fmt.Errorf("%s: %w", target.BinaryPath, err)
				return nil
			}
			results[i] = asm
			return nil
		})
	}
	_ = g.Wait() // buildOne never itself returns a non-nil error to g.Go

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	var assemblies []*model.Assembly
	var diagnostics []model.Diagnostic
	for i, asm := range results {
		if asm != nil {
			assemblies = append(assemblies, asm)
			continue
		}
		diagnostics = append(diagnostics, model.Diagnostic{
			Kind:    model.DiagnosticSymbolFault,
			Message: faults[i].Error(),
			Symbol:  targets[i].BinaryPath,
		})
	}

	// errorutils.Join is used here, at the end of this function, exactly
	// as its own doc comment prescribes: folding every per-target fault
	// (nils already skipped above) into one error for the case where
	// every single target failed and Process/CreatePlaceholders need a
	// fatal error to return.
	if len(assemblies) == 0 {
		return nil, diagnostics, fmt.Errorf("%w: %w", ErrSymbolResolutionFailure, errorutils.Join(faults...))
	}
	return assemblies, diagnostics, nil
}

func (o *Orchestrator) buildOne(target Target, opts Options) (*model.Assembly, error) {
	res, err := o.cache.getOrLoad(target.BinaryPath, target.XMLPath, target.ReferencedBinaries)
	if err != nil {
		return nil, err
	}

	bopts := opts.toBuilderOptions()
	assembly, tm := builder.Build(target.BinaryPath, res, bopts)
	relocDiags := builder.Relocate(assembly, tm, bopts)
	assembly.Diagnostics = append(assembly.Diagnostics, relocDiags...)
	return assembly, nil
}

// excludeTypes removes, in place, every type whose FullName matches one
// of the glob-like patterns (path.Match syntax), and then drops any
// namespace left with no types (spec.md §6 "excluded-type-patterns").
func excludeTypes(assembly *model.Assembly, patterns []string) {
	if len(patterns) == 0 {
		return
	}
	namespaces := assembly.Namespaces[:0]
	for _, ns := range assembly.Namespaces {
		types := ns.Types[:0]
		for _, t := range ns.Types {
			if matchesAny(t.FullName, patterns) {
				continue
			}
			types = append(types, t)
		}
		ns.Types = types
		if len(ns.Types) == 0 {
			continue
		}
		namespaces = append(namespaces, ns)
	}
	assembly.Namespaces = namespaces
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := path.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// walkNodes visits every node in the tree shape spec.md §8 property 1
// describes - assembly, namespace, type, member, parameter, enum value -
// calling fn on each and stopping at the first error.
func walkNodes(assembly *model.Assembly, fn func(any) error) error {
	if err := fn(assembly); err != nil {
		return err
	}
	for _, ns := range assembly.Namespaces {
		if err := fn(ns); err != nil {
			return err
		}
		for _, t := range ns.Types {
			if err := fn(t); err != nil {
				return err
			}
			for _, ev := range t.Values {
				if err := fn(ev); err != nil {
					return err
				}
			}
			for _, m := range t.Members {
				if err := fn(m); err != nil {
					return err
				}
				for _, p := range m.Parameters {
					if err := fn(p); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}
