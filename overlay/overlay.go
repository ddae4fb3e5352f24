// Package overlay attaches conceptual prose files to documentation-graph
// nodes by path convention (spec.md §4.6), without altering any model
// invariant: every field it writes is a DocFragment field already defined
// on the node, filled in only where still empty.
package overlay

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/relaydocs/docgraph/model"
)

// Apply walks root per the conventional layout and merges whatever prose
// it finds into assembly's nodes. A missing root is silently treated as
// "no overlay" (spec.md §4.6, "the system neither creates nor depends on
// these files existing"). Per-namespace and per-type directories fan out
// concurrently via errgroup, matching spec.md §5's per-file-granularity
// scheduling; ctx cancellation stops any directory not yet started.
func Apply(ctx context.Context, root string, assembly *model.Assembly, opts Options) error {
	if root == "" {
		return nil
	}
	if _, err := os.Stat(root); err != nil {
		return nil
	}

	summary, err := readProseFile(root, "summary.md", opts)
	if err != nil {
		return err
	}
	model.MergeSparseDocs(&assembly.DocFragment, model.DocFragment{Summary: summary})

	g, gCtx := errgroup.WithContext(ctx)
	for _, ns := range assembly.Namespaces {
		ns := ns
		nsDir := filepath.Join(root, namespacePath(ns.FullName))
		g.Go(func() error { return applyNamespace(gCtx, nsDir, ns, opts) })
	}
	return g.Wait()
}

func namespacePath(fullName string) string {
	if fullName == "" {
		return ""
	}
	return filepath.FromSlash(strings.ReplaceAll(fullName, ".", "/"))
}

func applyNamespace(ctx context.Context, dir string, ns *model.Namespace, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	if cfg.SkipPlaceholders != nil {
		opts.ShowPlaceholders = !*cfg.SkipPlaceholders
	}

	summary, err := readProseFile(dir, "summary.md", opts)
	if err != nil {
		return err
	}
	model.MergeSparseDocs(&ns.DocFragment, model.DocFragment{Summary: summary})

	g, gCtx := errgroup.WithContext(ctx)
	for _, t := range ns.Types {
		t := t
		typeDir := filepath.Join(dir, t.SimpleName)
		g.Go(func() error { return applyType(gCtx, typeDir, t, opts) })
	}
	return g.Wait()
}

func applyType(ctx context.Context, dir string, t *model.Type, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	frag, _, err := readNodeFields(dir, opts)
	if err != nil {
		return err
	}
	model.MergeSparseDocs(&t.DocFragment, frag)

	g, gCtx := errgroup.WithContext(ctx)
	for _, m := range t.Members {
		m := m
		memberDir := filepath.Join(dir, m.SimpleName)
		g.Go(func() error { return applyMember(gCtx, memberDir, m, opts) })
	}
	return g.Wait()
}

func applyMember(ctx context.Context, dir string, m *model.Member, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	frag, _, err := readNodeFields(dir, opts)
	if err != nil {
		return err
	}
	model.MergeSparseDocs(&m.DocFragment, frag)
	return nil
}
