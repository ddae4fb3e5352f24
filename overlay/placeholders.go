package overlay

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/relaydocs/docgraph/model"
)

// conceptualFields lists the six prose files a Type or Member directory
// may carry, in the order GeneratePlaceholders writes them.
var conceptualFields = []string{
	"usage.md",
	"examples.md",
	"best-practices.md",
	"patterns.md",
	"considerations.md",
	"related-apis.md",
}

// GeneratePlaceholders writes the placeholder file tree for assembly
// under root, following the same namespace/type/member directory
// convention Apply reads back (spec.md §4.6, "Outputs" in spec.md §6).
// Every written file begins with the TODO marker followed by a one-line
// human-readable stub. An existing file is never overwritten — running
// GeneratePlaceholders twice against the same tree produces the same
// file set (spec.md §8 property 7).
func GeneratePlaceholders(root string, assembly *model.Assembly) error {
	if root == "" {
		return nil
	}
	if err := writePlaceholder(root, "summary.md", assembly.DisplayName); err != nil {
		return err
	}

	for _, ns := range assembly.Namespaces {
		nsDir := filepath.Join(root, namespacePath(ns.FullName))
		if err := writePlaceholder(nsDir, "summary.md", ns.FullName); err != nil {
			return err
		}
		for _, t := range ns.Types {
			typeDir := filepath.Join(nsDir, t.SimpleName)
			if err := writeNodePlaceholders(typeDir, t.FullName); err != nil {
				return err
			}
			for _, m := range t.Members {
				memberDir := filepath.Join(typeDir, m.SimpleName)
				subject := t.FullName + "." + m.SimpleName
				if err := writeNodePlaceholders(memberDir, subject); err != nil {
					return err
				}
				for _, p := range m.Parameters {
					name := "param-" + p.Name + ".md"
					stub := "Describe the " + p.Name + " parameter of " + subject + "."
					if err := writePlaceholder(memberDir, name, stub); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func writeNodePlaceholders(dir, subject string) error {
	for _, filename := range conceptualFields {
		field := strings.TrimSuffix(filename, ".md")
		stub := "Describe the " + field + " for " + subject + "."
		if err := writePlaceholder(dir, filename, stub); err != nil {
			return err
		}
	}
	return nil
}

// writePlaceholder writes one placeholder file unless it already exists.
// stub is either a one-line description (for a per-node file) or the
// node's own display name (for a top-level summary.md).
func writePlaceholder(dir, filename, stub string) error {
	path := filepath.Join(dir, filename)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	content := placeholderMarker + "\n\n" + stub + "\n"
	return os.WriteFile(path, []byte(content), 0o644)
}
