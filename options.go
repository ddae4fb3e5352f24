package docgraph

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/relaydocs/docgraph/builder"
	"github.com/relaydocs/docgraph/overlay"
	"github.com/relaydocs/docgraph/model"
)

// NamespaceMode selects how a namespace maps onto the documentation
// directory tree (spec.md §6).
type NamespaceMode int

const (
	// NamespaceModeFolder gives every namespace segment its own nested
	// directory: "Acme.Widgets" -> "Acme/Widgets/".
	NamespaceModeFolder NamespaceMode = iota

	// NamespaceModeFileWithSeparator flattens a namespace into a single
	// path segment joined by NamespaceSeparator: "Acme.Widgets" ->
	// "Acme-Widgets/" when the separator is "-".
	NamespaceModeFileWithSeparator
)

// Options is the root configuration object threaded through Process and
// CreatePlaceholders, covering every enumerated option in spec.md §6. It
// is plain data so it round-trips through YAML without any custom
// marshaling, the way the teacher's own Configuration does for its own
// option set (document_config.go).
type Options struct {
	// IncludedVisibilities is the set of accessibility levels a declared
	// member or type must fall into to survive filtering. Default: public
	// only.
	IncludedVisibilities []string `yaml:"included-visibilities"`

	// IncludeObjectInheritance is passed to the Model Builder; its
	// inheritance walk stops at System.Object and adds no Object members
	// whether this is true or false. Default: true.
	IncludeObjectInheritance bool `yaml:"include-object-inheritance"`

	// IncludeInheritedMembers turns on the base-chain walk for inherited
	// members at all; IncludeObjectInheritance only matters when this is
	// also true. Default: false, matching builder.DefaultOptions.
	IncludeInheritedMembers bool `yaml:"include-inherited-members"`

	// CreateExternalTypeReferences lets the Extension Relocator intern a
	// shadow type for an extended type no loaded binary declares, rather
	// than dropping the orphaned extension method. Default: true.
	CreateExternalTypeReferences bool `yaml:"create-external-type-references"`

	// ShowPlaceholders controls whether a conceptual-overlay file whose
	// first non-blank line is the TODO marker is read as real prose or
	// treated as though it were absent. Default: true.
	ShowPlaceholders bool `yaml:"show-placeholders"`

	// ConceptualDocsEnabled turns the Conceptual Overlay pass on at all.
	ConceptualDocsEnabled bool `yaml:"conceptual-docs-enabled"`

	// ConceptualPath is the root of the conceptual-overlay file tree
	// (spec.md §4.6). Ignored when ConceptualDocsEnabled is false.
	ConceptualPath string `yaml:"conceptual-path"`

	// DocumentationRootPath is the root directory a placeholder tree is
	// written under by CreatePlaceholders.
	DocumentationRootPath string `yaml:"documentation-root-path"`

	// ApiReferencePath is a directory segment prefixed onto a resolved
	// reference's RelativePath (except when the reference collapses to a
	// bare filename in the referencing page's directory), letting a
	// renderer mount the API reference tree under a sub-path of its site.
	ApiReferencePath string `yaml:"api-reference-path"`

	// ExcludedTypePatterns is a list of glob-like patterns (as accepted
	// by path.Match) matched against a type's FullName; a match removes
	// the type from the merged model before overlay/collaborators run.
	ExcludedTypePatterns []string `yaml:"excluded-type-patterns"`

	// NamespaceMode selects folder-per-segment or flattened-with-
	// separator layout for the documentation tree. Default:
	// NamespaceModeFolder.
	NamespaceMode NamespaceMode `yaml:"-"`

	// NamespaceModeName is NamespaceMode's YAML-friendly mirror:
	// "folder" or "file-with-separator".
	NamespaceModeName string `yaml:"namespace-mode"`

	// NamespaceSeparator is the character used to join namespace
	// segments when NamespaceMode is file-with-separator.
	NamespaceSeparator string `yaml:"namespace-separator"`
}

// DefaultOptions matches spec.md §6's stated defaults.
func DefaultOptions() Options {
	return Options{
		IncludedVisibilities:         []string{"public"},
		IncludeObjectInheritance:     true,
		CreateExternalTypeReferences: true,
		ShowPlaceholders:             true,
		NamespaceMode:                NamespaceModeFolder,
		NamespaceModeName:            "folder",
		NamespaceSeparator:           "-",
	}
}

// LoadOptions reads Options from a YAML file, starting from
// DefaultOptions so any field the file omits keeps its default rather
// than zeroing out.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, err
	}
	opts.NamespaceMode = parseNamespaceMode(opts.NamespaceModeName)
	return opts, nil
}

func parseNamespaceMode(s string) NamespaceMode {
	if s == "file-with-separator" {
		return NamespaceModeFileWithSeparator
	}
	return NamespaceModeFolder
}

func parseVisibility(s string) model.Visibility {
	switch s {
	case "public":
		return model.VisibilityPublic
	case "internal":
		return model.VisibilityInternal
	case "protected":
		return model.VisibilityProtected
	case "protected-or-internal":
		return model.VisibilityProtectedOrInternal
	case "protected-and-internal":
		return model.VisibilityProtectedAndInternal
	case "private":
		return model.VisibilityPrivate
	default:
		return model.VisibilityUnknown
	}
}

// toBuilderOptions translates the root Options into the Model Builder's
// own option shape.
func (o Options) toBuilderOptions() builder.Options {
	vis := make(map[model.Visibility]bool, len(o.IncludedVisibilities))
	for _, v := range o.IncludedVisibilities {
		vis[parseVisibility(v)] = true
	}
	if len(vis) == 0 {
		vis[model.VisibilityPublic] = true
	}
	return builder.Options{
		Visibilities:                 vis,
		IncludeInherited:             o.IncludeInheritedMembers,
		IncludeObjectInheritance:     o.IncludeObjectInheritance,
		CreateExternalTypeReferences: o.CreateExternalTypeReferences,
	}
}

// toOverlayOptions translates the root Options into the Conceptual
// Overlay's own option shape.
func (o Options) toOverlayOptions() overlay.Options {
	return overlay.Options{ShowPlaceholders: o.ShowPlaceholders}
}
