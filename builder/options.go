package builder

import "github.com/relaydocs/docgraph/model"

// Options configures the Model Builder's accessibility filtering and
// inheritance walk, per spec.md §4.3.
type Options struct {
	// Visibilities is the configured set of levels a declared member or
	// type must fall into to survive filtering. Default: public only.
	Visibilities map[model.Visibility]bool

	// IncludeInherited turns on the base-chain walk for inherited members.
	IncludeInherited bool

	// IncludeObjectInheritance mirrors the root include-object-inheritance
	// option (false by default here). The inheritance walk stops at
	// System.Object, so no Object members are added whether it is true or
	// false.
	IncludeObjectInheritance bool

	// CreateExternalTypeReferences lets the Extension Relocator intern a
	// shadow type for an extended type that isn't declared in any loaded
	// binary, rather than dropping the orphaned extension method.
	CreateExternalTypeReferences bool
}

// DefaultOptions matches spec.md §4.3's stated default: public members
// only, no inherited-member walk, shadow types allowed.
func DefaultOptions() Options {
	return Options{
		Visibilities:                 map[model.Visibility]bool{model.VisibilityPublic: true},
		CreateExternalTypeReferences: true,
	}
}

func (o Options) allows(v model.Visibility) bool {
	return o.Visibilities[v]
}
