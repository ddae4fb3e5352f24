package xref

import "github.com/relaydocs/docgraph/internal/vendordocs"

// vendorURL synthesizes a framework-docs URL for an un-prefixed full name
// that begins with a recognized vendor namespace, per spec.md §4.5 step 2.
func vendorURL(unprefixed string) (string, bool) {
	return vendordocs.URL(unprefixed)
}
