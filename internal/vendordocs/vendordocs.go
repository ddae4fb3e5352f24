// Package vendordocs holds the small data-driven table of recognized
// framework/vendor namespace prefixes and the URL synthesis rule shared
// by the Cross-Reference Resolver (xref/) and the Extension Relocator
// (builder/) — both need to recognize "this type belongs to a known
// vendor namespace" and turn it into the same framework-docs URL shape.
package vendordocs

import "strings"

var prefixes = map[string]string{
	"System":    "https://learn.microsoft.com/en-us/dotnet/api/",
	"Microsoft": "https://learn.microsoft.com/en-us/dotnet/api/",
	"Windows":   "https://learn.microsoft.com/en-us/uwp/api/",
}

// Lookup reports whether fullName (an un-prefixed canonical type name)
// begins with a recognized vendor namespace, returning the assembly name
// that namespace's framework is conventionally published under and
// whether a match was found.
func Lookup(fullName string) (vendor string, ok bool) {
	for prefix := range prefixes {
		if fullName == prefix || strings.HasPrefix(fullName, prefix+".") {
			return prefix, true
		}
	}
	return "", false
}

// URL synthesizes a framework-docs URL for an un-prefixed full name that
// begins with a recognized vendor namespace: lower-cased, backtick
// generic-arity markers rewritten to a hyphenated form, nested-type '+'
// separators rewritten to '.' (spec.md §4.5 step 2).
func URL(fullName string) (string, bool) {
	vendor, ok := Lookup(fullName)
	if !ok {
		return "", false
	}
	transformed := strings.ReplaceAll(fullName, "+", ".")
	transformed = strings.ReplaceAll(transformed, "`", "-")
	transformed = strings.ToLower(transformed)
	return prefixes[vendor] + transformed, true
}
