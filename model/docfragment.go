package model

// ExceptionDoc is one <exception cref="..."> entry: the type name is the
// last dot-segment of the cref after its "T:" prefix (spec.md §4.2);
// entries without a resolvable type are dropped by the xmldoc parser, not
// stored here as zero values.
type ExceptionDoc struct {
	TypeName    string
	Description string
}

// TypeParamDoc is one <typeparam name="X"> entry.
type TypeParamDoc struct {
	Name        string
	Description string
}

// DocFragment is embedded into every node kind (Assembly, Namespace, Type,
// Member, Parameter, EnumValue) instead of being modeled as a polymorphic
// base type, per DESIGN NOTES: "doc fields are shared through a common
// record, modeled as a concrete struct embedded in each node type."
//
// Every field uses its Go zero value to mean "none": an empty string, a nil
// slice. There is no separate Option wrapper.
type DocFragment struct {
	Summary  string
	Remarks  string
	Returns  string
	Value    string
	Examples string

	Exceptions     []ExceptionDoc
	TypeParameters []TypeParamDoc
	SeeAlso        []string

	// Conceptual-overlay fields (§4.6). Usage also receives a Parameter's
	// <param> description per the XML Doc Parser (see S1): both the XML
	// doc comment and the conceptual overlay write through to this same
	// slot, XML first, overlay only filling it in when still empty.
	Usage          string
	BestPractices  string
	Patterns       string
	Considerations string
	RelatedAPIs    []string
}

// mergeSparse copies any field that is empty/nil in dst from src, and
// never overwrites a non-empty dst field. Used by both the Merger (§4.7)
// and the Conceptual Overlay (§4.6, "never replace XML-derived summary/
// remarks unless explicitly configured per field").
func (d *DocFragment) mergeSparse(src DocFragment) {
	if d.Summary == "" {
		d.Summary = src.Summary
	}
	if d.Remarks == "" {
		d.Remarks = src.Remarks
	}
	if d.Returns == "" {
		d.Returns = src.Returns
	}
	if d.Value == "" {
		d.Value = src.Value
	}
	if d.Examples == "" {
		d.Examples = src.Examples
	}
	if len(d.Exceptions) == 0 {
		d.Exceptions = src.Exceptions
	}
	if len(d.TypeParameters) == 0 {
		d.TypeParameters = src.TypeParameters
	}
	if len(d.SeeAlso) == 0 {
		d.SeeAlso = src.SeeAlso
	}
	if d.Usage == "" {
		d.Usage = src.Usage
	}
	if d.BestPractices == "" {
		d.BestPractices = src.BestPractices
	}
	if d.Patterns == "" {
		d.Patterns = src.Patterns
	}
	if d.Considerations == "" {
		d.Considerations = src.Considerations
	}
	if len(d.RelatedAPIs) == 0 {
		d.RelatedAPIs = src.RelatedAPIs
	}
}

// MergeSparseDocs is the exported entry point the Merger (merge/) and the
// Conceptual Overlay (overlay/) use to fill empty destination fields from
// a source fragment without ever overwriting non-empty ones.
func MergeSparseDocs(dst *DocFragment, src DocFragment) {
	dst.mergeSparse(src)
}
