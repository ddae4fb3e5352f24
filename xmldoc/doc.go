// Package xmldoc reads a .NET XML documentation file and turns each
// <member> element's raw inner XML into a model.DocFragment, preserving
// the original markup of every preserved field rather than re-serializing
// a parsed tree - the same "keep the raw node" discipline the model
// package's placeholder invariant follows for types, applied here to text.
//
// Two passes exist because the two units of work are different: Parse
// splits the whole file into per-member raw XML (cheap, lossless,
// byte-slicing only), and ParseFragment interprets one member's raw XML
// into the structured fields a Member's DocFragment actually needs.
package xmldoc
