// Package loader exposes a target assembly's symbols - including members
// that would normally be hidden by visibility rules, so that downstream
// consumers can opt into documenting non-public APIs - together with its
// sidecar XML documentation, if any.
//
// The teacher technique this replaces (compile a throwaway assembly with an
// "ignore-access-checks-to" marker so internal members appear) has no
// analogue for a pre-compiled binary read directly off disk: metadata.Read
// already decodes every TypeDef/MethodDef/Field row regardless of its
// accessibility flags, so no such trick is needed here - filtering by
// visibility is the Model Builder's job (builder.Options), not the loader's.
package loader

import (
	"fmt"
	"os"

	"github.com/relaydocs/docgraph/metadata"
	"github.com/relaydocs/docgraph/model"
	"github.com/relaydocs/docgraph/xmldoc"
)

// Loader reads one target binary plus its optional sidecar XML doc and
// best-effort referenced binaries.
type Loader struct {
	BinaryPath          string
	XMLPath             string
	ReferencedBinaries  []string
}

// New constructs a Loader for one (binary, xml) pair plus its reference
// list, per the Symbol Loader's input contract.
func New(binaryPath, xmlPath string, referencedBinaries []string) *Loader {
	return &Loader{BinaryPath: binaryPath, XMLPath: xmlPath, ReferencedBinaries: referencedBinaries}
}

// Result is everything the Model Builder needs from one Load call.
type Result struct {
	Assembly            *metadata.AssemblySymbol
	Doc                 *xmldoc.Doc // nil if no XML doc was available or it failed to parse
	ReferencedAssemblies []*metadata.AssemblySymbol
	Diagnostics         []model.Diagnostic
}

// Load runs the full contract: fatal errors are returned; everything
// recoverable (a missing or unparsable XML doc, a missing referenced
// binary) becomes a diagnostic and loading continues.
func (l *Loader) Load() (*Result, error) {
	if _, err := os.Stat(l.BinaryPath); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileNotFound, l.BinaryPath, err)
	}

	asm, err := metadata.Read(l.BinaryPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSymbolResolutionFailed, l.BinaryPath, err)
	}

	res := &Result{Assembly: asm}

	if l.XMLPath == "" {
		res.Diagnostics = append(res.Diagnostics, model.Diagnostic{
			Kind:    model.DiagnosticMissingXmlDoc,
			Message: "no sidecar XML documentation path was configured",
			Symbol:  l.BinaryPath,
		})
	} else if data, err := os.ReadFile(l.XMLPath); err != nil {
		res.Diagnostics = append(res.Diagnostics, model.Diagnostic{
			Kind:    model.DiagnosticMissingXmlDoc,
			Message: err.Error(),
			Symbol:  l.XMLPath,
		})
	} else if doc, err := xmldoc.Parse(data); err != nil {
		res.Diagnostics = append(res.Diagnostics, model.Diagnostic{
			Kind:    model.DiagnosticXmlParseFailure,
			Message: err.Error(),
			Symbol:  l.XMLPath,
		})
	} else {
		res.Doc = doc
	}

	for _, ref := range l.ReferencedBinaries {
		refAsm, err := metadata.Read(ref)
		if err != nil {
			// Missing referenced binaries are silently skipped per spec.md
			// §4.1 - they only ever widen name resolution, never required.
			continue
		}
		res.ReferencedAssemblies = append(res.ReferencedAssemblies, refAsm)
	}

	return res, nil
}
