package docgraph

import "errors"

// Fatal errors raised at the Orchestrator boundary (spec.md §7). When
// every target fails, the loader-level faults (ErrFileNotFound,
// ErrSymbolResolutionFailed) are wrapped inside the
// ErrSymbolResolutionFailure error Process and CreatePlaceholders return;
// errors.Is still reaches them.
var (
	ErrInvalidArgument         = errors.New("docgraph: invalid argument")
	ErrCancelled               = errors.New("docgraph: processing was cancelled")
	ErrSymbolResolutionFailure = errors.New("docgraph: no target built successfully")
)
