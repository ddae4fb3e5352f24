package metadata

import "errors"

// Sentinel errors the Symbol Loader layer above checks with errors.Is,
// mirroring the loader-facing error taxonomy in SPEC_FULL.md §4.1.
var (
	// ErrFileNotFound means the path could not be opened as a PE image:
	// the file is missing, unreadable, or not a PE file.
	ErrFileNotFound = errors.New("metadata: assembly file not found")

	// ErrSymbolResolutionFailed means the file opened but its CLI metadata
	// could not be read: missing/garbled CLI header, unsupported stream
	// layout, or a truncated table stream.
	ErrSymbolResolutionFailed = errors.New("metadata: failed to read assembly metadata")
)
