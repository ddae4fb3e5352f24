package loader

import "errors"

// Fatal errors per the Symbol Loader contract (spec.md §4.1). MissingXmlDoc
// is deliberately not here: it is a recoverable warning, appended to the
// diagnostics list rather than returned as an error.
var (
	ErrFileNotFound         = errors.New("loader: target binary not found")
	ErrSymbolResolutionFailed = errors.New("loader: target binary's assembly symbol could not be obtained")
)
