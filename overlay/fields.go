package overlay

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/relaydocs/docgraph/model"
)

// Options configures overlay loading. ShowPlaceholders mirrors spec.md
// §4.6's "show-placeholders" option; when false (the default) a
// placeholder file is treated as though it were absent.
type Options struct {
	ShowPlaceholders bool
}

// placeholderMarker is matched case-insensitively against the first
// non-blank line of a file, with internal whitespace runs collapsed.
const placeholderMarker = "<!-- TODO: REMOVE THIS COMMENT AFTER YOU CUSTOMIZE THIS CONTENT -->"

func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

func isPlaceholder(data []byte) bool {
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		normalized := strings.Join(strings.Fields(trimmed), " ")
		return strings.EqualFold(normalized, placeholderMarker)
	}
	return false
}

// readProseFile reads one conventional prose file, stripping a BOM and
// trimming, and returns "" (not an error) both when the file is missing
// and when it is a placeholder under the current options.
func readProseFile(dir, filename string, opts Options) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	data = stripBOM(data)
	if isPlaceholder(data) && !opts.ShowPlaceholders {
		return "", nil
	}
	return strings.TrimSpace(string(data)), nil
}

// readRelatedAPIs reads related-apis.md: non-blank, non-comment lines,
// each trimmed, in file order.
func readRelatedAPIs(dir string, opts Options) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "related-apis.md"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	data = stripBOM(data)
	if isPlaceholder(data) && !opts.ShowPlaceholders {
		return nil, nil
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}

// readNodeFields reads the five prose files plus related-apis.md that a
// Type or Member directory may carry, honoring a local _overlay.yaml's
// skipPlaceholders override, and returns the resulting sparse fragment
// plus any relatedApiOrder hint from that same config.
func readNodeFields(dir string, opts Options) (model.DocFragment, []string, error) {
	cfg, err := loadConfig(dir)
	if err != nil {
		return model.DocFragment{}, nil, err
	}
	if cfg.SkipPlaceholders != nil {
		opts.ShowPlaceholders = !*cfg.SkipPlaceholders
	}

	usage, err := readProseFile(dir, "usage.md", opts)
	if err != nil {
		return model.DocFragment{}, nil, err
	}
	examples, err := readProseFile(dir, "examples.md", opts)
	if err != nil {
		return model.DocFragment{}, nil, err
	}
	bestPractices, err := readProseFile(dir, "best-practices.md", opts)
	if err != nil {
		return model.DocFragment{}, nil, err
	}
	patterns, err := readProseFile(dir, "patterns.md", opts)
	if err != nil {
		return model.DocFragment{}, nil, err
	}
	considerations, err := readProseFile(dir, "considerations.md", opts)
	if err != nil {
		return model.DocFragment{}, nil, err
	}
	relatedAPIs, err := readRelatedAPIs(dir, opts)
	if err != nil {
		return model.DocFragment{}, nil, err
	}
	if len(cfg.RelatedAPIOrder) > 0 {
		relatedAPIs = reorderRelatedAPIs(relatedAPIs, cfg.RelatedAPIOrder)
	}

	return model.DocFragment{
		Usage:          usage,
		Examples:       examples,
		BestPractices:  bestPractices,
		Patterns:       patterns,
		Considerations: considerations,
		RelatedAPIs:    relatedAPIs,
	}, cfg.RelatedAPIOrder, nil
}

// reorderRelatedAPIs places entries named in order first (in that order),
// then appends anything else in its original file order.
func reorderRelatedAPIs(apis, order []string) []string {
	rank := make(map[string]int, len(order))
	for i, name := range order {
		rank[name] = i
	}
	out := make([]string, len(apis))
	copy(out, apis)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		ra, aok := rank[a]
		rb, bok := rank[b]
		switch {
		case aok && bok:
			return ra < rb
		case aok:
			return true
		default:
			return false
		}
	})
	return out
}

