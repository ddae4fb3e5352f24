// Package intern bounds memory growth for the identity strings (canonical
// IDs, display names) that flow through every layer of docgraph. Identity
// itself stays plain string equality; interning only deduplicates backing
// storage for strings that recur across a large assembly's namespaces,
// types and members.
package intern

import "sync"

// Table is a concurrency-safe string interner. The zero value is usable.
type Table struct {
	mu   sync.Mutex
	seen map[string]string
}

// String returns the canonical, shared copy of s, recording s the first
// time it is seen.
func (t *Table) String(s string) string {
	if s == "" {
		return s
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.seen == nil {
		t.seen = make(map[string]string)
	}
	if existing, ok := t.seen[s]; ok {
		return existing
	}
	t.seen[s] = s
	return s
}

// Len returns the number of distinct strings interned so far.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}
