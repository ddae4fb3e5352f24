package docgraph

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/relaydocs/docgraph/loader"
)

// loaderCache is the Orchestrator's thread-safe interned-map of Loaders,
// keyed by binary path (spec.md §5 "Shared-resource policy"). Unlike the
// teacher's package-level cache.go, which exposes a single global
// GetNode/ClearAllCaches pair shared by every Document, this cache is
// owned by one Orchestrator instance: a root Options value can change
// between callers (different visibility filters, different conceptual
// paths) in ways a global cache would smear together, so each
// Orchestrator gets its own.
type loaderCache struct {
	group singleflight.Group

	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	result *loader.Result
	err    error
}

func newLoaderCache() *loaderCache {
	return &loaderCache{entries: make(map[string]*cacheEntry)}
}

// getOrLoad returns the cached Result for binaryPath, creating it via a
// fresh Loader if this is the first request for that key. Concurrent
// callers for the same key block on a single in-flight Load rather than
// racing to create duplicate Loaders (spec.md §5 "one-at-a-time creation
// per key").
func (c *loaderCache) getOrLoad(binaryPath, xmlPath string, referencedBinaries []string) (*loader.Result, error) {
	c.mu.Lock()
	if e, ok := c.entries[binaryPath]; ok {
		c.mu.Unlock()
		return e.result, e.err
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(binaryPath, func() (any, error) {
		c.mu.Lock()
		if e, ok := c.entries[binaryPath]; ok {
			c.mu.Unlock()
			return e.result, e.err
		}
		c.mu.Unlock()

		l := loader.New(binaryPath, xmlPath, referencedBinaries)
		result, loadErr := l.Load()

		c.mu.Lock()
		c.entries[binaryPath] = &cacheEntry{result: result, err: loadErr}
		c.mu.Unlock()

		return result, loadErr
	})
	if err != nil {
		return nil, err
	}
	return v.(*loader.Result), nil
}

// teardown disposes every cached Loader result. Loader itself holds no
// open handles past Load returning, so disposal is just dropping the
// references and letting the garbage collector do the rest.
func (c *loaderCache) teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}
