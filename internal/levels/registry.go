package levels

import (
	"fmt"
	"sort"
	"sync"
)

var (
	mu      sync.RWMutex
	sources = make(map[string]Source)
	order   []string
)

// Register adds a level source under its ID. The built-in campaign
// registers during init; external packs register after loading. Panics on
// a duplicate ID: two levels sharing solve records is an authoring error
// worth failing loudly on.
func Register(src Source) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := sources[src.ID]; exists {
		panic(fmt.Sprintf("levels: level %q already registered", src.ID))
	}
	sources[src.ID] = src
	order = append(order, src.ID)
}

// Get returns the source registered under the ID.
func Get(id string) (Source, error) {
	mu.RLock()
	defer mu.RUnlock()

	src, ok := sources[id]
	if !ok {
		return Source{}, fmt.Errorf("levels: unknown level %q", id)
	}
	return src, nil
}

// Exists reports whether a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := sources[id]
	return ok
}

// All returns every registered source in registration order: the campaign
// first, then external packs in load order.
func All() []Source {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]Source, 0, len(order))
	for _, id := range order {
		out = append(out, sources[id])
	}
	return out
}

// IDs returns the registered IDs sorted alphabetically.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]string, 0, len(sources))
	for id := range sources {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
