package capability

import "sync"

// Entry is one registered capability: its constructor plus the prompt
// enrichment the executor applies before invoking it.
type Entry struct {
	Factory Factory
	Enrich  EnrichMode
}

var (
	mu       sync.RWMutex
	registry = map[string]Entry{}
)

// Register binds a node-type tag to a capability factory. Component packages
// call this from init; later registrations replace earlier ones.
func Register(typeTag string, enrich EnrichMode, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	registry[typeTag] = Entry{Factory: f, Enrich: enrich}
}

// Lookup resolves a node-type tag. The second result is false for unknown
// tags; callers decide whether that is an error or a placeholder.
func Lookup(typeTag string) (Entry, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := registry[typeTag]
	return e, ok
}

// Tags returns the registered node-type tags.
func Tags() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for tag := range registry {
		out = append(out, tag)
	}
	return out
}
