package pricing

import (
	"sort"
	"sync"
)

// resolving sources can tell a genuine zero price from a miss
type resolving interface {
	Resolve(l Lookup) (Resolution, bool)
}

// Tracker wraps a Source and remembers every lookup that resolved to nothing.
// Unresolved prices still return 0; the tracker only adds diagnostics.
type Tracker struct {
	source Source

	mu     sync.Mutex
	misses map[string]Lookup
}

// Track creates a tracker around source
func Track(source Source) *Tracker {
	return &Tracker{source: source, misses: make(map[string]Lookup)}
}

// Price delegates to the wrapped source and records misses
func (t *Tracker) Price(l Lookup) float64 {
	var price float64
	resolved := false

	if r, ok := t.source.(resolving); ok {
		var res Resolution
		res, resolved = r.Resolve(l)
		price = res.Price
	} else if t.source != nil {
		price = t.source.Price(l)
		resolved = price != 0
	}

	if !resolved {
		t.mu.Lock()
		t.misses[l.Key()] = l
		t.mu.Unlock()
	}
	return price
}

// Unresolved returns the distinct unresolved lookups in key order
func (t *Tracker) Unresolved() []Lookup {
	t.mu.Lock()
	defer t.mu.Unlock()

	keys := make([]string, 0, len(t.misses))
	for k := range t.misses {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Lookup, 0, len(keys))
	for _, k := range keys {
		out = append(out, t.misses[k])
	}
	return out
}

// Reset clears recorded misses
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.misses = make(map[string]Lookup)
}
