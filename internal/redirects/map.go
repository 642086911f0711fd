// Package redirects maintains the redirect map consumed by the site build.
//
// The map sends old extension-less document paths to their successors. It is
// read fully into memory, merged with newly planned redirects, chain-resolved
// so no entry points at another entry's source, and rewritten as a single
// key-sorted JSON document.
package redirects

import "sort"

// Map holds redirect entries from old document paths to new ones.
type Map struct {
	entries map[string]string
}

// NewMap returns an empty redirect map.
func NewMap() *Map {
	return &Map{entries: make(map[string]string)}
}

// FromEntries returns a map seeded with a copy of the given entries.
func FromEntries(entries map[string]string) *Map {
	m := NewMap()
	for old, target := range entries {
		m.entries[old] = target
	}
	return m
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.entries)
}

// Get looks up the target for an old path.
func (m *Map) Get(old string) (string, bool) {
	target, ok := m.entries[old]
	return target, ok
}

// Set records a redirect unconditionally, replacing any existing entry.
func (m *Map) Set(old, target string) {
	m.entries[old] = target
}

// Keys returns all source paths in sorted order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for old := range m.entries {
		keys = append(keys, old)
	}
	sort.Strings(keys)
	return keys
}

// Entries returns a copy of the underlying mapping.
func (m *Map) Entries() map[string]string {
	out := make(map[string]string, len(m.entries))
	for old, target := range m.entries {
		out[old] = target
	}
	return out
}

// Merge folds a batch of newly planned redirects into the map. Existing
// entries are preserved; a batch entry for an already-redirected path is
// dropped. Afterward every entry is chain-resolved, so entries whose target
// just became a redirect source get rewritten to the final destination.
func (m *Map) Merge(batch map[string]string) {
	for old, target := range batch {
		if _, exists := m.entries[old]; !exists {
			m.entries[old] = target
		}
	}
	m.ResolveChains()
}

// ResolveChains rewrites every entry to its terminal destination so that no
// target is itself a redirect source. An entry that resolves back onto its
// own source is meaningless and gets dropped. Keys are processed in sorted
// order so cycle breaking leaves the same survivors on every run.
func (m *Map) ResolveChains() {
	for _, old := range m.Keys() {
		final := m.resolve(old)
		if final == old {
			delete(m.entries, old)
			continue
		}
		m.entries[old] = final
	}
}

// resolve follows the chain starting at old until it leaves the key space.
// A revisited path terminates the walk so cycles cannot loop forever.
func (m *Map) resolve(old string) string {
	seen := map[string]bool{old: true}
	target := m.entries[old]
	for {
		if seen[target] {
			return target
		}
		next, ok := m.entries[target]
		if !ok {
			return target
		}
		seen[target] = true
		target = next
	}
}
