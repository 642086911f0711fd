package merge

import (
	"github.com/pythonwiki/wikimig/internal/corpus"
)

// Global aggregates person groups from every wiki under one key space.
// Key order is first-seen across wikis taken in priority order, so plans
// come out the same on every run.
type Global struct {
	// Keys lists person keys in deterministic order
	Keys []string

	// ByKey holds each key's contributions, one group per wiki,
	// in wiki priority order
	ByKey map[string][]corpus.Group
}

// Reconcile merges per-wiki person groups into a global key space. The
// slices must be given in wiki priority order; ties in later selection
// keep the earlier wiki.
func Reconcile(perWiki ...[]corpus.Group) *Global {
	g := &Global{ByKey: make(map[string][]corpus.Group)}
	for _, groups := range perWiki {
		for _, group := range groups {
			if _, seen := g.ByKey[group.Key]; !seen {
				g.Keys = append(g.Keys, group.Key)
			}
			g.ByKey[group.Key] = append(g.ByKey[group.Key], group)
		}
	}
	return g
}

// Duplicates returns the keys contributed by more than one wiki, in key
// order.
func (g *Global) Duplicates() []string {
	var dupes []string
	for _, key := range g.Keys {
		if len(g.ByKey[key]) > 1 {
			dupes = append(dupes, key)
		}
	}
	return dupes
}

// ResolveDirFile picks one node from a group that may hold both a leaf
// page and a container for the same key. The container always wins,
// regardless of size.
func ResolveDirFile(group corpus.Group) corpus.Node {
	for _, node := range group.Nodes {
		if node.IsDir() {
			return node
		}
	}
	return group.Nodes[0]
}

// PickRicher selects the winning node among cross-wiki contributions.
// A container beats a leaf; between two of the same kind the larger
// content wins; ties keep the earliest contribution. The comparison is
// side-effect-free, so dry-run reporting can use it before any mutation.
func PickRicher(groups []corpus.Group) corpus.Node {
	best := ResolveDirFile(groups[0])

	for _, group := range groups[1:] {
		node := ResolveDirFile(group)

		switch {
		case node.IsDir() && !best.IsDir():
			best = node
		case !node.IsDir() && best.IsDir():
			// container keeps winning
		case node.Size > best.Size:
			best = node
		}
	}
	return best
}
