// Package config manages wikimig configuration and filesystem paths.
//
// A migration run operates on a documentation repository checkout containing
// one directory per wiki namespace. The repository root can be set explicitly
// or discovered from the environment; everything else hangs off the root in a
// fixed layout.
package config

import (
	"path"
	"path/filepath"
)

// EnvRoot is the environment variable that overrides repository root discovery.
const EnvRoot = "WIKIMIG_ROOT"

// DefaultWikis lists the wiki namespaces in merge priority order. When the
// same person appears in more than one namespace with equal content size, the
// earlier wiki wins.
var DefaultWikis = []string{"python", "psf", "jython"}

// Paths contains all the filesystem paths used by wikimig. Relative paths are
// slash-separated and relative to Root; they double as redirect-map keys.
type Paths struct {
	// Root is the absolute path of the documentation repository checkout
	Root string

	// Wikis lists the wiki namespaces in merge priority order
	Wikis []string

	// UncuratedWiki names the wiki whose people entries have not been
	// hand-curated and therefore go through classification
	UncuratedWiki string

	// PeopleDir is the unified people section all person entries move into
	PeopleDir string

	// ArchiveDir receives non-person pages evicted from the uncurated wiki
	ArchiveDir string

	// RedirectsFile is the JSON redirect store consumed by the site build
	RedirectsFile string
}

// NewPaths returns the standard layout for a checkout rooted at root.
func NewPaths(root string) *Paths {
	return &Paths{
		Root:          root,
		Wikis:         append([]string(nil), DefaultWikis...),
		UncuratedWiki: "python",
		PeopleDir:     "people",
		ArchiveDir:    "python/archive",
		RedirectsFile: "_redirects.json",
	}
}

// WikiPeople returns the repo-relative people directory of a wiki.
func (p *Paths) WikiPeople(wiki string) string {
	return path.Join(wiki, "people")
}

// WikiIndex returns the repo-relative index page of a wiki.
func (p *Paths) WikiIndex(wiki string) string {
	return path.Join(wiki, "index.md")
}

// Abs converts a repo-relative slash path to an absolute filesystem path.
func (p *Paths) Abs(rel string) string {
	return filepath.Join(p.Root, filepath.FromSlash(rel))
}
