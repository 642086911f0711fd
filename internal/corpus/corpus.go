// Package corpus enumerates people entries in wiki namespace exports.
//
// Each entry under a wiki's people/ directory is either a leaf page
// (JohnSmith.md) or a container directory (JohnSmith/ holding an index.md
// and related subpages). Both forms can coexist for the same person key;
// the collector groups them so later stages can resolve the duplication.
package corpus

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pythonwiki/wikimig/internal/config"
	"github.com/pythonwiki/wikimig/internal/fsops"
)

// Kind discriminates the two on-disk shapes of a people entry.
type Kind int

const (
	// KindFile is a leaf page, a single markdown file.
	KindFile Kind = iota
	// KindDir is a container directory with subpages.
	KindDir
)

// String returns a human-readable kind name for reports.
func (k Kind) String() string {
	if k == KindDir {
		return "dir"
	}
	return "file"
}

// Node is one people entry as found on disk.
type Node struct {
	// Wiki is the owning namespace, e.g. "python".
	Wiki string

	// Key is the person stem: the filename without extension for leaf
	// pages, the directory name for containers.
	Key string

	// Path is the repo-relative slash path of the entry.
	Path string

	// Kind tells whether the entry is a leaf page or a container.
	Kind Kind

	// Size is the content size in bytes. For containers it is the sum of
	// all markdown files underneath; other files do not count.
	Size int64
}

// IsDir reports whether the node is a container directory.
func (n Node) IsDir() bool {
	return n.Kind == KindDir
}

// Group collects every node sharing a person key within one wiki. A wiki
// export can hold both JohnSmith.md and JohnSmith/ for the same person.
type Group struct {
	Wiki  string
	Key   string
	Nodes []Node
}

// Collector scans wiki people directories into groups.
type Collector struct {
	fs    fsops.FS
	paths *config.Paths
}

// NewCollector creates a collector over the given filesystem and layout.
func NewCollector(fs fsops.FS, paths *config.Paths) *Collector {
	return &Collector{fs: fs, paths: paths}
}

// Collect scans a wiki's people/ directory and returns one group per person
// key, sorted by key. A wiki without a people directory yields no groups.
// The section index page is not an entry and is skipped.
func (c *Collector) Collect(wiki string) ([]Group, error) {
	// Wiki names come from config and the CLI; they name a single path
	// segment and must never escape the site tree.
	if err := c.fs.ValidateIdentifier(wiki); err != nil {
		return nil, fmt.Errorf("wiki %q: %w", wiki, err)
	}

	peopleRel := c.paths.WikiPeople(wiki)
	peopleAbs := c.paths.Abs(peopleRel)

	entries, err := c.fs.ReadDir(peopleAbs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", peopleRel, err)
	}

	byKey := make(map[string][]Node)
	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if name == "index.md" {
			continue
		}

		node := Node{
			Wiki: wiki,
			Path: path.Join(peopleRel, name),
		}
		if entry.IsDir() {
			node.Kind = KindDir
			node.Key = name
			node.Size = c.dirSize(c.paths.Abs(node.Path))
		} else {
			node.Kind = KindFile
			node.Key = strings.TrimSuffix(name, path.Ext(name))
			node.Size = c.fileSize(c.paths.Abs(node.Path))
		}

		if _, seen := byKey[node.Key]; !seen {
			keys = append(keys, node.Key)
		}
		byKey[node.Key] = append(byKey[node.Key], node)
	}

	sort.Strings(keys)
	groups := make([]Group, 0, len(keys))
	for _, key := range keys {
		nodes := byKey[key]
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].Path < nodes[j].Path })
		groups = append(groups, Group{Wiki: wiki, Key: key, Nodes: nodes})
	}
	return groups, nil
}

// fileSize returns a file's size, or 0 when it cannot be read.
func (c *Collector) fileSize(abs string) int64 {
	info, err := c.fs.Lstat(abs)
	if err != nil {
		return 0
	}
	return info.Size()
}

// dirSize sums the sizes of all markdown files under a directory.
// Unreadable entries count as zero.
func (c *Collector) dirSize(abs string) int64 {
	entries, err := c.fs.ReadDir(abs)
	if err != nil {
		return 0
	}

	var total int64
	for _, entry := range entries {
		child := filepath.Join(abs, entry.Name())
		if entry.IsDir() {
			total += c.dirSize(child)
			continue
		}
		if !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		total += c.fileSize(child)
	}
	return total
}

// ContainedPages lists the repo-relative paths of every markdown page under
// a container node, sorted. Redirect planning needs one entry per subpage.
func (c *Collector) ContainedPages(node Node) ([]string, error) {
	if !node.IsDir() {
		return nil, fmt.Errorf("%s is not a container", node.Path)
	}

	var pages []string
	if err := c.walkPages(node.Path, &pages); err != nil {
		return nil, err
	}
	sort.Strings(pages)
	return pages, nil
}

func (c *Collector) walkPages(rel string, pages *[]string) error {
	entries, err := c.fs.ReadDir(c.paths.Abs(rel))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", rel, err)
	}

	for _, entry := range entries {
		childRel := path.Join(rel, entry.Name())
		if entry.IsDir() {
			if err := c.walkPages(childRel, pages); err != nil {
				return err
			}
			continue
		}
		if strings.HasSuffix(entry.Name(), ".md") {
			*pages = append(*pages, childRel)
		}
	}
	return nil
}
