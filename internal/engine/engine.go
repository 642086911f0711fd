// Package engine provides the core business logic for wikimig operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// lower-level operations. The planning stages it drives (collect, classify,
// reconcile, plan) are pure; the engine itself is the only place that mutates
// the tree, in a strict moves-then-removals-then-persist order, which is what
// makes dry runs trustworthy and re-runs after a partial failure safe.
//
// Key components:
//   - Engine: main orchestrator called by the CLI
//   - MergePeople: the cross-wiki person merge
//   - OldRedirects: redirects for MoinMoin hex-escaped URLs
//   - StripAttrs: pandoc attribute cleanup across the wiki trees
package engine

import (
	"path"
	"sort"
	"strings"

	"github.com/pythonwiki/wikimig/internal/clock"
	"github.com/pythonwiki/wikimig/internal/config"
	"github.com/pythonwiki/wikimig/internal/fsops"
	"github.com/pythonwiki/wikimig/internal/gitx"
)

// Engine orchestrates all wikimig operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs      fsops.FS
	gitRepo gitx.GitRepo
	clock   clock.Clock
	paths   *config.Paths
}

// New creates a new Engine with the given dependencies.
func New(fs fsops.FS, gitRepo gitx.GitRepo, clk clock.Clock, paths *config.Paths) *Engine {
	return &Engine{
		fs:      fs,
		gitRepo: gitRepo,
		clock:   clk,
		paths:   paths,
	}
}

// moveNode relocates one node, preferring a history-preserving git mv and
// degrading to a plain filesystem move when git refuses.
func (e *Engine) moveNode(srcRel, dstRel string) error {
	dstAbs := e.paths.Abs(dstRel)
	if err := e.fs.MkdirAll(path.Dir(dstAbs), 0755); err != nil {
		return err
	}

	if err := e.gitRepo.Move(e.paths.Root, srcRel, dstRel); err == nil {
		return nil
	}
	return e.fs.Move(e.paths.Abs(srcRel), dstAbs)
}

// removeNode deletes one node, preferring git rm and degrading to a plain
// filesystem removal when git refuses.
func (e *Engine) removeNode(rel string) error {
	if err := e.gitRepo.Remove(e.paths.Root, rel); err == nil {
		return nil
	}
	return e.fs.RemoveAll(e.paths.Abs(rel))
}

// markdownPages returns the repo-relative paths of every markdown file under
// rel, recursively, sorted. A missing directory yields no pages.
func (e *Engine) markdownPages(rel string) ([]string, error) {
	var pages []string
	if err := e.walkMarkdown(rel, &pages); err != nil {
		return nil, err
	}
	sort.Strings(pages)
	return pages, nil
}

func (e *Engine) walkMarkdown(rel string, pages *[]string) error {
	exists, err := e.fs.Exists(e.paths.Abs(rel))
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	entries, err := e.fs.ReadDir(e.paths.Abs(rel))
	if err != nil {
		return err
	}
	for _, entry := range entries {
		childRel := path.Join(rel, entry.Name())
		if entry.IsDir() {
			if err := e.walkMarkdown(childRel, pages); err != nil {
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
