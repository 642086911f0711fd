package engine

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/pythonwiki/wikimig/internal/moin"
	"github.com/pythonwiki/wikimig/internal/redirects"
)

// OldRedirects scans the raw HTML export for MoinMoin hex-escaped page names
// and merges old-URL redirects into the store. Only names that decode to an
// existing page, or chain through an already-known redirect, produce entries;
// entries never overwrite what the store already holds.
func (e *Engine) OldRedirects(ctx context.Context, req *OldRedirectsRequest) (*OldRedirectsResult, error) {
	rawDir := req.RawDir
	if !filepath.IsAbs(rawDir) {
		// A relative raw dir is resolved against the site root and must
		// stay inside it.
		if err := e.fs.ValidateRelPath(rawDir); err != nil {
			return nil, fmt.Errorf("raw dir: %w", err)
		}
		rawDir = filepath.Join(e.paths.Root, rawDir)
	}
	rawExists, err := e.fs.Exists(rawDir)
	if err != nil {
		return nil, err
	}
	if !rawExists {
		return nil, fmt.Errorf("%w: %s", ErrMissingRawDir, req.RawDir)
	}

	store := redirects.NewFileStore(e.fs, e.paths.Abs(e.paths.RedirectsFile))
	persisted, err := store.Load()
	if err != nil {
		return nil, err
	}

	currentPages, err := e.currentPages()
	if err != nil {
		return nil, err
	}

	result := &OldRedirectsResult{Found: map[string]string{}}
	for _, wiki := range e.paths.Wikis {
		wikiRaw := filepath.Join(rawDir, wiki)
		exists, err := e.fs.Exists(wikiRaw)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}

		entries, err := e.fs.ReadDir(wikiRaw)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".html") {
				continue
			}
			stem := strings.TrimSuffix(name, ".html")
			if !moin.HasEncoding(stem) {
				continue
			}

			decoded := moin.Sanitize(moin.Decode(stem))
			oldPath := path.Join(wiki, stem)
			newPath := path.Join(wiki, decoded)

			switch {
			case oldPath == newPath:
				result.SkippedSame++
			case currentPages[newPath]:
				result.Found[oldPath] = newPath
			default:
				// A reorganized target is fine as long as the store
				// already knows where it went.
				if final, ok := persisted.Get(newPath); ok {
					result.Found[oldPath] = final
				} else {
					result.SkippedNoTarget++
				}
			}
		}
	}

	if req.DryRun {
		result.RedirectTotal = persisted.Len()
		return result, nil
	}

	// Additive only: reorganization redirects always beat old-URL ones.
	for oldPath, newPath := range result.Found {
		if _, ok := persisted.Get(oldPath); !ok {
			persisted.Set(oldPath, newPath)
			result.Added++
		}
	}
	if err := store.Save(persisted); err != nil {
		return nil, err
	}
	result.RedirectTotal = persisted.Len()
	return result, nil
}

// currentPages returns the set of extension-less page paths present in the
// wiki trees, the valid targets for old-URL redirects.
func (e *Engine) currentPages() (map[string]bool, error) {
	pages := map[string]bool{}
	for _, wiki := range e.paths.Wikis {
		mds, err := e.markdownPages(wiki)
		if err != nil {
			return nil, err
		}
		for _, md := range mds {
			pages[strings.TrimSuffix(md, ".md")] = true
		}
	}
	return pages, nil
}
