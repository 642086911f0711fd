package engine

import (
	"context"

	"github.com/pythonwiki/wikimig/internal/pandoc"
)

// StripAttrs removes pandoc attribute blocks from every markdown page under
// the wiki trees. Pages are visited in sorted order per wiki; on a dry run
// the per-file counts are reported without rewriting anything.
func (e *Engine) StripAttrs(ctx context.Context, req *StripAttrsRequest) (*StripAttrsResult, error) {
	result := &StripAttrsResult{}

	for _, wiki := range e.paths.Wikis {
		pages, err := e.markdownPages(wiki)
		if err != nil {
			return nil, err
		}

		for _, page := range pages {
			data, err := e.fs.ReadFile(e.paths.Abs(page))
			if err != nil {
				return nil, err
			}

			stripped, count := pandoc.Strip(string(data))
			if count == 0 {
				continue
			}

			result.Files = append(result.Files, FileStripInfo{Path: page, Count: count})
			result.TotalAttrs += count

			if !req.DryRun {
				if err := e.fs.AtomicWrite(e.paths.Abs(page), []byte(stripped), 0644); err != nil {
					return nil, err
				}
			}
		}
	}
	return result, nil
}
