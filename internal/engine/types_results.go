package engine

import (
	"time"

	"github.com/pythonwiki/wikimig/internal/merge"
)

// DuplicateInfo describes one cross-wiki duplicate and how it resolved.
type DuplicateInfo struct {
	// Key is the person key contributed by more than one wiki
	Key string

	// Wikis lists the contributing wikis in priority order
	Wikis []string

	// Winner is the wiki whose version was kept
	Winner string
}

// ItemFailure records a node whose move or removal failed in both the git
// and the plain-filesystem attempt. Failures are per-item; the run goes on.
type ItemFailure struct {
	// Path is the repo-relative path of the node
	Path string

	// Reason is the failure rendered for the report
	Reason string
}

// MergePeopleResult represents the outcome of a people merge run.
type MergePeopleResult struct {
	// Persons is the number of uncurated-wiki keys classified as people
	Persons int

	// NonPersons is the number of uncurated-wiki keys routed to the archive
	NonPersons int

	// TotalPeople is the number of distinct person keys across all wikis
	TotalPeople int

	// Duplicates describes every cross-wiki duplicate and its winner
	Duplicates []DuplicateInfo

	// Plan is the full relocation plan, also populated on dry runs
	Plan *merge.Plan

	// Moved lists the repo-relative sources actually relocated
	Moved []string

	// Removed lists the nodes actually deleted
	Removed []string

	// Skipped lists planned sources that were already gone
	Skipped []string

	// Failed lists nodes whose move or removal failed outright
	Failed []ItemFailure

	// RedirectTotal is the entry count of the persisted store after merging
	RedirectTotal int

	// IndexEntries is the number of entries in the regenerated people index
	IndexEntries int

	// CleanedDirs lists emptied wiki people directories that were removed
	CleanedDirs []string

	// Duration is the wall-clock time of the run
	Duration time.Duration
}

// OldRedirectsResult represents the outcome of an old-URL redirect scan.
type OldRedirectsResult struct {
	// Found maps each decodable old URL path to its target
	Found map[string]string

	// SkippedNoTarget counts names whose decoded target page does not exist
	SkippedNoTarget int

	// SkippedSame counts names whose decoding changed nothing
	SkippedSame int

	// Added is the number of entries actually merged into the store
	Added int

	// RedirectTotal is the entry count of the persisted store after merging
	RedirectTotal int
}

// FileStripInfo reports the attribute blocks stripped from one page.
type FileStripInfo struct {
	// Path is the repo-relative page path
	Path string

	// Count is the number of attribute blocks removed
	Count int
}

// StripAttrsResult represents the outcome of an attribute-stripping run.
type StripAttrsResult struct {
	// Files lists every page that had attribute blocks, with counts
	Files []FileStripInfo

	// TotalAttrs is the total number of blocks removed
	TotalAttrs int
}
