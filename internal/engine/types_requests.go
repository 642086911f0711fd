package engine

// MergePeopleRequest represents a request to merge the per-wiki people
// sections into the unified people tree.
type MergePeopleRequest struct {
	// DryRun plans and reports without touching the tree or the store
	DryRun bool
}

// OldRedirectsRequest represents a request to generate redirects for
// MoinMoin hex-escaped URLs from the raw HTML export.
type OldRedirectsRequest struct {
	// RawDir is the directory holding the raw per-wiki HTML exports.
	// Relative paths resolve against the repository root.
	RawDir string

	// DryRun reports the redirects that would be added without persisting
	DryRun bool
}

// StripAttrsRequest represents a request to strip pandoc attribute blocks
// from every markdown page in the wiki trees.
type StripAttrsRequest struct {
	// DryRun reports per-file counts without rewriting any page
	DryRun bool
}
