package engine

import "errors"

// ErrMissingRawDir indicates the raw HTML export directory for the old-URL
// scan does not exist. An unreadable redirect store surfaces as
// redirects.ErrBadStore from the store itself; the engine refuses to mutate
// anything in that case.
var ErrMissingRawDir = errors.New("raw export directory not found")
