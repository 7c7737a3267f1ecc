package index

import "errors"

// Indexing errors. All abort the current operation before any write; only
// the command boundary converts them into user-visible messages.
var (
	ErrNoFrontmatter       = errors.New("note has no frontmatter")
	ErrNoProject           = errors.New("note has no \"project\" field in frontmatter")
	ErrFolderNotConfigured = errors.New("project index folder is not configured")
	ErrIndexNotFile        = errors.New("index path exists and is not a file")
	ErrIndexNotFound       = errors.New("project index not found")
)
