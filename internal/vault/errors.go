package vault

import "errors"

// Store errors.
var (
	ErrNotFound  = errors.New("document not found")
	ErrExists    = errors.New("path already exists")
	ErrNotFolder = errors.New("path exists and is not a folder")

	errFrontmatterNotMapping = errors.New("frontmatter is not a key-value mapping")
	errCacheNotFound         = errors.New("metadata cache not found")
	errCacheCorrupt          = errors.New("metadata cache corrupted")
)
