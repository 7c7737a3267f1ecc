// Package vault provides access to a directory tree of markdown notes with
// YAML frontmatter, exposed through the [Store] interface.
//
// All paths are vault-relative and slash-separated regardless of the host
// OS. Two implementations exist: [DirStore] for the real filesystem and
// [MemStore] as an in-memory substitute for tests. [DirStore] maintains a
// derived frontmatter cache keyed by file mtime so that repeated metadata
// scans do not reparse unchanged notes; the cache is advisory and is
// rebuilt silently when missing or corrupt, never assumed up to date with
// the most recent external write.
package vault

import (
	"path"
	"strings"
)

// EntryKind classifies what a vault path points at.
type EntryKind uint8

// EntryKind values.
const (
	EntryNone EntryKind = iota
	EntryFile
	EntryFolder
)

// Doc references a markdown document by its vault-relative path.
type Doc struct {
	Path string
}

// Basename returns the document's file name without directories or the .md
// extension. It is the text used inside [[...]] cross-references.
func (d Doc) Basename() string {
	base := path.Base(d.Path)

	return strings.TrimSuffix(base, ".md")
}

// Store is the storage and metadata capability the indexing logic consumes.
// Implementations own document content and metadata entirely; callers read
// snapshots and write full replacement text. No method coordinates
// concurrent writers; overlapping updates to the same document are
// last-write-wins.
type Store interface {
	// List returns every markdown document in the vault, sorted by path.
	List() ([]Doc, error)

	// Read returns a document's full text. Returns ErrNotFound if the
	// path does not reference a file.
	Read(docPath string) (string, error)

	// Write replaces a document's full text.
	Write(docPath, text string) error

	// Create writes a new document. Returns ErrExists if the path is
	// already taken by a file or folder.
	Create(docPath, text string) (Doc, error)

	// Metadata returns the document's frontmatter mapping. Documents
	// without a frontmatter block yield an empty mapping.
	Metadata(docPath string) (Fields, error)

	// SetFields merges fields into the document's frontmatter block:
	// named keys are overwritten or added, everything else is untouched.
	SetFields(docPath string, fields Fields) error

	// EnsureFolder creates the folder and any missing parents. Returns
	// ErrNotFolder if a path segment exists as a file. Idempotent per
	// segment, but not atomic against concurrent creators.
	EnsureFolder(folderPath string) error

	// Kind reports what the path currently points at.
	Kind(p string) EntryKind
}

// IsMarkdown reports whether a vault path names a markdown document.
func IsMarkdown(p string) bool {
	return strings.HasSuffix(p, ".md")
}

// folderSegments splits a slash-separated folder path into its cumulative
// segment paths: "a/b/c" -> ["a", "a/b", "a/b/c"]. Empty segments are
// dropped.
func folderSegments(folderPath string) []string {
	parts := strings.Split(folderPath, "/")

	var (
		segments []string
		current  string
	)

	for _, part := range parts {
		if part == "" {
			continue
		}

		if current == "" {
			current = part
		} else {
			current = current + "/" + part
		}

		segments = append(segments, current)
	}

	return segments
}
