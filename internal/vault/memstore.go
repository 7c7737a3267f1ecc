package vault

import (
	"fmt"
	"path"
	"slices"
	"strings"
)

// MemStore implements [Store] in memory. It exists so the synchronizer and
// note-creation logic can be tested without a filesystem, mirroring the
// derived-metadata contract of [DirStore]: metadata is parsed from the
// stored text on demand, never assumed fresher than the last write.
type MemStore struct {
	files   map[string]string
	folders map[string]bool
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		files:   make(map[string]string),
		folders: make(map[string]bool),
	}
}

// Add inserts or replaces a document without the existence check that
// [MemStore.Create] performs. Intended for test seeding.
func (s *MemStore) Add(docPath, text string) Doc {
	s.files[docPath] = text
	s.markParents(docPath)

	return Doc{Path: docPath}
}

// List returns every markdown document, sorted by path.
func (s *MemStore) List() ([]Doc, error) {
	docs := make([]Doc, 0, len(s.files))

	for p := range s.files {
		if IsMarkdown(p) {
			docs = append(docs, Doc{Path: p})
		}
	}

	slices.SortFunc(docs, func(a, b Doc) int {
		return strings.Compare(a.Path, b.Path)
	})

	return docs, nil
}

// Read returns a document's full text.
func (s *MemStore) Read(docPath string) (string, error) {
	text, ok := s.files[docPath]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, docPath)
	}

	return text, nil
}

// Write replaces a document's full text.
func (s *MemStore) Write(docPath, text string) error {
	s.files[docPath] = text
	s.markParents(docPath)

	return nil
}

// Create writes a new document. Returns ErrExists if the path is taken.
func (s *MemStore) Create(docPath, text string) (Doc, error) {
	if s.Kind(docPath) != EntryNone {
		return Doc{}, fmt.Errorf("%w: %s", ErrExists, docPath)
	}

	return s.Add(docPath, text), nil
}

// Metadata parses the document's frontmatter on demand.
func (s *MemStore) Metadata(docPath string) (Fields, error) {
	text, err := s.Read(docPath)
	if err != nil {
		return nil, err
	}

	fields, parseErr := ParseFields(text)
	if parseErr != nil {
		return nil, fmt.Errorf("%s: %w", docPath, parseErr)
	}

	return fields, nil
}

// SetFields merges fields into the document's frontmatter block.
func (s *MemStore) SetFields(docPath string, fields Fields) error {
	text, err := s.Read(docPath)
	if err != nil {
		return err
	}

	merged, mergeErr := MergeFields(text, fields)
	if mergeErr != nil {
		return fmt.Errorf("%s: %w", docPath, mergeErr)
	}

	return s.Write(docPath, merged)
}

// EnsureFolder records the folder path segment by segment, erroring when a
// segment collides with a file.
func (s *MemStore) EnsureFolder(folderPath string) error {
	for _, segment := range folderSegments(folderPath) {
		if _, isFile := s.files[segment]; isFile {
			return fmt.Errorf("%w: %s", ErrNotFolder, segment)
		}

		s.folders[segment] = true
	}

	return nil
}

// Kind reports what the path currently points at.
func (s *MemStore) Kind(p string) EntryKind {
	if _, ok := s.files[p]; ok {
		return EntryFile
	}

	if s.folders[p] {
		return EntryFolder
	}

	return EntryNone
}

// markParents records the implicit folders containing a file path.
func (s *MemStore) markParents(docPath string) {
	dir := path.Dir(docPath)
	if dir == "." || dir == "/" {
		return
	}

	for _, segment := range folderSegments(dir) {
		s.folders[segment] = true
	}
}
