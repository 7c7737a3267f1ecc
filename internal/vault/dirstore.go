package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/natefinch/atomic"
)

const dirPerms = 0o750

// DirStore implements [Store] over a real directory tree.
//
// Metadata reads go through an mtime-keyed frontmatter cache persisted as
// [CacheFileName] in the vault root. Call [DirStore.FlushCache] once after a
// batch of operations; a failed or skipped flush only costs reparsing.
type DirStore struct {
	root string

	cache      *metaCache
	cacheDirty bool
}

// NewDirStore creates a store rooted at the given directory.
func NewDirStore(root string) *DirStore {
	return &DirStore{root: root}
}

// Root returns the vault root directory.
func (s *DirStore) Root() string {
	return s.root
}

func (s *DirStore) osPath(docPath string) string {
	return filepath.Join(s.root, filepath.FromSlash(docPath))
}

// List returns every markdown document under the vault root, sorted by
// path. Hidden directories (dot-prefixed) are skipped.
func (s *DirStore) List() ([]Doc, error) {
	var docs []Doc

	walkErr := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if p != s.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if !IsMarkdown(d.Name()) {
			return nil
		}

		rel, relErr := filepath.Rel(s.root, p)
		if relErr != nil {
			return relErr
		}

		docs = append(docs, Doc{Path: filepath.ToSlash(rel)})

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("listing vault: %w", walkErr)
	}

	slices.SortFunc(docs, func(a, b Doc) int {
		return strings.Compare(a.Path, b.Path)
	})

	return docs, nil
}

// Read returns a document's full text.
func (s *DirStore) Read(docPath string) (string, error) {
	data, err := os.ReadFile(s.osPath(docPath))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, docPath)
		}

		return "", fmt.Errorf("reading %s: %w", docPath, err)
	}

	return string(data), nil
}

// Write atomically replaces a document's full text.
func (s *DirStore) Write(docPath, text string) error {
	err := atomic.WriteFile(s.osPath(docPath), strings.NewReader(text))
	if err != nil {
		return fmt.Errorf("writing %s: %w", docPath, err)
	}

	s.invalidate(docPath)

	return nil
}

// Create writes a new document, creating missing parent directories.
// Returns ErrExists if the path is already taken.
func (s *DirStore) Create(docPath, text string) (Doc, error) {
	if s.Kind(docPath) != EntryNone {
		return Doc{}, fmt.Errorf("%w: %s", ErrExists, docPath)
	}

	osPath := s.osPath(docPath)

	mkdirErr := os.MkdirAll(filepath.Dir(osPath), dirPerms)
	if mkdirErr != nil {
		return Doc{}, fmt.Errorf("creating parent folder for %s: %w", docPath, mkdirErr)
	}

	writeErr := atomic.WriteFile(osPath, strings.NewReader(text))
	if writeErr != nil {
		return Doc{}, fmt.Errorf("creating %s: %w", docPath, writeErr)
	}

	s.invalidate(docPath)

	return Doc{Path: docPath}, nil
}

// Metadata returns the document's frontmatter mapping, served from the
// mtime cache when the file is unchanged since the last parse.
func (s *DirStore) Metadata(docPath string) (Fields, error) {
	info, statErr := os.Stat(s.osPath(docPath))
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, docPath)
		}

		return nil, fmt.Errorf("stat %s: %w", docPath, statErr)
	}

	s.ensureCache()

	if entry, ok := s.cache.Entries[docPath]; ok && entry.Mtime.Equal(info.ModTime()) {
		return entry.Fields, nil
	}

	text, readErr := s.Read(docPath)
	if readErr != nil {
		return nil, readErr
	}

	fields, parseErr := ParseFields(text)
	if parseErr != nil {
		return nil, fmt.Errorf("%s: %w", docPath, parseErr)
	}

	s.cache.Entries[docPath] = metaEntry{Mtime: info.ModTime(), Fields: fields}
	s.cacheDirty = true

	return fields, nil
}

// SetFields merges fields into the document's frontmatter block.
func (s *DirStore) SetFields(docPath string, fields Fields) error {
	text, readErr := s.Read(docPath)
	if readErr != nil {
		return readErr
	}

	merged, mergeErr := MergeFields(text, fields)
	if mergeErr != nil {
		return fmt.Errorf("%s: %w", docPath, mergeErr)
	}

	return s.Write(docPath, merged)
}

// EnsureFolder creates the folder path one segment at a time. A segment
// that exists as a file is an error; existing folders are left alone.
func (s *DirStore) EnsureFolder(folderPath string) error {
	for _, segment := range folderSegments(folderPath) {
		osPath := s.osPath(segment)

		info, statErr := os.Stat(osPath)
		if statErr == nil {
			if !info.IsDir() {
				return fmt.Errorf("%w: %s", ErrNotFolder, segment)
			}

			continue
		}

		if !os.IsNotExist(statErr) {
			return fmt.Errorf("stat %s: %w", segment, statErr)
		}

		mkdirErr := os.Mkdir(osPath, dirPerms)
		if mkdirErr != nil && !errors.Is(mkdirErr, fs.ErrExist) {
			return fmt.Errorf("creating folder %s: %w", segment, mkdirErr)
		}
	}

	return nil
}

// Kind reports what the path currently points at.
func (s *DirStore) Kind(p string) EntryKind {
	info, err := os.Stat(s.osPath(p))
	if err != nil {
		return EntryNone
	}

	if info.IsDir() {
		return EntryFolder
	}

	return EntryFile
}

// FlushCache persists the metadata cache if it changed. Safe to skip;
// missing cache data only costs reparsing on the next run.
func (s *DirStore) FlushCache() error {
	if !s.cacheDirty || s.cache == nil {
		return nil
	}

	err := saveMetaCache(s.root, s.cache)
	if err != nil {
		return err
	}

	s.cacheDirty = false

	return nil
}

// ensureCache lazily loads the persisted cache. Load failures degrade to an
// empty cache; corruption is repaired by the next flush.
func (s *DirStore) ensureCache() {
	if s.cache != nil {
		return
	}

	cache, err := loadMetaCache(s.root)
	if err != nil {
		cache = newMetaCache()
	}

	s.cache = cache
}

func (s *DirStore) invalidate(docPath string) {
	if s.cache == nil {
		return
	}

	if _, ok := s.cache.Entries[docPath]; ok {
		delete(s.cache.Entries, docPath)

		s.cacheDirty = true
	}
}
