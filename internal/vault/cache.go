package vault

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
)

// CacheFileName is the metadata cache file stored in the vault root.
const CacheFileName = ".pindex-cache"

// metaCache stores parsed frontmatter keyed by vault path with the file
// mtime observed at parse time. An entry is valid only while the file's
// mtime is unchanged.
type metaCache struct {
	Entries map[string]metaEntry
}

// metaEntry holds cached frontmatter for a single document.
type metaEntry struct {
	Mtime  time.Time
	Fields Fields
}

func newMetaCache() *metaCache {
	return &metaCache{Entries: make(map[string]metaEntry)}
}

// loadMetaCache loads the cache from the vault root.
// Returns errCacheNotFound if the file doesn't exist.
// Returns errCacheCorrupt if the file can't be decoded.
func loadMetaCache(root string) (*metaCache, error) {
	cachePath := filepath.Join(root, CacheFileName)

	file, err := os.Open(cachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errCacheNotFound
		}

		return nil, fmt.Errorf("opening metadata cache: %w", err)
	}

	defer func() { _ = file.Close() }()

	var cache metaCache

	decodeErr := gob.NewDecoder(file).Decode(&cache)
	if decodeErr != nil {
		return nil, errCacheCorrupt
	}

	if cache.Entries == nil {
		cache.Entries = make(map[string]metaEntry)
	}

	return &cache, nil
}

// saveMetaCache writes the cache atomically so a crashed writer never
// leaves a truncated cache behind.
func saveMetaCache(root string, cache *metaCache) error {
	var buf bytes.Buffer

	encodeErr := gob.NewEncoder(&buf).Encode(cache)
	if encodeErr != nil {
		return fmt.Errorf("encoding metadata cache: %w", encodeErr)
	}

	cachePath := filepath.Join(root, CacheFileName)

	writeErr := atomic.WriteFile(cachePath, &buf)
	if writeErr != nil {
		return fmt.Errorf("writing metadata cache: %w", writeErr)
	}

	return nil
}
