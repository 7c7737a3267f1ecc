package vault

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, text string) {
	t.Helper()

	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
	require.NoError(t, os.WriteFile(full, []byte(text), 0o600))
}

func TestDirStoreList(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "b.md", "")
	writeFile(t, root, "a.md", "")
	writeFile(t, root, "sub/c.md", "")
	writeFile(t, root, "sub/skip.txt", "")
	writeFile(t, root, ".hidden/d.md", "")

	docs, err := NewDirStore(root).List()
	require.NoError(t, err)

	want := []Doc{{Path: "a.md"}, {Path: "b.md"}, {Path: "sub/c.md"}}
	if diff := cmp.Diff(want, docs); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestDirStoreReadWrite(t *testing.T) {
	t.Parallel()

	store := NewDirStore(t.TempDir())

	_, err := store.Read("missing.md")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Create("note.md", "first")
	require.NoError(t, err)

	_, err = store.Create("note.md", "again")
	assert.ErrorIs(t, err, ErrExists)

	require.NoError(t, store.Write("note.md", "second"))

	text, err := store.Read("note.md")
	require.NoError(t, err)
	assert.Equal(t, "second", text)
}

func TestDirStoreMetadataCache(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewDirStore(root)
	writeFile(t, root, "note.md", "---\nstatus: open\n---\n")

	fields, err := store.Metadata("note.md")
	require.NoError(t, err)
	assert.Equal(t, "open", fields.Get("status").String())

	require.NoError(t, store.FlushCache())

	// A fresh store must serve the cached fields, and must reparse once
	// the file's mtime changes.
	fresh := NewDirStore(root)

	fields, err = fresh.Metadata("note.md")
	require.NoError(t, err)
	assert.Equal(t, "open", fields.Get("status").String())

	writeFile(t, root, "note.md", "---\nstatus: done\n---\n")
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(filepath.Join(root, "note.md"), future, future))

	fields, err = fresh.Metadata("note.md")
	require.NoError(t, err)
	assert.Equal(t, "done", fields.Get("status").String())
}

func TestDirStoreCorruptCacheIsIgnored(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, CacheFileName), []byte("not gob"), 0o600))
	writeFile(t, root, "note.md", "---\nstatus: open\n---\n")

	fields, err := NewDirStore(root).Metadata("note.md")
	require.NoError(t, err)
	assert.Equal(t, "open", fields.Get("status").String())
}

func TestDirStoreEnsureFolder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewDirStore(root)

	require.NoError(t, store.EnsureFolder("projects/sub"))
	assert.Equal(t, EntryFolder, store.Kind("projects"))
	assert.Equal(t, EntryFolder, store.Kind("projects/sub"))

	// Idempotent.
	require.NoError(t, store.EnsureFolder("projects/sub"))

	// A file in the way is an error.
	writeFile(t, root, "blocked", "")
	err := store.EnsureFolder("blocked/sub")
	assert.ErrorIs(t, err, ErrNotFolder)
}

func TestDirStoreSetFields(t *testing.T) {
	t.Parallel()

	store := NewDirStore(t.TempDir())

	_, err := store.Create("note.md", "---\nstatus: open\n---\nbody\n")
	require.NoError(t, err)

	require.NoError(t, store.SetFields("note.md", Fields{"project": StringValue("Acme")}))

	text, err := store.Read("note.md")
	require.NoError(t, err)
	assert.Equal(t, "---\nstatus: open\nproject: Acme\n---\nbody\n", text)

	fields, err := store.Metadata("note.md")
	require.NoError(t, err)
	assert.Equal(t, "Acme", fields.Get("project").String())
}
