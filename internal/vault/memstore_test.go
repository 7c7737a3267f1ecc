package vault

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreBehavesLikeStore(t *testing.T) {
	t.Parallel()

	store := NewMemStore()
	store.Add("projects/Acme.md", "---\ntype: project_index\nproject: Acme\n---\n")
	store.Add("notes/one.md", "---\nproject: Acme\nstatus: open\n---\n")
	store.Add("readme.txt", "not markdown")

	docs, err := store.List()
	require.NoError(t, err)

	want := []Doc{{Path: "notes/one.md"}, {Path: "projects/Acme.md"}}
	if diff := cmp.Diff(want, docs); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	fields, err := store.Metadata("notes/one.md")
	require.NoError(t, err)
	assert.Equal(t, "open", fields.Get("status").String())

	_, err = store.Metadata("nope.md")
	assert.ErrorIs(t, err, ErrNotFound)

	// Implicit parent folders are visible to Kind.
	assert.Equal(t, EntryFolder, store.Kind("projects"))
	assert.Equal(t, EntryFile, store.Kind("notes/one.md"))
	assert.Equal(t, EntryNone, store.Kind("missing"))

	_, err = store.Create("notes/one.md", "dup")
	assert.ErrorIs(t, err, ErrExists)

	err = store.EnsureFolder("notes/one.md/sub")
	assert.ErrorIs(t, err, ErrNotFolder)

	require.NoError(t, store.EnsureFolder("a/b"))
	assert.Equal(t, EntryFolder, store.Kind("a/b"))
}

func TestMemStoreBasename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Note", Doc{Path: "sub/dir/Note.md"}.Basename())
	assert.Equal(t, "Note", Doc{Path: "Note.md"}.Basename())
}
