package storage

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestFileKV(t *testing.T) (KV, string) {
	t.Helper()
	dir := t.TempDir()
	kv, err := NewFileKV(dir, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	require.NoError(t, err)
	return kv, dir
}

func Test_FileKV_SaveLoad(t *testing.T) {
	kv, _ := newTestFileKV(t)

	require.NoError(t, kv.Save("doc", testDoc{Name: "cart", Count: 3}))

	var got testDoc
	found, err := kv.Load("doc", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, testDoc{Name: "cart", Count: 3}, got)
}

func Test_FileKV_MissingKey(t *testing.T) {
	kv, _ := newTestFileKV(t)

	var got testDoc
	found, err := kv.Load("never_written", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func Test_FileKV_CorruptDocumentDiscarded(t *testing.T) {
	kv, dir := newTestFileKV(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.json"), []byte("{not json"), 0o644))

	var got testDoc
	found, err := kv.Load("doc", &got)
	require.NoError(t, err)
	assert.False(t, found, "corrupt document must be treated as absent")

	// The corrupt file is gone; the key is writable again.
	require.NoError(t, kv.Save("doc", testDoc{Name: "fresh"}))
	found, err = kv.Load("doc", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "fresh", got.Name)
}

func Test_FileKV_Delete(t *testing.T) {
	kv, _ := newTestFileKV(t)

	require.NoError(t, kv.Save("doc", testDoc{Name: "x"}))
	require.NoError(t, kv.Delete("doc"))
	require.NoError(t, kv.Delete("doc"), "deleting an absent key is a no-op")

	var got testDoc
	found, err := kv.Load("doc", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func Test_MemoryKV_SaveLoad(t *testing.T) {
	kv := NewMemoryKV()

	require.NoError(t, kv.Save("doc", testDoc{Name: "orders", Count: 1}))

	var got testDoc
	found, err := kv.Load("doc", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "orders", got.Name)
}
