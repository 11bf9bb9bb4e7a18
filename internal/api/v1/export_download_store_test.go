package v1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportDownloadStore_Expiry(t *testing.T) {
	store := newExportDownloadStore()

	token := store.put("/tmp/export.xlsx", 2, time.Millisecond)
	_, ok := store.get(token)
	require.True(t, ok)

	time.Sleep(5 * time.Millisecond)
	_, ok = store.get(token)
	assert.False(t, ok, "expired tokens must not resolve")
}

func TestExportDownloadStore_Delete(t *testing.T) {
	store := newExportDownloadStore()

	token := store.put("/tmp/export.xlsx", 1, time.Minute)
	store.delete(token)

	_, ok := store.get(token)
	assert.False(t, ok)
}

func TestExportDownloadStore_TokensAreUnique(t *testing.T) {
	store := newExportDownloadStore()

	a := store.put("/tmp/a.xlsx", 1, time.Minute)
	b := store.put("/tmp/b.xlsx", 1, time.Minute)
	assert.NotEqual(t, a, b)

	item, ok := store.get(a)
	require.True(t, ok)
	assert.Equal(t, "/tmp/a.xlsx", item.filePath)
}
