package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "poseidon.db")

	store, err := OpenSQLiteStore(path)
	require.NoError(t, err)

	recs, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)

	want := sampleRecords()
	for _, r := range want {
		require.NoError(t, store.Append(ctx, r))
	}
	require.NoError(t, store.Close())

	reopened, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("reloaded table mismatch (-want +got):\n%s", diff)
	}

	filtered, err := reopened.Query(ctx, Filter{Area: "九十九里", Species: "ヒラメ"})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
}

func TestSQLiteStoreRejectsNegativeCount(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "poseidon.db"))
	require.NoError(t, err)
	defer store.Close()

	rec := sampleRecords()[0]
	rec.Count = -1
	assert.Error(t, store.Append(context.Background(), rec))
}
