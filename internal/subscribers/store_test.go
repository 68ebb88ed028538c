package subscribers

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir(), log.New(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAddAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, 100, "huy"))
	require.NoError(t, store.Add(ctx, 200, ""))

	subs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)

	assert.Equal(t, int64(100), subs[0].ChatID)
	assert.Equal(t, "huy", subs[0].Username)
	assert.False(t, subs[0].AddedAt.IsZero())
	assert.Equal(t, int64(200), subs[1].ChatID)
}

func TestAddIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, 100, "huy"))
	require.NoError(t, store.Add(ctx, 100, "huy_renamed"))

	subs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "huy_renamed", subs[0].Username)
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, 100, "huy"))
	require.NoError(t, store.Remove(ctx, 100))

	subs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, subs)

	// Removing an unknown chat is not an error.
	require.NoError(t, store.Remove(ctx, 999))
}

func TestListEmpty(t *testing.T) {
	store := newTestStore(t)

	subs, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, subs)
}
