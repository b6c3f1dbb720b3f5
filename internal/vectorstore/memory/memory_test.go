package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/model"
	"docqa/internal/vectorstore"
)

func TestQueryUnknownCollection(t *testing.T) {
	store := NewStore()
	key := model.CollectionKeyForUser("nobody")

	_, err := store.Query(context.Background(), key, []float32{1, 0}, 5)
	assert.ErrorIs(t, err, vectorstore.ErrCollectionNotFound)

	exists, err := store.HasCollection(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpsertAndQueryRankOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	key := model.CollectionKeyForUser("alice")

	require.NoError(t, store.EnsureCollection(ctx, key, 2))

	records := []vectorstore.Record{
		{ID: "a", Text: "exact match", Vector: []float32{1, 0}},
		{ID: "b", Text: "orthogonal", Vector: []float32{0, 1}},
		{ID: "c", Text: "close match", Vector: []float32{0.9, 0.1}},
	}
	require.NoError(t, store.Upsert(ctx, key, records))

	results, err := store.Query(ctx, key, []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "exact match", results[0].Text)
	assert.Equal(t, "close match", results[1].Text)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestQueryReturnsAtMostTopK(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	key := model.CollectionKeyForUser("bob")

	require.NoError(t, store.EnsureCollection(ctx, key, 2))
	require.NoError(t, store.Upsert(ctx, key, []vectorstore.Record{
		{ID: "only", Text: "one chunk", Vector: []float32{1, 1}},
	}))

	results, err := store.Query(ctx, key, []float32{1, 1}, 5)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestUpsertDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	key := model.CollectionKeyForUser("carol")

	require.NoError(t, store.EnsureCollection(ctx, key, 3))
	err := store.Upsert(ctx, key, []vectorstore.Record{
		{ID: "bad", Text: "wrong size", Vector: []float32{1, 0}},
	})
	assert.Error(t, err)
}

func TestEnsureCollectionIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	key := model.CollectionKeyForUser("dave")

	require.NoError(t, store.EnsureCollection(ctx, key, 2))
	require.NoError(t, store.Upsert(ctx, key, []vectorstore.Record{
		{ID: "x", Text: "kept", Vector: []float32{1, 0}},
	}))
	require.NoError(t, store.EnsureCollection(ctx, key, 2))

	results, err := store.Query(ctx, key, []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "kept", results[0].Text)
}
