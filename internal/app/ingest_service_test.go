package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/model"
	"docqa/internal/vectorstore/memory"
)

func passthroughExtract(content []byte) (string, error) {
	return string(content), nil
}

func ingestJob(userID, fileName, text string, size, overlap int) model.IngestJob {
	return model.IngestJob{
		JobID:        "job-1",
		UserID:       userID,
		FileName:     fileName,
		Content:      []byte(text),
		ChunkSize:    size,
		ChunkOverlap: overlap,
	}
}

func TestProcessDocument(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	embedder := newFakeEmbedder(3)
	svc := NewIngestService(store, embedder, passthroughExtract, 3)

	count, err := svc.ProcessDocument(ctx, ingestJob("alice", "doc.pdf", "ABCDEFGHIJ", 4, 1))
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// The whole document is embedded in one batched request.
	assert.Equal(t, 1, embedder.batchCalls)

	key := model.CollectionKeyForUser("alice")
	exists, err := store.HasCollection(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	results, err := store.Query(ctx, key, []float32{0, 0, 1}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestProcessDocumentInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := NewIngestService(memory.NewStore(), newFakeEmbedder(3), passthroughExtract, 3)

	tests := []struct {
		name string
		job  model.IngestJob
	}{
		{"bad user id", ingestJob("no spaces allowed", "doc.pdf", "text", 4, 1)},
		{"empty text", ingestJob("alice", "blank.pdf", "   \n\t", 4, 1)},
		{"overlap not below size", ingestJob("alice", "doc.pdf", "text", 4, 4)},
		{"zero chunk size", ingestJob("alice", "doc.pdf", "text", 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ProcessDocument(ctx, tt.job)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestProcessDocumentExtractionFailure(t *testing.T) {
	failingExtract := func([]byte) (string, error) {
		return "", errors.New("malformed pdf")
	}

	store := memory.NewStore()
	svc := NewIngestService(store, newFakeEmbedder(3), failingExtract, 3)

	_, err := svc.ProcessDocument(context.Background(), ingestJob("alice", "broken.pdf", "x", 4, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.pdf")

	// A failed document leaves no trace behind.
	exists, err := store.HasCollection(context.Background(), model.CollectionKeyForUser("alice"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProcessDocumentEmbeddingFailure(t *testing.T) {
	store := memory.NewStore()
	embedder := newFakeEmbedder(3)
	embedder.batchErr = errors.New("service overloaded")
	svc := NewIngestService(store, embedder, passthroughExtract, 3)

	_, err := svc.ProcessDocument(context.Background(), ingestJob("alice", "doc.pdf", "ABCDEFGHIJ", 4, 1))
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)

	exists, hasErr := store.HasCollection(context.Background(), model.CollectionKeyForUser("alice"))
	require.NoError(t, hasErr)
	assert.False(t, exists)
}

func TestProcessDocumentsAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	embedder := newFakeEmbedder(3)

	// The second file fails extraction, the other two go through untouched.
	extract := func(content []byte) (string, error) {
		if string(content) == "CORRUPT" {
			return "", errors.New("malformed pdf")
		}
		return string(content), nil
	}
	svc := NewIngestService(store, embedder, extract, 3)

	count1, err := svc.ProcessDocument(ctx, ingestJob("alice", "one.pdf", "ABCDEFGH", 4, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, count1)

	_, err = svc.ProcessDocument(ctx, ingestJob("alice", "two.pdf", "CORRUPT", 4, 0))
	require.Error(t, err)

	count3, err := svc.ProcessDocument(ctx, ingestJob("alice", "three.pdf", "IJKL", 4, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, count3)

	results, err := store.Query(ctx, model.CollectionKeyForUser("alice"), []float32{0, 0, 1}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}
