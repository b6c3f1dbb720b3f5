package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"docqa/internal/chunker"
	"docqa/internal/model"
	"docqa/internal/vectorstore"
)

// ExtractFunc pulls plain text out of an uploaded document's bytes.
type ExtractFunc func(content []byte) (string, error)

// IngestService runs the extract -> chunk -> embed -> store pipeline for one
// file. Any step failing aborts the whole file; nothing is persisted for a
// failed document.
type IngestService struct {
	store     vectorstore.Store
	embedder  Embedder
	extract   ExtractFunc
	dimension int
}

func NewIngestService(store vectorstore.Store, embedder Embedder, extract ExtractFunc, dimension int) *IngestService {
	return &IngestService{
		store:     store,
		embedder:  embedder,
		extract:   extract,
		dimension: dimension,
	}
}

// ProcessDocument ingests one file into the user's collection and returns the
// number of chunks persisted.
func (s *IngestService) ProcessDocument(ctx context.Context, job model.IngestJob) (int, error) {
	if !model.ValidUserID(job.UserID) {
		return 0, fmt.Errorf("%w: user id must be 1-64 letters, digits, '_' or '-'", ErrInvalidInput)
	}

	text, err := s.extract(job.Content)
	if err != nil {
		return 0, fmt.Errorf("extract text from %q failed: %w", job.FileName, err)
	}
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("%w: %q contains no extractable text", ErrInvalidInput, job.FileName)
	}

	chunks, err := chunker.Split(text, job.ChunkSize, job.ChunkOverlap)
	if err != nil {
		if errors.Is(err, chunker.ErrInvalidChunking) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return 0, fmt.Errorf("chunk text of %q failed: %w", job.FileName, err)
	}

	// One batched embedding call for the whole document, not one per chunk.
	vectors, err := s.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return 0, upstreamError("embed chunks", err)
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("embedding count mismatch for %q: %d chunks, %d vectors", job.FileName, len(chunks), len(vectors))
	}

	key := model.CollectionKeyForUser(job.UserID)
	if err := s.store.EnsureCollection(ctx, key, s.dimension); err != nil {
		return 0, upstreamError("ensure collection", err)
	}

	records := make([]vectorstore.Record, len(chunks))
	for i := range chunks {
		records[i] = vectorstore.Record{
			ID:       uuid.NewString(),
			Document: job.FileName,
			Seq:      i,
			Text:     chunks[i],
			Vector:   vectors[i],
		}
	}
	if err := s.store.Upsert(ctx, key, records); err != nil {
		return 0, upstreamError("upsert chunks", err)
	}

	return len(records), nil
}
