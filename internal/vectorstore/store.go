package vectorstore

import (
	"context"
	"errors"

	"docqa/internal/model"
)

// ErrCollectionNotFound is returned by Query when the collection has never
// been created, so callers can tell "no documents yet" from a store failure.
var ErrCollectionNotFound = errors.New("collection not found")

// Record is one chunk persisted into a collection.
type Record struct {
	ID       string
	Document string
	Seq      int
	Text     string
	Vector   []float32
}

// Result is one retrieved chunk, scored by the store.
type Result struct {
	Text  string
	Score float32
}

// Store persists chunk vectors in per-user collections and answers
// nearest-neighbor queries. Results come back in the store's rank order,
// most similar first.
type Store interface {
	// EnsureCollection creates the collection if it does not exist.
	EnsureCollection(ctx context.Context, key model.CollectionKey, dimension int) error
	// HasCollection reports whether the collection has been created.
	HasCollection(ctx context.Context, key model.CollectionKey) (bool, error)
	// Upsert writes records into an existing collection.
	Upsert(ctx context.Context, key model.CollectionKey, records []Record) error
	// Query returns up to topK nearest records; ErrCollectionNotFound if the
	// collection was never created.
	Query(ctx context.Context, key model.CollectionKey, vector []float32, topK int) ([]Result, error)
}
