package memory

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"docqa/internal/model"
	"docqa/internal/vectorstore"
)

// Store is an in-memory vectorstore.Store using brute-force cosine similarity.
// It backs tests and local runs without a Milvus instance.
type Store struct {
	mu          sync.RWMutex
	collections map[model.CollectionKey]*collection
}

type collection struct {
	dimension int
	records   []vectorstore.Record
}

func NewStore() *Store {
	return &Store{collections: make(map[model.CollectionKey]*collection)}
}

var _ vectorstore.Store = (*Store)(nil)

func (s *Store) EnsureCollection(_ context.Context, key model.CollectionKey, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[key]; !ok {
		s.collections[key] = &collection{dimension: dimension}
	}
	return nil
}

func (s *Store) HasCollection(_ context.Context, key model.CollectionKey) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.collections[key]
	return ok, nil
}

func (s *Store) Upsert(_ context.Context, key model.CollectionKey, records []vectorstore.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.collections[key]
	if !ok {
		return vectorstore.ErrCollectionNotFound
	}
	for _, r := range records {
		if len(r.Vector) != coll.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	coll.records = append(coll.records, records...)
	return nil
}

func (s *Store) Query(_ context.Context, key model.CollectionKey, vector []float32, topK int) ([]vectorstore.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	coll, ok := s.collections[key]
	if !ok {
		return nil, vectorstore.ErrCollectionNotFound
	}
	if topK <= 0 {
		topK = 5
	}

	scored := make([]vectorstore.Result, len(coll.records))
	for i, r := range coll.records {
		scored[i] = vectorstore.Result{
			Text:  r.Text,
			Score: cosineSimilarity(vector, r.Vector),
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if topK > len(scored) {
		topK = len(scored)
	}
	return scored[:topK], nil
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA <= 0 || normB <= 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
