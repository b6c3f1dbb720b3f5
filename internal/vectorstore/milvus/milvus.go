package milvus

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"docqa/internal/model"
	"docqa/internal/vectorstore"
)

const (
	fieldID       = "id"
	fieldVector   = "embedding"
	fieldChunkID  = "chunk_id"
	fieldDocument = "document"
	fieldSeq      = "seq"
	fieldContent  = "content"
)

// Store implements vectorstore.Store on a Milvus instance, one collection per
// user.
type Store struct {
	client *milvusclient.Client
}

func NewStore(client *milvusclient.Client) *Store {
	return &Store{client: client}
}

var _ vectorstore.Store = (*Store)(nil)

func (s *Store) EnsureCollection(ctx context.Context, key model.CollectionKey, dimension int) error {
	name := key.String()

	exists, err := s.client.HasCollection(ctx, milvusclient.NewHasCollectionOption(name))
	if err != nil {
		return fmt.Errorf("check collection existence failed: %w", err)
	}
	if exists {
		return nil
	}

	schema := entity.NewSchema().
		WithName(name).
		WithDescription("per-user document chunks").
		WithAutoID(true)
	schema.WithField(
		entity.NewField().
			WithName(fieldID).
			WithDataType(entity.FieldTypeInt64).
			WithIsPrimaryKey(true).
			WithIsAutoID(true),
	)
	schema.WithField(
		entity.NewField().
			WithName(fieldVector).
			WithDataType(entity.FieldTypeFloatVector).
			WithDim(int64(dimension)),
	)
	schema.WithField(
		entity.NewField().
			WithName(fieldChunkID).
			WithDataType(entity.FieldTypeVarChar).
			WithMaxLength(64),
	)
	schema.WithField(
		entity.NewField().
			WithName(fieldDocument).
			WithDataType(entity.FieldTypeVarChar).
			WithMaxLength(512),
	)
	schema.WithField(
		entity.NewField().
			WithName(fieldSeq).
			WithDataType(entity.FieldTypeInt64),
	)
	schema.WithField(
		entity.NewField().
			WithName(fieldContent).
			WithDataType(entity.FieldTypeVarChar).
			WithMaxLength(65535),
	)

	if err := s.client.CreateCollection(ctx, milvusclient.NewCreateCollectionOption(name, schema)); err != nil {
		return fmt.Errorf("create collection failed: %w", err)
	}

	idx := index.NewIvfFlatIndex(entity.L2, 128)
	createIdxTask, err := s.client.CreateIndex(ctx, milvusclient.NewCreateIndexOption(name, fieldVector, idx))
	if err != nil {
		return fmt.Errorf("create index failed: %w", err)
	}
	if err := createIdxTask.Await(ctx); err != nil {
		return fmt.Errorf("wait for index creation failed: %w", err)
	}

	loadTask, err := s.client.LoadCollection(ctx, milvusclient.NewLoadCollectionOption(name))
	if err != nil {
		return fmt.Errorf("load collection failed: %w", err)
	}
	if err := loadTask.Await(ctx); err != nil {
		return fmt.Errorf("wait for collection loading failed: %w", err)
	}
	return nil
}

func (s *Store) HasCollection(ctx context.Context, key model.CollectionKey) (bool, error) {
	exists, err := s.client.HasCollection(ctx, milvusclient.NewHasCollectionOption(key.String()))
	if err != nil {
		return false, fmt.Errorf("check collection existence failed: %w", err)
	}
	return exists, nil
}

func (s *Store) Upsert(ctx context.Context, key model.CollectionKey, records []vectorstore.Record) error {
	if len(records) == 0 {
		return nil
	}
	name := key.String()

	vectors := make([][]float32, len(records))
	chunkIDs := make([]string, len(records))
	documents := make([]string, len(records))
	seqs := make([]int64, len(records))
	contents := make([]string, len(records))
	for i, r := range records {
		vectors[i] = r.Vector
		chunkIDs[i] = r.ID
		documents[i] = r.Document
		seqs[i] = int64(r.Seq)
		contents[i] = r.Text
	}

	columns := []column.Column{
		column.NewColumnFloatVector(fieldVector, len(vectors[0]), vectors),
		column.NewColumnVarChar(fieldChunkID, chunkIDs),
		column.NewColumnVarChar(fieldDocument, documents),
		column.NewColumnInt64(fieldSeq, seqs),
		column.NewColumnVarChar(fieldContent, contents),
	}
	if _, err := s.client.Insert(ctx, milvusclient.NewColumnBasedInsertOption(name, columns...)); err != nil {
		return fmt.Errorf("insert records failed: %w", err)
	}

	// Flush so freshly ingested chunks are visible to the next query.
	flushTask, err := s.client.Flush(ctx, milvusclient.NewFlushOption(name))
	if err != nil {
		return fmt.Errorf("flush collection failed: %w", err)
	}
	if err := flushTask.Await(ctx); err != nil {
		return fmt.Errorf("wait for flush failed: %w", err)
	}
	return nil
}

func (s *Store) Query(ctx context.Context, key model.CollectionKey, vector []float32, topK int) ([]vectorstore.Result, error) {
	name := key.String()

	exists, err := s.client.HasCollection(ctx, milvusclient.NewHasCollectionOption(name))
	if err != nil {
		return nil, fmt.Errorf("check collection existence failed: %w", err)
	}
	if !exists {
		return nil, vectorstore.ErrCollectionNotFound
	}

	loadTask, err := s.client.LoadCollection(ctx, milvusclient.NewLoadCollectionOption(name))
	if err != nil {
		return nil, fmt.Errorf("load collection failed: %w", err)
	}
	if err := loadTask.Await(ctx); err != nil {
		return nil, fmt.Errorf("wait for collection loading failed: %w", err)
	}

	searchVectors := []entity.Vector{entity.FloatVector(vector)}
	results, err := s.client.Search(ctx, milvusclient.NewSearchOption(name, topK, searchVectors).
		WithANNSField(fieldVector).
		WithSearchParam("nprobe", "16").
		WithOutputFields(fieldContent))
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	out := make([]vectorstore.Result, 0, results[0].ResultCount)
	for i := 0; i < results[0].ResultCount; i++ {
		res := vectorstore.Result{Score: results[0].Scores[i]}
		for _, field := range results[0].Fields {
			if col, ok := field.(*column.ColumnVarChar); ok && col.Name() == fieldContent {
				res.Text = col.Data()[i]
			}
		}
		out = append(out, res)
	}
	return out, nil
}
