package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"docqa/internal/app"
	"docqa/internal/jobs"
	"docqa/internal/model"
	"docqa/internal/repository"
)

// IngestWorker consumes ingestion jobs from the queue and runs the document
// pipeline. Each delivery is one file; a failing file is reported through the
// job tracker and never blocks other files.
type IngestWorker struct {
	conn      *amqp.Connection
	ingest    *app.IngestService
	tracker   *jobs.Tracker
	docRepo   *repository.DocumentRepository
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewIngestWorker(
	conn *amqp.Connection,
	ingest *app.IngestService,
	tracker *jobs.Tracker,
	docRepo *repository.DocumentRepository,
	queueName string,
) *IngestWorker {
	return &IngestWorker{
		conn:      conn,
		ingest:    ingest,
		tracker:   tracker,
		docRepo:   docRepo,
		queueName: queueName,
	}
}

func (w *IngestWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				w.handleDelivery(workerCtx, d)
			}
		}
	}()

	return nil
}

func (w *IngestWorker) handleDelivery(ctx context.Context, d amqp.Delivery) {
	var job model.IngestJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		log.Printf("worker decode ingest job failed: %v", err)
		_ = d.Nack(false, false)
		return
	}

	w.setStatus(ctx, job.JobID, model.JobRunning, fmt.Sprintf("processing %q", job.FileName))

	chunkCount, err := w.ingest.ProcessDocument(ctx, job)
	if err != nil {
		detail := fmt.Sprintf("ingestion of %q for user %q failed: %v", job.FileName, job.UserID, err)
		log.Printf("worker %s", detail)
		w.setStatus(ctx, job.JobID, model.JobFailed, detail)
		_ = d.Nack(false, false)
		return
	}

	w.setStatus(ctx, job.JobID, model.JobSucceeded, fmt.Sprintf("ingested %q: %d chunks", job.FileName, chunkCount))

	if err := w.docRepo.Create(&model.Document{
		UserID:     job.UserID,
		Name:       job.FileName,
		ChunkCount: chunkCount,
	}); err != nil {
		// Chunks are already persisted; the registry row is best-effort.
		log.Printf("worker record document failed: %v", err)
	}

	_ = d.Ack(false)
}

func (w *IngestWorker) setStatus(ctx context.Context, jobID string, state model.JobState, detail string) {
	if err := w.tracker.Set(ctx, model.JobStatus{JobID: jobID, State: state, Detail: detail}); err != nil {
		log.Printf("worker update job status failed: %v", err)
	}
}

func (w *IngestWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
