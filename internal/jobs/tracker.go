package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"docqa/internal/model"
)

// Tracker records ingestion job states in Redis so the gateway can answer
// status polls. Entries expire after the configured TTL; an expired or unknown
// job reads as not found.
type Tracker struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewTracker(client *redisv9.Client, ttl time.Duration) *Tracker {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Tracker{client: client, ttl: ttl}
}

func (t *Tracker) Set(ctx context.Context, status model.JobStatus) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("marshal job status failed: %w", err)
	}
	if err := t.client.Set(ctx, t.key(status.JobID), payload, t.ttl).Err(); err != nil {
		return fmt.Errorf("redis set job status failed: %w", err)
	}
	return nil
}

// Get returns the job status; the bool reports whether the job is known.
func (t *Tracker) Get(ctx context.Context, jobID string) (model.JobStatus, bool, error) {
	raw, err := t.client.Get(ctx, t.key(jobID)).Result()
	if err == redisv9.Nil {
		return model.JobStatus{}, false, nil
	}
	if err != nil {
		return model.JobStatus{}, false, fmt.Errorf("redis get job status failed: %w", err)
	}

	var status model.JobStatus
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		return model.JobStatus{}, false, fmt.Errorf("unmarshal job status failed: %w", err)
	}
	return status, true, nil
}

func (t *Tracker) key(jobID string) string {
	return fmt.Sprintf("ingest:job:%s", jobID)
}
