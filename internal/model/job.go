package model

// JobState is the lifecycle of one ingestion job.
type JobState string

const (
	JobQueued    JobState = "queued"
	JobRunning   JobState = "running"
	JobSucceeded JobState = "succeeded"
	JobFailed    JobState = "failed"
)

// JobStatus is what the gateway reports for a job ID.
type JobStatus struct {
	JobID  string   `json:"job_id"`
	State  JobState `json:"state"`
	Detail string   `json:"detail,omitempty"`
}

// IngestJob is the unit of work published to the ingest queue.
// One job processes exactly one uploaded file.
type IngestJob struct {
	JobID        string `json:"job_id"`
	UserID       string `json:"user_id"`
	FileName     string `json:"file_name"`
	Content      []byte `json:"content"`
	ChunkSize    int    `json:"chunk_size"`
	ChunkOverlap int    `json:"chunk_overlap"`
}
