package handler

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docqa/internal/model"
	"docqa/internal/transport/http/response"
)

// JobEnqueuer publishes one ingestion job to the task queue.
type JobEnqueuer interface {
	Publish(ctx context.Context, job model.IngestJob) error
}

// JobTracker records and reads back ingestion job states.
type JobTracker interface {
	Set(ctx context.Context, status model.JobStatus) error
	Get(ctx context.Context, jobID string) (model.JobStatus, bool, error)
}

type IngestHandler struct {
	publisher           JobEnqueuer
	tracker             JobTracker
	defaultChunkSize    int
	defaultChunkOverlap int
	maxUploadSize       int64
}

func NewIngestHandler(publisher JobEnqueuer, tracker JobTracker, defaultChunkSize, defaultChunkOverlap, maxUploadSizeMB int) *IngestHandler {
	return &IngestHandler{
		publisher:           publisher,
		tracker:             tracker,
		defaultChunkSize:    defaultChunkSize,
		defaultChunkOverlap: defaultChunkOverlap,
		maxUploadSize:       int64(maxUploadSizeMB) << 20,
	}
}

type enqueuedJob struct {
	JobID    string `json:"job_id"`
	FileName string `json:"file_name"`
	State    string `json:"state"`
}

// ProcessDocuments accepts one or more PDF files plus chunking parameters,
// validates everything up front, then enqueues one ingestion job per file.
// Nothing is enqueued when validation fails.
func (h *IngestHandler) ProcessDocuments(c *gin.Context) {
	userID := strings.TrimSpace(c.PostForm("user_id"))
	if !model.ValidUserID(userID) {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "user_id must be 1-64 letters, digits, '_' or '-'")
		return
	}

	chunkSize, ok := h.parseIntForm(c, "chunk_size", h.defaultChunkSize)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "chunk_size must be an integer")
		return
	}
	chunkOverlap, ok := h.parseIntForm(c, "chunk_overlap", h.defaultChunkOverlap)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "chunk_overlap must be an integer")
		return
	}
	if chunkSize <= 0 || chunkOverlap < 0 || chunkOverlap >= chunkSize {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "chunk_overlap must be non-negative and smaller than chunk_size")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid multipart form")
		return
	}
	files := form.File["arquivos"]
	if len(files) == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "at least one file is required")
		return
	}
	for _, file := range files {
		if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, fmt.Sprintf("all files must be PDF, got %q", file.Filename))
			return
		}
		if file.Size > h.maxUploadSize {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, fmt.Sprintf("file %q exceeds the upload size limit", file.Filename))
			return
		}
	}

	// Validation passed; from here each file is an independent unit.
	enqueued := make([]enqueuedJob, 0, len(files))
	for _, file := range files {
		entry := enqueuedJob{
			JobID:    uuid.NewString(),
			FileName: file.Filename,
			State:    string(model.JobQueued),
		}

		content, err := readUpload(file)
		if err != nil {
			entry.State = string(model.JobFailed)
			h.recordStatus(c.Request.Context(), entry.JobID, model.JobFailed,
				fmt.Sprintf("read upload %q failed: %v", file.Filename, err))
			enqueued = append(enqueued, entry)
			continue
		}

		job := model.IngestJob{
			JobID:        entry.JobID,
			UserID:       userID,
			FileName:     file.Filename,
			Content:      content,
			ChunkSize:    chunkSize,
			ChunkOverlap: chunkOverlap,
		}
		if err := h.publisher.Publish(c.Request.Context(), job); err != nil {
			entry.State = string(model.JobFailed)
			h.recordStatus(c.Request.Context(), entry.JobID, model.JobFailed,
				fmt.Sprintf("enqueue %q failed: %v", file.Filename, err))
			enqueued = append(enqueued, entry)
			continue
		}

		h.recordStatus(c.Request.Context(), entry.JobID, model.JobQueued,
			fmt.Sprintf("queued %q for processing", file.Filename))
		enqueued = append(enqueued, entry)
	}

	response.Accepted(c, gin.H{
		"jobs":     enqueued,
		"detalhes": "processing started in background",
	})
}

// JobStatus reports the state of one ingestion job.
func (h *IngestHandler) JobStatus(c *gin.Context) {
	jobID := c.Param("id")
	status, found, err := h.tracker.Get(c.Request.Context(), jobID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "job status lookup failed")
		return
	}
	if !found {
		response.Error(c, http.StatusNotFound, response.CodeJobNotFound, "unknown or expired job id")
		return
	}
	response.OK(c, status)
}

// recordStatus writes the job state so a poll on the returned job ID never
// reads as unknown, even for files that failed before reaching the queue.
func (h *IngestHandler) recordStatus(ctx context.Context, jobID string, state model.JobState, detail string) {
	if err := h.tracker.Set(ctx, model.JobStatus{JobID: jobID, State: state, Detail: detail}); err != nil {
		log.Printf("record job status failed: %v", err)
	}
}

func (h *IngestHandler) parseIntForm(c *gin.Context, key string, fallback int) (int, bool) {
	raw := strings.TrimSpace(c.PostForm(key))
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
