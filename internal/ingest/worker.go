// Package ingest turns queued announcement submissions into stored
// announcements. Admins can submit raw text, a web page URL, or a PDF
// circular; the worker extracts the text and files the announcement.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/agriconnect/agriconnect/internal/storage"
)

// JobType is the queue type the worker claims.
const JobType = "announcement_ingest"

// JobStore abstracts the job queue operations.
type JobStore interface {
	ClaimNextJob(types []string) (*storage.Job, error)
	CompleteJob(id string) error
	FailJob(id string, errMsg string) error
	CreateAnnouncement(a storage.Announcement) (storage.Announcement, error)
}

// Extractor turns an ingest source into plain text.
type Extractor interface {
	Extract(ctx context.Context, p Payload) (string, error)
}

// Payload is the queued ingest request.
type Payload struct {
	Source   string `json:"source"` // "text", "url" or "pdf"
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
	Location string `json:"location,omitempty"`
	Content  string `json:"content,omitempty"` // for source=text
	URL      string `json:"url,omitempty"`     // for source=url
	Path     string `json:"path,omitempty"`    // for source=pdf
}

// Worker processes announcement_ingest jobs from the SQLite job queue.
type Worker struct {
	store     JobStore
	extractor Extractor
	poll      time.Duration
	logger    *slog.Logger
}

// NewWorker creates a Worker with the given dependencies.
// If pollInterval is <= 0, it defaults to 500ms.
func NewWorker(store JobStore, extractor Extractor, pollInterval time.Duration) *Worker {
	if pollInterval <= 0 {
		pollInterval = 500 * time.Millisecond
	}
	return &Worker{
		store:     store,
		extractor: extractor,
		poll:      pollInterval,
		logger:    slog.Default(),
	}
}

// Run polls for jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		done, err := w.RunOnce(ctx)
		if err != nil {
			w.logger.Error("worker iteration failed", "error", err)
		}
		if done {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.poll):
		}
	}
}

// RunOnce claims and processes a single announcement_ingest job.
// Returns true if a job was processed (regardless of success/failure).
func (w *Worker) RunOnce(ctx context.Context) (bool, error) {
	job, err := w.store.ClaimNextJob([]string{JobType})
	if err != nil {
		return false, fmt.Errorf("claiming job: %w", err)
	}
	if job == nil {
		return false, nil
	}

	if err := w.processJob(ctx, job); err != nil {
		w.logger.Warn("job failed", "job_id", job.ID, "error", err)
		if failErr := w.store.FailJob(job.ID, err.Error()); failErr != nil {
			w.logger.Error("failed to mark job as failed", "job_id", job.ID, "error", failErr)
		}
		return true, nil
	}

	if err := w.store.CompleteJob(job.ID); err != nil {
		return true, fmt.Errorf("completing job %s: %w", job.ID, err)
	}
	return true, nil
}

func (w *Worker) processJob(ctx context.Context, job *storage.Job) error {
	var payload Payload
	if err := json.Unmarshal([]byte(job.PayloadJSON), &payload); err != nil {
		return fmt.Errorf("parsing payload: %w", err)
	}
	if payload.Title == "" {
		return fmt.Errorf("payload has no title")
	}

	body, err := w.extractor.Extract(ctx, payload)
	if err != nil {
		return fmt.Errorf("extracting content: %w", err)
	}
	if body == "" {
		return fmt.Errorf("source %q yielded no text", payload.Source)
	}

	category := payload.Category
	if category == "" {
		category = storage.CategoryGeneral
	}

	_, err = w.store.CreateAnnouncement(storage.Announcement{
		Title:    payload.Title,
		Body:     body,
		Category: category,
		Location: payload.Location,
		Source:   "ingest",
		Date:     time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("storing announcement: %w", err)
	}
	return nil
}
