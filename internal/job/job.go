// Package job defines the scheduled job record and the store contract
// every persistence backend implements.
package job

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates the requested job does not exist.
var ErrNotFound = errors.New("job: not found")

// Job is a recurring unit of work described by a cron expression.
// LastRun and NextRun are written only by the scheduler after a successful
// dispatch; everything else is owned by the API layer.
type Job struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Schedule    string     `json:"schedule"` // five-field cron expression
	IsActive    bool       `json:"is_active"`
	LastRun     *time.Time `json:"last_run,omitempty"` // last successful dispatch
	NextRun     *time.Time `json:"next_run,omitempty"` // earliest instant the job is next due
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Update is a partial edit to a job record. Nil fields are left unchanged.
type Update struct {
	Name        *string
	Description *string
	Schedule    *string
	IsActive    *bool
}

// Store is a persistent repository of job records.
// Implementations must be safe for concurrent use.
type Store interface {
	// Create stores a new job.
	Create(ctx context.Context, j Job) error

	// Get returns the job with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (Job, error)

	// List returns all jobs, ordered by creation time.
	List(ctx context.Context) ([]Job, error)

	// ListActive returns all jobs with IsActive set, ordered by creation time.
	ListActive(ctx context.Context) ([]Job, error)

	// Update applies a partial edit and returns the updated job,
	// or ErrNotFound.
	Update(ctx context.Context, id string, upd Update) (Job, error)

	// UpdateRunTimestamps sets only the run bookkeeping fields, leaving
	// every other column untouched so concurrent edits through Update are
	// never clobbered. Returns ErrNotFound if the job was deleted in the
	// meantime.
	UpdateRunTimestamps(ctx context.Context, id string, lastRun, nextRun time.Time) error

	// Delete removes a job by ID, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}
