// Package executor provides the polymorphic job execution capability and
// the name-based registry that selects a concrete variant for each job.
package executor

import (
	"context"
	"errors"

	"github.com/flemzord/croned/internal/job"
)

// ErrUnknownJobType indicates no executor variant matched the job's name
// and no default variant is configured.
var ErrUnknownJobType = errors.New("executor: unknown job type")

// Executor runs one job. Implementations must be stateless and safe to
// invoke concurrently for distinct jobs. The context carries the dispatch
// timeout; implementations are expected to honor cancellation.
type Executor interface {
	// Name returns the variant name referenced by classification rules.
	Name() string

	// Run executes the job and returns nil on success.
	Run(ctx context.Context, j job.Job) error
}
