package executor

import (
	"context"
	"log/slog"

	"github.com/flemzord/croned/internal/job"
)

// LogExecutor records the dispatch and succeeds. It is the honest
// equivalent of job types whose only observable effect is a log line, and
// the variant of choice for dry-running new schedules.
type LogExecutor struct {
	logger *slog.Logger
}

// NewLog creates a LogExecutor.
func NewLog(logger *slog.Logger) *LogExecutor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogExecutor{logger: logger}
}

// Name implements Executor.
func (e *LogExecutor) Name() string { return "log" }

// Run implements Executor.
func (e *LogExecutor) Run(_ context.Context, j job.Job) error {
	e.logger.Info("executor: job executed", "job_id", j.ID, "job", j.Name)
	return nil
}
