package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/flemzord/croned/internal/job"
)

// ShellExecutor runs a configured command for each dispatch. The job's
// identity is passed through the environment (CRONED_JOB_ID,
// CRONED_JOB_NAME) so one command can serve many jobs. Context
// cancellation kills the process.
type ShellExecutor struct {
	command []string
	logger  *slog.Logger
}

// NewShell creates a ShellExecutor for the given argv. Returns an error if
// the command is empty.
func NewShell(command []string, logger *slog.Logger) (*ShellExecutor, error) {
	if len(command) == 0 {
		return nil, errors.New("shell: empty command")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ShellExecutor{command: command, logger: logger}, nil
}

// Name implements Executor.
func (e *ShellExecutor) Name() string { return "shell" }

// Run implements Executor.
func (e *ShellExecutor) Run(ctx context.Context, j job.Job) error {
	cmd := exec.CommandContext(ctx, e.command[0], e.command[1:]...)
	cmd.Env = append(os.Environ(),
		"CRONED_JOB_ID="+j.ID,
		"CRONED_JOB_NAME="+j.Name,
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("shell: %s: %w", e.command[0], ctxErr)
		}
		return fmt.Errorf("shell: %s: %w: %s", e.command[0], err, tail(out, 512))
	}

	e.logger.Debug("executor: command finished", "job", j.Name, "command", e.command[0])
	return nil
}

// tail returns at most n trailing bytes of output for error context.
func tail(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[len(b)-n:]
}
