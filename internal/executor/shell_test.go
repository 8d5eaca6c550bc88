package executor

import (
	"context"
	"testing"
	"time"

	"github.com/flemzord/croned/internal/job"
)

func TestNewShell_EmptyCommand(t *testing.T) {
	t.Parallel()

	if _, err := NewShell(nil, nil); err == nil {
		t.Fatal("NewShell(nil) should fail")
	}
}

func TestShellExecutor_Run(t *testing.T) {
	t.Parallel()

	e, err := NewShell([]string{"/bin/sh", "-c", `test "$CRONED_JOB_ID" = j1`}, nil)
	if err != nil {
		t.Fatalf("NewShell failed: %v", err)
	}

	if err := e.Run(context.Background(), job.Job{ID: "j1", Name: "cleanup"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestShellExecutor_FailureIncludesOutput(t *testing.T) {
	t.Parallel()

	e, err := NewShell([]string{"/bin/sh", "-c", "echo broken >&2; exit 3"}, nil)
	if err != nil {
		t.Fatalf("NewShell failed: %v", err)
	}

	runErr := e.Run(context.Background(), job.Job{ID: "j1", Name: "cleanup"})
	if runErr == nil {
		t.Fatal("Run should fail on non-zero exit")
	}
}

func TestShellExecutor_Timeout(t *testing.T) {
	t.Parallel()

	e, err := NewShell([]string{"/bin/sh", "-c", "sleep 10"}, nil)
	if err != nil {
		t.Fatalf("NewShell failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := e.Run(ctx, job.Job{ID: "j1", Name: "cleanup"}); err == nil {
		t.Fatal("Run should fail when the context deadline passes")
	}
}
