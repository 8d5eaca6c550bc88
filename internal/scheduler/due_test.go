package scheduler

import (
	"testing"
	"time"

	"github.com/flemzord/croned/internal/job"
)

func TestDue(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 14, 10, 30, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		job  job.Job
		want bool
	}{
		{
			name: "inactive never due",
			job:  job.Job{IsActive: false},
			want: false,
		},
		{
			name: "inactive with past next run still not due",
			job:  job.Job{IsActive: false, LastRun: &past, NextRun: &past},
			want: false,
		},
		{
			name: "never run fires immediately",
			job:  job.Job{IsActive: true},
			want: true,
		},
		{
			name: "next run reached",
			job:  job.Job{IsActive: true, LastRun: &past, NextRun: &past},
			want: true,
		},
		{
			name: "next run exactly now",
			job:  job.Job{IsActive: true, LastRun: &past, NextRun: &now},
			want: true,
		},
		{
			name: "next run in future",
			job:  job.Job{IsActive: true, LastRun: &past, NextRun: &future},
			want: false,
		},
		{
			name: "ran but no next run recorded",
			job:  job.Job{IsActive: true, LastRun: &past},
			want: false,
		},
	}

	for _, tc := range tests {
		if got := Due(tc.job, now); got != tc.want {
			t.Errorf("%s: Due = %v, want %v", tc.name, got, tc.want)
		}
	}
}
