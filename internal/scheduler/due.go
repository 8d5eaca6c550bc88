package scheduler

import (
	"time"

	"github.com/flemzord/croned/internal/job"
)

// Due reports whether j must be dispatched at now. The policy, in order:
// inactive jobs are never due; a job that has never run is due immediately;
// otherwise the previously committed NextRun decides. Due-ness is not
// re-derived from the cron expression at tick time: NextRun is the
// scheduling commitment, recomputed after every successful dispatch,
// which prevents double-firing within a matching minute.
func Due(j job.Job, now time.Time) bool {
	if !j.IsActive {
		return false
	}
	if j.LastRun == nil {
		return true
	}
	if j.NextRun != nil && !now.Before(*j.NextRun) {
		return true
	}
	return false
}
