package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dispatch outcome label values.
const (
	outcomeSuccess         = "success"
	outcomeFailure         = "failure"
	outcomeUnknownType     = "unknown_type"
	outcomeInvalidSchedule = "invalid_schedule"
	outcomeUnsatisfiable   = "unsatisfiable"
	outcomeJobGone         = "job_gone"
	outcomeWriteError      = "write_error"
)

var (
	tickCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "croned",
		Subsystem: "scheduler",
		Name:      "ticks_total",
		Help:      "Scheduler ticks evaluated.",
	})

	tickAbandonedCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "croned",
		Subsystem: "scheduler",
		Name:      "ticks_abandoned_total",
		Help:      "Ticks abandoned because the job store was unavailable.",
	})

	dispatchCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "croned",
		Subsystem: "scheduler",
		Name:      "dispatches_total",
		Help:      "Job dispatches by outcome.",
	}, []string{"outcome"})

	skippedInFlightCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "croned",
		Subsystem: "scheduler",
		Name:      "skipped_in_flight_total",
		Help:      "Due jobs skipped because a previous dispatch was still running.",
	})
)
