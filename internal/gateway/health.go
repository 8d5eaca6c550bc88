package gateway

import (
	"net/http"
	"time"
)

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status     string `json:"status"` // "ok" or "degraded"
	Jobs       int    `json:"jobs"`
	ActiveJobs int    `json:"active_jobs"`
	UptimeSecs int64  `json:"uptime_seconds"`
}

// handleHealth returns an http.HandlerFunc for GET /health.
// Returns 200 when the job store answers, 503 when it does not.
func (g *Gateway) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:     "ok",
			UptimeSecs: int64(time.Since(g.startedAt) / time.Second),
		}

		jobs, err := g.store.List(r.Context())
		if err != nil {
			resp.Status = "degraded"
			respondJSON(w, http.StatusServiceUnavailable, resp)
			return
		}

		resp.Jobs = len(jobs)
		for _, j := range jobs {
			if j.IsActive {
				resp.ActiveJobs++
			}
		}
		respondJSON(w, http.StatusOK, resp)
	}
}
