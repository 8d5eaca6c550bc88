package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flemzord/croned/internal/cron"
	"github.com/flemzord/croned/internal/job"
)

// createJobRequest is the JSON body for POST /jobs.
type createJobRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Schedule    string `json:"schedule"`
	IsActive    *bool  `json:"is_active"` // default true
}

// updateJobRequest is the JSON body for PATCH /jobs/{id}.
// Absent fields are left unchanged.
type updateJobRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Schedule    *string `json:"schedule"`
	IsActive    *bool   `json:"is_active"`
}

func (g *Gateway) handleCreateJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createJobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if req.Name == "" {
			writeError(w, http.StatusUnprocessableEntity, "name is required")
			return
		}
		if !cron.Validate(req.Schedule) {
			writeError(w, http.StatusUnprocessableEntity, "invalid schedule expression")
			return
		}

		active := true
		if req.IsActive != nil {
			active = *req.IsActive
		}

		now := time.Now().UTC()
		j := job.Job{
			ID:          uuid.NewString(),
			Name:        req.Name,
			Description: req.Description,
			Schedule:    req.Schedule,
			IsActive:    active,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := g.store.Create(r.Context(), j); err != nil {
			g.logger.Error("gateway: create job failed", "error", err)
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}

		g.logger.Info("gateway: job created", "job_id", j.ID, "job", j.Name, "schedule", j.Schedule)
		respondJSON(w, http.StatusCreated, j)
	}
}

func (g *Gateway) handleListJobs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobs, err := g.store.List(r.Context())
		if err != nil {
			g.logger.Error("gateway: list jobs failed", "error", err)
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		if jobs == nil {
			jobs = []job.Job{}
		}
		respondJSON(w, http.StatusOK, jobs)
	}
}

func (g *Gateway) handleGetJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		j, err := g.store.Get(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, job.ErrNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		if err != nil {
			g.logger.Error("gateway: get job failed", "error", err)
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		respondJSON(w, http.StatusOK, j)
	}
}

func (g *Gateway) handleUpdateJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateJobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if req.Name != nil && *req.Name == "" {
			writeError(w, http.StatusUnprocessableEntity, "name must not be empty")
			return
		}
		if req.Schedule != nil && !cron.Validate(*req.Schedule) {
			writeError(w, http.StatusUnprocessableEntity, "invalid schedule expression")
			return
		}

		j, err := g.store.Update(r.Context(), chi.URLParam(r, "id"), job.Update{
			Name:        req.Name,
			Description: req.Description,
			Schedule:    req.Schedule,
			IsActive:    req.IsActive,
		})
		if errors.Is(err, job.ErrNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		if err != nil {
			g.logger.Error("gateway: update job failed", "error", err)
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}

		respondJSON(w, http.StatusOK, j)
	}
}

func (g *Gateway) handleDeleteJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := g.store.Delete(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, job.ErrNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		if err != nil {
			g.logger.Error("gateway: delete job failed", "error", err)
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
