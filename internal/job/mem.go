package job

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemStore is a thread-safe, in-memory implementation of Store. It backs
// the no-persistence mode and the test suites of the packages above it.
type MemStore struct {
	mu   sync.RWMutex
	jobs map[string]Job
}

// NewMemStore creates a new empty in-memory job store.
func NewMemStore() *MemStore {
	return &MemStore{jobs: make(map[string]Job)}
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// Create stores a new job.
func (s *MemStore) Create(_ context.Context, j Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[j.ID] = j
	return nil
}

// Get returns the job with the given ID, or ErrNotFound.
func (s *MemStore) Get(_ context.Context, id string) (Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return j, nil
}

// List returns all jobs, ordered by creation time.
func (s *MemStore) List(_ context.Context) ([]Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(Job) bool { return true }), nil
}

// ListActive returns all jobs with IsActive set, ordered by creation time.
func (s *MemStore) ListActive(_ context.Context) ([]Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(j Job) bool { return j.IsActive }), nil
}

// collect returns jobs passing the filter, sorted by CreatedAt then ID for
// a stable order. Callers must hold at least the read lock.
func (s *MemStore) collect(keep func(Job) bool) []Job {
	jobs := make([]Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if keep(j) {
			jobs = append(jobs, j)
		}
	}
	sort.Slice(jobs, func(i, k int) bool {
		if !jobs[i].CreatedAt.Equal(jobs[k].CreatedAt) {
			return jobs[i].CreatedAt.Before(jobs[k].CreatedAt)
		}
		return jobs[i].ID < jobs[k].ID
	})
	return jobs
}

// Update applies a partial edit and returns the updated job.
func (s *MemStore) Update(_ context.Context, id string, upd Update) (Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}

	if upd.Name != nil {
		j.Name = *upd.Name
	}
	if upd.Description != nil {
		j.Description = *upd.Description
	}
	if upd.Schedule != nil {
		j.Schedule = *upd.Schedule
	}
	if upd.IsActive != nil {
		j.IsActive = *upd.IsActive
	}
	j.UpdatedAt = time.Now().UTC()

	s.jobs[id] = j
	return j, nil
}

// UpdateRunTimestamps sets only LastRun, NextRun, and UpdatedAt.
func (s *MemStore) UpdateRunTimestamps(_ context.Context, id string, lastRun, nextRun time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}

	j.LastRun = &lastRun
	j.NextRun = &nextRun
	j.UpdatedAt = time.Now().UTC()

	s.jobs[id] = j
	return nil
}

// Delete removes a job by ID.
func (s *MemStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return ErrNotFound
	}
	delete(s.jobs, id)
	return nil
}
