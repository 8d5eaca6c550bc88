package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/flemzord/croned/internal/job"
)

const jobColumns = "id, name, description, schedule, is_active, last_run, next_run, created_at, updated_at"

// Create stores a new job.
func (s *Store) Create(ctx context.Context, j job.Job) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (`+jobColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.Name, j.Description, j.Schedule, boolToInt(j.IsActive),
		formatTimePtr(j.LastRun), formatTimePtr(j.NextRun),
		j.CreatedAt.UTC().Format(time.RFC3339Nano),
		j.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: create job: %w", err)
	}
	return nil
}

// Get returns the job with the given ID, or job.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (job.Job, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM jobs WHERE id = ?", id)

	j, err := scanJob(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return job.Job{}, job.ErrNotFound
	}
	if err != nil {
		return job.Job{}, fmt.Errorf("sqlite: get job: %w", err)
	}
	return j, nil
}

// List returns all jobs, ordered by creation time.
func (s *Store) List(ctx context.Context) ([]job.Job, error) {
	return s.query(ctx, "SELECT "+jobColumns+" FROM jobs ORDER BY created_at, id")
}

// ListActive returns all jobs with is_active set, ordered by creation time.
func (s *Store) ListActive(ctx context.Context) ([]job.Job, error) {
	return s.query(ctx, "SELECT "+jobColumns+" FROM jobs WHERE is_active = 1 ORDER BY created_at, id")
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]job.Job, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list jobs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var jobs []job.Job
	for rows.Next() {
		j, err := scanJob(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list jobs: %w", err)
	}
	return jobs, nil
}

// Update applies a partial edit and returns the updated job. The statement
// only touches columns named in the edit, so concurrent run-timestamp
// writes are preserved.
func (s *Store) Update(ctx context.Context, id string, upd job.Update) (job.Job, error) {
	set := "updated_at = ?"
	args := []any{time.Now().UTC().Format(time.RFC3339Nano)}

	if upd.Name != nil {
		set += ", name = ?"
		args = append(args, *upd.Name)
	}
	if upd.Description != nil {
		set += ", description = ?"
		args = append(args, *upd.Description)
	}
	if upd.Schedule != nil {
		set += ", schedule = ?"
		args = append(args, *upd.Schedule)
	}
	if upd.IsActive != nil {
		set += ", is_active = ?"
		args = append(args, boolToInt(*upd.IsActive))
	}
	args = append(args, id)

	result, err := s.db.ExecContext(ctx, "UPDATE jobs SET "+set+" WHERE id = ?", args...)
	if err != nil {
		return job.Job{}, fmt.Errorf("sqlite: update job: %w", err)
	}
	if err := requireRow(result); err != nil {
		return job.Job{}, err
	}

	return s.Get(ctx, id)
}

// UpdateRunTimestamps sets only last_run, next_run, and updated_at.
// Returns job.ErrNotFound if the job was deleted in the meantime.
func (s *Store) UpdateRunTimestamps(ctx context.Context, id string, lastRun, nextRun time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE jobs SET last_run = ?, next_run = ?, updated_at = ? WHERE id = ?`,
		lastRun.UTC().Format(time.RFC3339Nano),
		nextRun.UTC().Format(time.RFC3339Nano),
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: update run timestamps: %w", err)
	}
	return requireRow(result)
}

// Delete removes a job by ID. Returns job.ErrNotFound if the job does not
// exist.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM jobs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("sqlite: delete job: %w", err)
	}
	return requireRow(result)
}

// requireRow maps a zero-row write to job.ErrNotFound.
func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

// scanJob reads one row regardless of whether it came from QueryRow or Rows.
func scanJob(scan func(dest ...any) error) (job.Job, error) {
	var (
		j                    job.Job
		isActive             int
		lastRun, nextRun     sql.NullString
		createdAt, updatedAt string
	)

	if err := scan(&j.ID, &j.Name, &j.Description, &j.Schedule, &isActive,
		&lastRun, &nextRun, &createdAt, &updatedAt); err != nil {
		return job.Job{}, err
	}

	j.IsActive = isActive != 0

	var err error
	if j.LastRun, err = parseTimePtr(lastRun); err != nil {
		return job.Job{}, fmt.Errorf("last_run: %w", err)
	}
	if j.NextRun, err = parseTimePtr(nextRun); err != nil {
		return job.Job{}, fmt.Errorf("next_run: %w", err)
	}
	if j.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return job.Job{}, fmt.Errorf("created_at: %w", err)
	}
	if j.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return job.Job{}, fmt.Errorf("updated_at: %w", err)
	}

	return j, nil
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimePtr(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
