package job

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testJob(id, name string, active bool, createdAt time.Time) Job {
	return Job{
		ID:        id,
		Name:      name,
		Schedule:  "* * * * *",
		IsActive:  active,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestMemStore_CreateGet(t *testing.T) {
	t.Parallel()

	s := NewMemStore()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := s.Create(ctx, testJob("a", "email digest", true, now)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "email digest" {
		t.Errorf("Name = %q, want %q", got.Name, "email digest")
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemStore_ListActive(t *testing.T) {
	t.Parallel()

	s := NewMemStore()
	ctx := context.Background()
	base := time.Now().UTC()

	_ = s.Create(ctx, testJob("a", "first", true, base))
	_ = s.Create(ctx, testJob("b", "second", false, base.Add(time.Second)))
	_ = s.Create(ctx, testJob("c", "third", true, base.Add(2*time.Second)))

	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List returned %d jobs, want 3", len(all))
	}
	if all[0].ID != "a" || all[2].ID != "c" {
		t.Errorf("List order = [%s %s %s], want creation order", all[0].ID, all[1].ID, all[2].ID)
	}

	active, err := s.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("ListActive returned %d jobs, want 2", len(active))
	}
	for _, j := range active {
		if !j.IsActive {
			t.Errorf("ListActive returned inactive job %s", j.ID)
		}
	}
}

func TestMemStore_Update(t *testing.T) {
	t.Parallel()

	s := NewMemStore()
	ctx := context.Background()

	_ = s.Create(ctx, testJob("a", "send report", true, time.Now().UTC()))

	name := "send weekly report"
	inactive := false
	got, err := s.Update(ctx, "a", Update{Name: &name, IsActive: &inactive})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Name != name {
		t.Errorf("Name = %q, want %q", got.Name, name)
	}
	if got.IsActive {
		t.Error("IsActive still true after update")
	}
	if got.Schedule != "* * * * *" {
		t.Errorf("Schedule = %q, unset field was changed", got.Schedule)
	}

	if _, err := s.Update(ctx, "missing", Update{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemStore_UpdateRunTimestamps(t *testing.T) {
	t.Parallel()

	s := NewMemStore()
	ctx := context.Background()

	_ = s.Create(ctx, testJob("a", "notification sweep", true, time.Now().UTC()))

	last := time.Date(2026, 1, 14, 10, 30, 0, 0, time.UTC)
	next := last.Add(time.Minute)
	if err := s.UpdateRunTimestamps(ctx, "a", last, next); err != nil {
		t.Fatalf("UpdateRunTimestamps failed: %v", err)
	}

	got, _ := s.Get(ctx, "a")
	if got.LastRun == nil || !got.LastRun.Equal(last) {
		t.Errorf("LastRun = %v, want %v", got.LastRun, last)
	}
	if got.NextRun == nil || !got.NextRun.Equal(next) {
		t.Errorf("NextRun = %v, want %v", got.NextRun, next)
	}
	// Only run bookkeeping may change.
	if got.Name != "notification sweep" || !got.IsActive {
		t.Error("UpdateRunTimestamps touched fields it does not own")
	}

	if err := s.UpdateRunTimestamps(ctx, "missing", last, next); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateRunTimestamps(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemStore_Delete(t *testing.T) {
	t.Parallel()

	s := NewMemStore()
	ctx := context.Background()

	_ = s.Create(ctx, testJob("a", "cleanup", true, time.Now().UTC()))

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}
