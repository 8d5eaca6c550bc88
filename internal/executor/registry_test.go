package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/flemzord/croned/internal/job"
)

// stubExecutor implements Executor for registry tests.
type stubExecutor struct {
	name string
}

func (s *stubExecutor) Name() string { return s.name }

func (s *stubExecutor) Run(_ context.Context, _ job.Job) error { return nil }

func TestRegistry_ResolveByKeyword(t *testing.T) {
	t.Parallel()

	r := NewRegistry([]Rule{
		{Keyword: "email", Variant: "mailer"},
		{Keyword: "send", Variant: "shipper"},
	}, "")
	if err := r.Register(&stubExecutor{name: "mailer"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&stubExecutor{name: "shipper"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	tests := []struct {
		jobName string
		want    string
	}{
		{"daily email digest", "mailer"},
		{"Email Welcome Batch", "mailer"}, // case-insensitive
		{"send invoices", "shipper"},
		{"resend receipts", "shipper"}, // substring match
	}
	for _, tc := range tests {
		e, err := r.Resolve(tc.jobName)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", tc.jobName, err)
		}
		if e.Name() != tc.want {
			t.Errorf("Resolve(%q) = %q, want %q", tc.jobName, e.Name(), tc.want)
		}
	}
}

func TestRegistry_RuleOrderWins(t *testing.T) {
	t.Parallel()

	r := NewRegistry([]Rule{
		{Keyword: "email", Variant: "first"},
		{Keyword: "mail", Variant: "second"},
	}, "")
	_ = r.Register(&stubExecutor{name: "first"})
	_ = r.Register(&stubExecutor{name: "second"})

	e, err := r.Resolve("email cleanup")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if e.Name() != "first" {
		t.Errorf("Resolve = %q, want earlier rule to win", e.Name())
	}
}

func TestRegistry_UnknownJobType(t *testing.T) {
	t.Parallel()

	r := NewRegistry(DefaultRules(), "")
	_ = r.Register(NewLog(nil))

	_, err := r.Resolve("mystery task")
	if !errors.Is(err, ErrUnknownJobType) {
		t.Fatalf("Resolve error = %v, want ErrUnknownJobType", err)
	}
}

func TestRegistry_DefaultVariant(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil, "log")
	_ = r.Register(NewLog(nil))

	e, err := r.Resolve("mystery task")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if e.Name() != "log" {
		t.Errorf("Resolve = %q, want default variant %q", e.Name(), "log")
	}
}

func TestRegistry_DuplicateVariant(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil, "")
	if err := r.Register(&stubExecutor{name: "dup"}); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if err := r.Register(&stubExecutor{name: "dup"}); err == nil {
		t.Fatal("second Register of same variant should fail")
	}
}

func TestRegistry_ValidateRejectsDanglingRule(t *testing.T) {
	t.Parallel()

	r := NewRegistry([]Rule{{Keyword: "email", Variant: "ghost"}}, "")
	if err := r.Validate(); err == nil {
		t.Fatal("Validate should reject rule referencing unregistered variant")
	}

	r = NewRegistry(nil, "ghost")
	if err := r.Validate(); err == nil {
		t.Fatal("Validate should reject unknown default variant")
	}
}
