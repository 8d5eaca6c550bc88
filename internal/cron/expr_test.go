package cron

import (
	"errors"
	"testing"
	"time"
)

func mustParse(t *testing.T, expr string) *Schedule {
	t.Helper()
	s, err := Parse(expr)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", expr, err)
	}
	return s
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr string
		want bool
	}{
		{"* * * * *", true},
		{"0 9 * * *", true},
		{"*/15 * * * *", true},
		{"0 0 1,15 * *", true},
		{"30 8 * * 1-5", true},
		{"0 0 30 2 *", true}, // well-formed, never matches
		{"", false},
		{"invalid", false},
		{"* * * *", false},       // four fields
		{"* * * * * *", false},   // six fields
		{"60 * * * *", false},    // minute out of range
		{"* 24 * * *", false},    // hour out of range
		{"* * 0 * *", false},     // day-of-month out of range
		{"* * * 13 *", false},    // month out of range
		{"* * * * 1-", false},    // dangling range
		{"0 9 * * mondayish", false},
	}

	for _, tc := range tests {
		if got := Validate(tc.expr); got != tc.want {
			t.Errorf("Validate(%q) = %v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr string
		at   time.Time
		want bool
	}{
		{"* * * * *", time.Date(2026, 1, 14, 10, 30, 0, 0, time.Local), true},
		{"30 10 * * *", time.Date(2026, 1, 14, 10, 30, 0, 0, time.Local), true},
		{"30 10 * * *", time.Date(2026, 1, 14, 10, 31, 0, 0, time.Local), false},
		{"0 9 * * *", time.Date(2026, 1, 14, 9, 0, 0, 0, time.Local), true},
		{"0 9 * * *", time.Date(2026, 1, 14, 8, 0, 0, 0, time.Local), false},
		// Seconds are below minute resolution and must not matter.
		{"0 9 * * *", time.Date(2026, 1, 14, 9, 0, 45, 0, time.Local), true},
		{"*/15 * * * *", time.Date(2026, 1, 14, 9, 45, 0, 0, time.Local), true},
		{"*/15 * * * *", time.Date(2026, 1, 14, 9, 50, 0, 0, time.Local), false},
		// 2026-01-14 is a Wednesday (weekday 3).
		{"* * * * 3", time.Date(2026, 1, 14, 12, 0, 0, 0, time.Local), true},
		{"* * * * 4", time.Date(2026, 1, 14, 12, 0, 0, 0, time.Local), false},
		{"* * * 2 *", time.Date(2026, 1, 14, 12, 0, 0, 0, time.Local), false},
	}

	for _, tc := range tests {
		s := mustParse(t, tc.expr)
		if got := s.Matches(tc.at); got != tc.want {
			t.Errorf("Matches(%q, %v) = %v, want %v", tc.expr, tc.at, got, tc.want)
		}
	}
}

// TestMatches_DayOfMonthDayOfWeekOR pins the standard cron rule: when both
// the day-of-month and day-of-week fields are restricted, an instant
// matches if it satisfies either one. Naive AND semantics would reject all
// three matching dates below.
func TestMatches_DayOfMonthDayOfWeekOR(t *testing.T) {
	t.Parallel()

	// Midnight on the 13th of any month, or on any Friday.
	s := mustParse(t, "0 0 13 * 5")

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		// 2026-01-13 is a Tuesday: matches via day-of-month only.
		{"13th not friday", time.Date(2026, 1, 13, 0, 0, 0, 0, time.Local), true},
		// 2026-01-16 is a Friday: matches via day-of-week only.
		{"friday not 13th", time.Date(2026, 1, 16, 0, 0, 0, 0, time.Local), true},
		// 2026-02-13 is a Friday the 13th: both restrictions hold.
		{"friday the 13th", time.Date(2026, 2, 13, 0, 0, 0, 0, time.Local), true},
		// 2026-01-14 is a Wednesday: neither restriction holds.
		{"neither", time.Date(2026, 1, 14, 0, 0, 0, 0, time.Local), false},
	}

	for _, tc := range tests {
		if got := s.Matches(tc.at); got != tc.want {
			t.Errorf("%s: Matches(%v) = %v, want %v", tc.name, tc.at, got, tc.want)
		}
	}

	// One restricted field plus "*" keeps AND semantics.
	s = mustParse(t, "0 0 * * 5")
	if s.Matches(time.Date(2026, 1, 13, 0, 0, 0, 0, time.Local)) {
		t.Error("star day-of-month with restricted weekday matched a Tuesday")
	}
}

func TestNext_EveryMinute(t *testing.T) {
	t.Parallel()

	s := mustParse(t, "* * * * *")
	at := time.Date(2026, 1, 14, 10, 30, 0, 0, time.Local)

	next, err := s.Next(at)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if want := at.Add(time.Minute); !next.Equal(want) {
		t.Errorf("Next = %v, want %v", next, want)
	}
}

func TestNext_DailyAtNine(t *testing.T) {
	t.Parallel()

	s := mustParse(t, "0 9 * * *")

	// Before nine: same day.
	next, err := s.Next(time.Date(2026, 1, 14, 8, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if want := time.Date(2026, 1, 14, 9, 0, 0, 0, time.Local); !next.Equal(want) {
		t.Errorf("Next = %v, want %v", next, want)
	}

	// After nine: next day.
	next, err = s.Next(time.Date(2026, 1, 14, 10, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if want := time.Date(2026, 1, 15, 9, 0, 0, 0, time.Local); !next.Equal(want) {
		t.Errorf("Next = %v, want %v", next, want)
	}
}

// TestNext_AgreesWithMatches checks the core property: the next occurrence
// is strictly after the reference instant, satisfies Matches, and no minute
// in between does.
func TestNext_AgreesWithMatches(t *testing.T) {
	t.Parallel()

	exprs := []string{
		"* * * * *",
		"*/15 * * * *",
		"0 9 * * *",
		"30 8 * * 1-5",
		"0 0 1,15 * *",
		"0 0 13 * 5",
	}
	at := time.Date(2026, 1, 14, 10, 30, 30, 0, time.Local)

	for _, expr := range exprs {
		s := mustParse(t, expr)

		next, err := s.Next(at)
		if err != nil {
			t.Fatalf("Next(%q) failed: %v", expr, err)
		}
		if !next.After(at) {
			t.Errorf("Next(%q) = %v, not strictly after %v", expr, next, at)
		}
		if !s.Matches(next) {
			t.Errorf("Next(%q) = %v does not satisfy Matches", expr, next)
		}

		// No earlier minute-aligned instant in between may match.
		for probe := at.Truncate(time.Minute).Add(time.Minute); probe.Before(next); probe = probe.Add(time.Minute) {
			if s.Matches(probe) {
				t.Errorf("Matches(%q, %v) is true before Next result %v", expr, probe, next)
				break
			}
		}
	}
}

func TestNext_Unsatisfiable(t *testing.T) {
	t.Parallel()

	// February 30th never exists.
	s := mustParse(t, "0 0 30 2 *")

	_, err := s.Next(time.Date(2026, 1, 14, 0, 0, 0, 0, time.Local))
	if !errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("Next error = %v, want ErrUnsatisfiable", err)
	}
}

func TestParse_InvalidError(t *testing.T) {
	t.Parallel()

	_, err := Parse("not a cron expression")
	if !errors.Is(err, ErrInvalidExpression) {
		t.Fatalf("Parse error = %v, want ErrInvalidExpression", err)
	}
}
