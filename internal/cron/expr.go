// Package cron evaluates five-field cron expressions: validation, instant
// matching, and next-occurrence computation at minute resolution.
package cron

import (
	"errors"
	"fmt"
	"time"

	cronlib "github.com/robfig/cron/v3"
)

// Sentinel errors for cron evaluation.
var (
	// ErrInvalidExpression indicates a malformed cron expression.
	ErrInvalidExpression = errors.New("cron: invalid expression")

	// ErrUnsatisfiable indicates a well-formed expression that can never
	// match an instant (e.g. "0 0 30 2 *", February 30th).
	ErrUnsatisfiable = errors.New("cron: expression never matches")
)

// parser accepts exactly the standard five fields:
// minute, hour, day-of-month, month, day-of-week.
var parser = cronlib.NewParser(
	cronlib.Minute | cronlib.Hour | cronlib.Dom | cronlib.Month | cronlib.Dow,
)

// starBit mirrors the marker robfig/cron sets on fields written as "*".
// It drives the day-of-month/day-of-week combination rule below.
const starBit = 1 << 63

// Schedule is a parsed cron expression.
type Schedule struct {
	expr string
	spec *cronlib.SpecSchedule
}

// Parse parses a five-field cron expression. Supported field syntax:
// literals, "*", comma lists, ranges ("1-5"), and steps ("*/15").
func Parse(expr string) (*Schedule, error) {
	sched, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidExpression, expr, err)
	}

	spec, ok := sched.(*cronlib.SpecSchedule)
	if !ok {
		// The parser is configured without descriptors, so every
		// successful parse yields a SpecSchedule. Guard anyway.
		return nil, fmt.Errorf("%w: %q", ErrInvalidExpression, expr)
	}

	return &Schedule{expr: expr, spec: spec}, nil
}

// Validate reports whether expr is a well-formed five-field cron expression.
// It never panics on malformed input.
func Validate(expr string) bool {
	_, err := Parse(expr)
	return err == nil
}

// String returns the original expression text.
func (s *Schedule) String() string { return s.expr }

// Matches reports whether t, truncated to the minute, satisfies the
// expression. When both day-of-month and day-of-week are restricted, the
// instant matches if either restriction holds (standard cron OR rule).
func (s *Schedule) Matches(t time.Time) bool {
	t = t.In(s.spec.Location)

	if 1<<uint(t.Minute())&s.spec.Minute == 0 {
		return false
	}
	if 1<<uint(t.Hour())&s.spec.Hour == 0 {
		return false
	}
	if 1<<uint(t.Month())&s.spec.Month == 0 {
		return false
	}
	return s.dayMatches(t)
}

// dayMatches applies the day-of-month/day-of-week combination rule exactly
// the way robfig/cron's next-time search does, so Matches and Next can
// never disagree about an instant.
func (s *Schedule) dayMatches(t time.Time) bool {
	domMatch := 1<<uint(t.Day())&s.spec.Dom > 0
	dowMatch := 1<<uint(t.Weekday())&s.spec.Dow > 0

	if s.spec.Dom&starBit > 0 || s.spec.Dow&starBit > 0 {
		return domMatch && dowMatch
	}
	return domMatch || dowMatch
}

// Next returns the earliest minute-aligned instant strictly after `after`
// that satisfies the expression. Returns ErrUnsatisfiable when the bounded
// search (roughly five years ahead) finds no matching instant.
func (s *Schedule) Next(after time.Time) (time.Time, error) {
	next := s.spec.Next(after)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnsatisfiable, s.expr)
	}
	return next, nil
}
