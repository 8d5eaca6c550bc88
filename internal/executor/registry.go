package executor

import (
	"fmt"
	"strings"
)

// Rule maps a lowercase keyword to a variant name. A job whose name
// contains the keyword (case-insensitive) is dispatched to that variant.
type Rule struct {
	Keyword string
	Variant string
}

// DefaultRules classifies the job names the system has historically used.
func DefaultRules() []Rule {
	return []Rule{
		{Keyword: "email", Variant: "log"},
		{Keyword: "notification", Variant: "log"},
		{Keyword: "send", Variant: "log"},
	}
}

// Registry selects an executor variant for a job by matching classification
// rules against the job's name, in rule order. Jobs matching no rule fail
// with ErrUnknownJobType unless a default variant is configured; the
// silent-fallback behavior is opt-in, never implicit.
//
// The registry is built once at startup and holds no mutable state
// afterwards, so lookups need no locking.
type Registry struct {
	variants       map[string]Executor
	rules          []Rule
	defaultVariant string
}

// NewRegistry creates a registry with the given classification rules and
// optional default variant name (empty means unmatched jobs fail).
func NewRegistry(rules []Rule, defaultVariant string) *Registry {
	return &Registry{
		variants:       make(map[string]Executor),
		rules:          rules,
		defaultVariant: defaultVariant,
	}
}

// Register adds an executor variant. Returns an error if a variant with
// the same name is already registered.
func (r *Registry) Register(e Executor) error {
	name := e.Name()
	if _, exists := r.variants[name]; exists {
		return fmt.Errorf("executor: duplicate variant %q", name)
	}
	r.variants[name] = e
	return nil
}

// Validate checks that every rule and the default variant reference a
// registered executor. Called once after startup wiring.
func (r *Registry) Validate() error {
	for _, rule := range r.rules {
		if _, ok := r.variants[rule.Variant]; !ok {
			return fmt.Errorf("executor: rule %q references unknown variant %q", rule.Keyword, rule.Variant)
		}
	}
	if r.defaultVariant != "" {
		if _, ok := r.variants[r.defaultVariant]; !ok {
			return fmt.Errorf("executor: default references unknown variant %q", r.defaultVariant)
		}
	}
	return nil
}

// Resolve returns the executor variant for a job name, applying the
// classification rules in order. Unmatched names resolve to the default
// variant when one is configured, otherwise ErrUnknownJobType.
func (r *Registry) Resolve(jobName string) (Executor, error) {
	lower := strings.ToLower(jobName)

	for _, rule := range r.rules {
		if strings.Contains(lower, rule.Keyword) {
			if e, ok := r.variants[rule.Variant]; ok {
				return e, nil
			}
			return nil, fmt.Errorf("%w: rule %q maps %q to unregistered variant %q",
				ErrUnknownJobType, rule.Keyword, jobName, rule.Variant)
		}
	}

	if r.defaultVariant != "" {
		if e, ok := r.variants[r.defaultVariant]; ok {
			return e, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownJobType, jobName)
}
