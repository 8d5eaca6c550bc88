// Package config handles YAML configuration loading, environment variable
// expansion, and structural validation for croned.
package config

import (
	"time"

	"github.com/flemzord/croned/internal/executor"
	"github.com/flemzord/croned/internal/gateway"
)

// Config is the top-level configuration structure.
type Config struct {
	// LogLevel is one of "debug", "info", "warn", "error". Default "info".
	LogLevel string `yaml:"log_level"`

	// Gateway configures the HTTP API server.
	Gateway gateway.Config `yaml:"gateway"`

	// Database configures job persistence.
	Database DatabaseConfig `yaml:"database"`

	// Scheduler configures the tick loop.
	Scheduler SchedulerConfig `yaml:"scheduler"`

	// Executors configures job-name classification and the variants.
	Executors ExecutorsConfig `yaml:"executors"`
}

// DatabaseConfig configures job persistence. An empty path selects the
// in-memory store (jobs are lost on restart).
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SchedulerConfig configures the scheduling engine.
type SchedulerConfig struct {
	TickInterval    time.Duration `yaml:"tick_interval"`    // default 1m
	DispatchTimeout time.Duration `yaml:"dispatch_timeout"` // default 1m
	MaxConcurrent   int           `yaml:"max_concurrent"`   // default 8
}

// ExecutorsConfig selects executor variants for jobs by name keyword.
type ExecutorsConfig struct {
	// Rules are evaluated in order; the first keyword contained in the
	// job's name (case-insensitive) selects the variant. When empty, the
	// historical defaults are used (email/notification/send → log).
	Rules []RuleConfig `yaml:"rules"`

	// Default names the variant for jobs matching no rule. Empty means
	// such jobs fail with an unknown-job-type error.
	Default string `yaml:"default"`

	// Webhook configures the "webhook" variant. The variant is only
	// registered when a URL is set.
	Webhook WebhookConfig `yaml:"webhook"`

	// Shell configures the "shell" variant. The variant is only
	// registered when a command is set.
	Shell ShellConfig `yaml:"shell"`
}

// RuleConfig maps a job-name keyword to an executor variant.
type RuleConfig struct {
	Keyword string `yaml:"keyword"`
	Variant string `yaml:"variant"`
}

// WebhookConfig holds settings for the webhook executor variant.
type WebhookConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"` // default 30s
}

// ShellConfig holds settings for the shell executor variant.
type ShellConfig struct {
	Command []string `yaml:"command"`
}

// ExecutorRules returns the configured classification rules, falling back
// to the historical defaults.
func (c *Config) ExecutorRules() []executor.Rule {
	if len(c.Executors.Rules) == 0 {
		return executor.DefaultRules()
	}
	rules := make([]executor.Rule, len(c.Executors.Rules))
	for i, r := range c.Executors.Rules {
		rules[i] = executor.Rule{Keyword: r.Keyword, Variant: r.Variant}
	}
	return rules
}
