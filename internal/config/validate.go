package config

import (
	"errors"
	"fmt"
	"net"
)

// knownVariants are the executor variants croned can build.
var knownVariants = map[string]struct{}{
	"log":     {},
	"webhook": {},
	"shell":   {},
}

// validLogLevels for the log_level setting.
var validLogLevels = map[string]struct{}{
	"": {}, "debug": {}, "info": {}, "warn": {}, "error": {},
}

// Validate checks structural constraints the YAML schema cannot express.
// It collects all problems rather than stopping at the first.
func Validate(cfg *Config) error {
	var errs []error

	if _, ok := validLogLevels[cfg.LogLevel]; !ok {
		errs = append(errs, fmt.Errorf("config: unknown log_level %q", cfg.LogLevel))
	}

	if cfg.Gateway.Bind != "" {
		if _, err := net.ResolveTCPAddr("tcp", cfg.Gateway.Bind); err != nil {
			errs = append(errs, fmt.Errorf("config: invalid gateway.bind %q", cfg.Gateway.Bind))
		}
	}

	if cfg.Scheduler.TickInterval < 0 {
		errs = append(errs, errors.New("config: scheduler.tick_interval must be positive"))
	}
	if cfg.Scheduler.DispatchTimeout < 0 {
		errs = append(errs, errors.New("config: scheduler.dispatch_timeout must be positive"))
	}
	if cfg.Scheduler.MaxConcurrent < 0 {
		errs = append(errs, errors.New("config: scheduler.max_concurrent must be positive"))
	}

	for _, rule := range cfg.Executors.Rules {
		if rule.Keyword == "" {
			errs = append(errs, errors.New("config: executor rule with empty keyword"))
		}
		if err := checkVariant(cfg, rule.Variant); err != nil {
			errs = append(errs, fmt.Errorf("config: rule %q: %w", rule.Keyword, err))
		}
	}
	if cfg.Executors.Default != "" {
		if err := checkVariant(cfg, cfg.Executors.Default); err != nil {
			errs = append(errs, fmt.Errorf("config: executors.default: %w", err))
		}
	}

	return errors.Join(errs...)
}

// checkVariant verifies the variant exists and its settings make it
// constructible.
func checkVariant(cfg *Config, variant string) error {
	if _, ok := knownVariants[variant]; !ok {
		return fmt.Errorf("unknown variant %q", variant)
	}
	switch variant {
	case "webhook":
		if cfg.Executors.Webhook.URL == "" {
			return errors.New("webhook variant requires executors.webhook.url")
		}
	case "shell":
		if len(cfg.Executors.Shell.Command) == 0 {
			return errors.New("shell variant requires executors.shell.command")
		}
	}
	return nil
}
