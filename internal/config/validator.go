package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError is a single invalid setting.
type ValidationError struct {
	Field   string // config key, e.g. "pipeline.workers"
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects every invalid setting found by Validate.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return ""
	case 1:
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidLogLevels returns the accepted logging.level values.
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate returns every invalid setting in c.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, c.validatePipeline()...)
	errs = append(errs, c.validateLogging()...)
	errs = append(errs, c.validateMetrics()...)
	errs = append(errs, c.validateInspector()...)
	return errs
}

func (c *Config) validatePipeline() []ValidationError {
	var errs []ValidationError
	if c.Pipeline.Workers < 1 {
		errs = append(errs, ValidationError{
			Field:   "pipeline.workers",
			Value:   c.Pipeline.Workers,
			Message: "must be at least 1",
		})
	}
	if c.Pipeline.QueueSize < 1 {
		errs = append(errs, ValidationError{
			Field:   "pipeline.queue_size",
			Value:   c.Pipeline.QueueSize,
			Message: "must be at least 1",
		})
	}
	return errs
}

func (c *Config) validateLogging() []ValidationError {
	var errs []ValidationError
	if !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	if c.Logging.MaxSizeMB < 0 {
		errs = append(errs, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must not be negative",
		})
	}
	if c.Logging.MaxBackups < 0 {
		errs = append(errs, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must not be negative",
		})
	}
	return errs
}

func (c *Config) validateMetrics() []ValidationError {
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return []ValidationError{{
			Field:   "metrics.namespace",
			Value:   c.Metrics.Namespace,
			Message: "required when metrics are enabled",
		}}
	}
	return nil
}

func (c *Config) validateInspector() []ValidationError {
	if c.Inspector.Addr == "" {
		return nil
	}
	var errs []ValidationError
	if c.Inspector.PushPerSecond <= 0 {
		errs = append(errs, ValidationError{
			Field:   "inspector.push_per_second",
			Value:   c.Inspector.PushPerSecond,
			Message: "must be positive",
		})
	}
	if c.Inspector.History < 1 {
		errs = append(errs, ValidationError{
			Field:   "inspector.history",
			Value:   c.Inspector.History,
			Message: "must be at least 1",
		})
	}
	return errs
}
