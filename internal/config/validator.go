package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "timers.press_duration")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks every section and returns all failures found.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, c.validateAssets()...)
	errs = append(errs, c.validateTimers()...)
	errs = append(errs, c.validateProtocol()...)
	errs = append(errs, c.validateUploads()...)
	errs = append(errs, c.validateLogging()...)
	return errs
}

func (c *Config) validateAssets() []ValidationError {
	if strings.TrimSpace(c.Assets.Dir) == "" {
		return []ValidationError{{
			Field:   "assets.dir",
			Value:   c.Assets.Dir,
			Message: "must not be empty",
		}}
	}
	return nil
}

func (c *Config) validateTimers() []ValidationError {
	var errs []ValidationError
	if c.Timers.PressDuration <= 0 {
		errs = append(errs, ValidationError{
			Field:   "timers.press_duration",
			Value:   c.Timers.PressDuration,
			Message: "must be positive",
		})
	}
	if c.Timers.ReadingWindow <= 0 {
		errs = append(errs, ValidationError{
			Field:   "timers.reading_window",
			Value:   c.Timers.ReadingWindow,
			Message: "must be positive",
		})
	} else if c.Timers.ReadingWindow > time.Hour {
		errs = append(errs, ValidationError{
			Field:   "timers.reading_window",
			Value:   c.Timers.ReadingWindow,
			Message: "must not exceed 1h",
		})
	}
	return errs
}

func (c *Config) validateProtocol() []ValidationError {
	var errs []ValidationError
	if len(c.Protocol.ReferenceSequence) == 0 {
		errs = append(errs, ValidationError{
			Field:   "protocol.reference_sequence",
			Value:   c.Protocol.ReferenceSequence,
			Message: "must list at least one allergen",
		})
	}
	for _, tok := range c.Protocol.ReferenceSequence {
		if strings.TrimSpace(tok) != tok || tok == "" {
			errs = append(errs, ValidationError{
				Field:   "protocol.reference_sequence",
				Value:   tok,
				Message: "entries must be non-empty without surrounding whitespace",
			})
			break
		}
	}
	for _, med := range c.Protocol.InterferingMedications {
		if med != strings.ToLower(strings.TrimSpace(med)) || med == "" {
			errs = append(errs, ValidationError{
				Field:   "protocol.interfering_medications",
				Value:   med,
				Message: "entries must be lowercase and trimmed",
			})
			break
		}
	}
	return errs
}

func (c *Config) validateUploads() []ValidationError {
	var errs []ValidationError
	if c.Uploads.MaxBytes <= 0 {
		errs = append(errs, ValidationError{
			Field:   "uploads.max_bytes",
			Value:   c.Uploads.MaxBytes,
			Message: "must be positive",
		})
	}
	if c.Uploads.MaxDimension <= 0 {
		errs = append(errs, ValidationError{
			Field:   "uploads.max_dimension",
			Value:   c.Uploads.MaxDimension,
			Message: "must be positive",
		})
	}
	return errs
}

func (c *Config) validateLogging() []ValidationError {
	if !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		return []ValidationError{{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		}}
	}
	return nil
}
