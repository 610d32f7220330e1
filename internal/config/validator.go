package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field   string // The config field path (e.g., "poll.dashboard_seconds")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors.
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

// ValidThemes returns the list of valid TUI themes.
func ValidThemes() []string {
	return []string{"dark", "light"}
}

// Validate checks the Config for invalid values and returns all validation
// errors found.
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateServer()...)
	errors = append(errors, c.validatePoll()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateServer() []ValidationError {
	var errors []ValidationError

	if c.Server.URL == "" {
		errors = append(errors, ValidationError{
			Field:   "server.url",
			Value:   c.Server.URL,
			Message: "must not be empty",
		})
	} else if u, err := url.Parse(c.Server.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "server.url",
			Value:   c.Server.URL,
			Message: "must be an absolute URL like http://helpdesk.camara.local:8080",
		})
	}

	if c.Server.TimeoutSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "server.timeout_seconds",
			Value:   c.Server.TimeoutSeconds,
			Message: "must be >= 0 (0 disables the timeout)",
		})
	}

	return errors
}

func (c *Config) validatePoll() []ValidationError {
	var errors []ValidationError

	if c.Poll.DashboardSeconds < 1 {
		errors = append(errors, ValidationError{
			Field:   "poll.dashboard_seconds",
			Value:   c.Poll.DashboardSeconds,
			Message: "must be >= 1",
		})
	}
	if c.Poll.TVSeconds < 1 {
		errors = append(errors, ValidationError{
			Field:   "poll.tv_seconds",
			Value:   c.Poll.TVSeconds,
			Message: "must be >= 1",
		})
	}

	return errors
}

func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}
	if c.TUI.MaxRecentTickets < 1 {
		errors = append(errors, ValidationError{
			Field:   "tui.max_recent_tickets",
			Value:   c.TUI.MaxRecentTickets,
			Message: "must be >= 1",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	valid := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	if !slices.Contains(valid, strings.ToUpper(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(valid, ", ")),
		})
	}
	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be >= 0",
		})
	}
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be >= 0",
		})
	}

	return errors
}
