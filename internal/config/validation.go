package config

import (
	"fmt"
	"net/url"
	"strings"

	"WorkBoard/internal/render"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	b := c.Board
	if _, err := render.ParseBackground(b.Background); err != nil {
		add("board.background", "unknown style %q", b.Background)
	}
	if b.MinHeight <= 0 {
		add("board.min_height", "must be positive")
	}
	if b.MaxHeight < b.MinHeight {
		add("board.max_height", "must be at least min_height (%v)", b.MinHeight)
	}
	if b.InitialHeight < 0 {
		add("board.initial_height", "must not be negative")
	}
	if b.Width <= 0 {
		add("board.width", "must be positive")
	}
	if _, err := ParseColor(b.Color); err != nil {
		add("board.color", "%v", err)
	}

	if ep := c.Checker.Endpoint; ep != "" {
		u, err := url.Parse(ep)
		switch {
		case err != nil:
			add("checker.endpoint", "%v", err)
		case u.Host == "":
			add("checker.endpoint", "missing host in %q", ep)
		default:
			switch strings.ToLower(u.Scheme) {
			case "http", "https", "ws", "wss":
			default:
				add("checker.endpoint", "unsupported scheme %q", u.Scheme)
			}
		}
	}
	if c.Checker.TimeoutSec <= 0 {
		add("checker.timeout_sec", "must be positive")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		add("logging.level", "unknown level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		add("logging.format", "unknown format %q", c.Logging.Format)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
