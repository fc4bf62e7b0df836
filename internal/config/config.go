// Package config handles configuration loading and validation for the board.
package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"WorkBoard/internal/board"
	"WorkBoard/internal/render"
)

// Config is the top-level configuration.
type Config struct {
	Board   BoardConfig   `toml:"board" yaml:"board"`
	Checker CheckerConfig `toml:"checker" yaml:"checker"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// BoardConfig seeds the drawing surface.
type BoardConfig struct {
	Background    string  `toml:"background" yaml:"background"`
	MinHeight     float64 `toml:"min_height" yaml:"min_height"`
	MaxHeight     float64 `toml:"max_height" yaml:"max_height"`
	InitialHeight float64 `toml:"initial_height" yaml:"initial_height"`
	Color         string  `toml:"color" yaml:"color"`
	Width         float64 `toml:"width" yaml:"width"`
	ShowFeedback  bool    `toml:"show_feedback" yaml:"show_feedback"`
}

// CheckerConfig points at the grading service.
type CheckerConfig struct {
	// Endpoint is an http(s):// or ws(s):// base URL.
	Endpoint string `toml:"endpoint" yaml:"endpoint"`

	// Discover browses mDNS for a grader when Endpoint is empty.
	Discover bool `toml:"discover" yaml:"discover"`

	Question      string `toml:"question" yaml:"question"`
	CorrectAnswer string `toml:"correct_answer" yaml:"correct_answer"`
	ProblemType   string `toml:"problem_type" yaml:"problem_type"`
	TimeoutSec    int    `toml:"timeout_sec" yaml:"timeout_sec"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Board: BoardConfig{
			Background:    string(render.BackgroundBlank),
			MinHeight:     board.DefaultMinHeight,
			MaxHeight:     board.DefaultMaxHeight,
			InitialHeight: 400,
			Color:         "#000000",
			Width:         3,
			ShowFeedback:  true,
		},
		Checker: CheckerConfig{
			Discover:   true,
			TimeoutSec: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Dir returns the configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".workboard"
	}
	return filepath.Join(home, ".workboard")
}

// Path returns the default configuration file path.
func Path() string {
	if p := os.Getenv("WORKBOARD_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// ApplyEnvOverrides applies WORKBOARD_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("WORKBOARD_BACKGROUND"); v != "" {
		c.Board.Background = v
	}
	if v := os.Getenv("WORKBOARD_COLOR"); v != "" {
		c.Board.Color = v
	}
	if v := os.Getenv("WORKBOARD_WIDTH"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Board.Width = f
		}
	}
	if v := os.Getenv("WORKBOARD_CHECKER_ENDPOINT"); v != "" {
		c.Checker.Endpoint = v
	}
	if v := os.Getenv("WORKBOARD_CHECKER_DISCOVER"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Checker.Discover = b
		}
	}
	if v := os.Getenv("WORKBOARD_QUESTION"); v != "" {
		c.Checker.Question = v
	}
	if v := os.Getenv("WORKBOARD_CORRECT_ANSWER"); v != "" {
		c.Checker.CorrectAnswer = v
	}
	if v := os.Getenv("WORKBOARD_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("WORKBOARD_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
}

// Timeout returns the checker timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Checker.TimeoutSec) * time.Second
}

// BoardOptions converts the board section into engine options.
func (c *Config) BoardOptions() (board.Options, error) {
	bg, err := render.ParseBackground(c.Board.Background)
	if err != nil {
		return board.Options{}, err
	}
	col, err := ParseColor(c.Board.Color)
	if err != nil {
		return board.Options{}, err
	}
	opts := board.Options{
		Background:   bg,
		MinHeight:    c.Board.MinHeight,
		MaxHeight:    c.Board.MaxHeight,
		Color:        col,
		Width:        c.Board.Width,
		ShowFeedback: c.Board.ShowFeedback,
	}
	return opts, opts.Validate()
}

// ParseColor reads "#rgb" or "#rrggbb" into an opaque colour.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
