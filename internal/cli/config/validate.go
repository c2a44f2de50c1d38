package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	validProgress = []string{ProgressAuto, ProgressAlways, ProgressNever}
	validOutput   = []string{"auto", "text", "markdown", "json"}
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("buffer_size must be positive, got %d", c.BufferSize)
	}
	if !slices.Contains(validProgress, c.Progress) {
		return fmt.Errorf("invalid progress mode %q (available: %s)", c.Progress, strings.Join(validProgress, ", "))
	}
	if !slices.Contains(validOutput, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (available: %s)", c.OutputFormat, strings.Join(validOutput, ", "))
	}
	if c.Fetch.Retries < 0 {
		return fmt.Errorf("fetch.retries must not be negative, got %d", c.Fetch.Retries)
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch.timeout must not be negative, got %s", c.Fetch.Timeout)
	}
	return nil
}
