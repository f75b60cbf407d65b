package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvWorkflowPollInterval    = "ACCORD_WORKFLOW_POLL_INTERVAL"
	EnvWorkflowTopK            = "ACCORD_WORKFLOW_TOP_K"
	EnvWorkflowMaxReviewCycles = "ACCORD_WORKFLOW_MAX_REVIEW_CYCLES"
)

// WorkflowConfig tunes agreement workflow execution.
type WorkflowConfig struct {
	// PollInterval is the wait between approval polling rounds and before
	// re-sending notifications on a repeat review cycle.
	PollInterval string `toml:"poll_interval"`

	// TopK is the number of clauses retrieved per generation run.
	TopK int `toml:"top_k"`

	// MaxReviewCycles bounds how many times the review cycle may repeat
	// before a run is aborted. Zero leaves the cycle unbounded.
	MaxReviewCycles int `toml:"max_review_cycles"`
}

// PollIntervalDuration returns PollInterval as a time.Duration.
func (c *WorkflowConfig) PollIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.PollInterval)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WorkflowConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *WorkflowConfig) Merge(overlay *WorkflowConfig) {
	if overlay.PollInterval != "" {
		c.PollInterval = overlay.PollInterval
	}
	if overlay.TopK != 0 {
		c.TopK = overlay.TopK
	}
	if overlay.MaxReviewCycles != 0 {
		c.MaxReviewCycles = overlay.MaxReviewCycles
	}
}

func (c *WorkflowConfig) loadDefaults() {
	if c.PollInterval == "" {
		c.PollInterval = "5s"
	}
	if c.TopK == 0 {
		c.TopK = 5
	}
}

func (c *WorkflowConfig) loadEnv() {
	if v := os.Getenv(EnvWorkflowPollInterval); v != "" {
		c.PollInterval = v
	}
	if v := os.Getenv(EnvWorkflowTopK); v != "" {
		if k, err := strconv.Atoi(v); err == nil {
			c.TopK = k
		}
	}
	if v := os.Getenv(EnvWorkflowMaxReviewCycles); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxReviewCycles = n
		}
	}
}

func (c *WorkflowConfig) validate() error {
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil {
		return fmt.Errorf("invalid poll_interval: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("poll_interval must be positive: %s", c.PollInterval)
	}
	if c.TopK < 1 {
		return fmt.Errorf("top_k must be at least 1: %d", c.TopK)
	}
	if c.MaxReviewCycles < 0 {
		return fmt.Errorf("max_review_cycles must not be negative: %d", c.MaxReviewCycles)
	}
	return nil
}
