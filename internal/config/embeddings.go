package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	EnvEmbeddingsURL     = "ACCORD_EMBEDDINGS_URL"
	EnvEmbeddingsTimeout = "ACCORD_EMBEDDINGS_TIMEOUT"
)

// EmbeddingsConfig holds the embedding service endpoint used for clause
// ingestion and retrieval.
type EmbeddingsConfig struct {
	URL     string `toml:"url"`
	Timeout string `toml:"timeout"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *EmbeddingsConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *EmbeddingsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *EmbeddingsConfig) Merge(overlay *EmbeddingsConfig) {
	if overlay.URL != "" {
		c.URL = overlay.URL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *EmbeddingsConfig) loadDefaults() {
	if c.URL == "" {
		c.URL = "http://localhost:8000"
	}
	if c.Timeout == "" {
		c.Timeout = "10s"
	}
}

func (c *EmbeddingsConfig) loadEnv() {
	if v := os.Getenv(EnvEmbeddingsURL); v != "" {
		c.URL = v
	}
	if v := os.Getenv(EnvEmbeddingsTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *EmbeddingsConfig) validate() error {
	c.URL = strings.TrimSuffix(c.URL, "/")

	if _, err := url.ParseRequestURI(c.URL); err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
