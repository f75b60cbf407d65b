package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvMailHost     = "ACCORD_MAIL_HOST"
	EnvMailPort     = "ACCORD_MAIL_PORT"
	EnvMailUsername = "ACCORD_MAIL_USERNAME"
	EnvMailPassword = "ACCORD_MAIL_PASSWORD"
	EnvMailFrom     = "ACCORD_MAIL_FROM"
)

// MailConfig holds SMTP relay parameters for review notifications.
// An empty username produces an unauthenticated connection for local
// development relays.
type MailConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *MailConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *MailConfig) Merge(overlay *MailConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	if overlay.Username != "" {
		c.Username = overlay.Username
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.From != "" {
		c.From = overlay.From
	}
}

func (c *MailConfig) loadDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 1025
	}
	if c.From == "" {
		c.From = "agreements@accord.local"
	}
}

func (c *MailConfig) loadEnv() {
	if v := os.Getenv(EnvMailHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvMailPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv(EnvMailUsername); v != "" {
		c.Username = v
	}
	if v := os.Getenv(EnvMailPassword); v != "" {
		c.Password = v
	}
	if v := os.Getenv(EnvMailFrom); v != "" {
		c.From = v
	}
}

func (c *MailConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.From == "" {
		return fmt.Errorf("from address required")
	}
	return nil
}
