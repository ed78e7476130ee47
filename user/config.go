package user

import (
	"time"

	"github.com/kbukum/rxfetch/validation"
)

// DefaultBaseURL is where the embedded user API listens by default.
const DefaultBaseURL = "http://127.0.0.1:8081"

// ClientConfig configures the HTTP fetcher.
type ClientConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// Timeout bounds one fetch. Zero leaves fetches unbounded, so a hung
	// server hangs the pipeline until the caller cancels.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// RateLimit caps fetches per second; zero disables pacing.
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit" validate:"gte=0"`
	Burst     int     `yaml:"burst" mapstructure:"burst" validate:"gte=0"`
}

// ApplyDefaults fills unset fields.
func (c *ClientConfig) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
}

// Validate checks the configuration.
func (c *ClientConfig) Validate() error {
	return validation.Validate(c)
}
