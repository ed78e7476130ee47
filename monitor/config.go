package monitor

import (
	"time"

	"github.com/kbukum/rxfetch/server"
	"github.com/kbukum/rxfetch/validation"
)

// DefaultPort is where the monitor listens when enabled.
const DefaultPort = 9090

// Config configures the monitor server.
type Config struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Server  server.Config `yaml:"server" mapstructure:"server"`

	// KeepAlive is the comment interval on idle event streams.
	KeepAlive time.Duration `yaml:"keep_alive" mapstructure:"keep_alive" validate:"gte=0"`
}

// DefaultConfig returns a disabled monitor on 127.0.0.1:9090.
func DefaultConfig() Config {
	cfg := Config{Server: server.Config{Port: DefaultPort}}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	if c.KeepAlive == 0 {
		c.KeepAlive = 15 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
