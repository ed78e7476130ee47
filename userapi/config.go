package userapi

import (
	"github.com/kbukum/rxfetch/server"
	"github.com/kbukum/rxfetch/validation"
)

// DefaultPort is the port the embedded user API listens on.
const DefaultPort = 8081

// Config configures the mock user service.
type Config struct {
	// Enabled starts the service inside the CLI process.
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Server  server.Config `yaml:"server" mapstructure:"server"`

	// Users is the size of the directory: ids 1..Users exist.
	Users int `yaml:"users" mapstructure:"users" validate:"gte=1"`

	// LatencyMS delays the answer for individual ids.
	LatencyMS map[int]int `yaml:"latency_ms" mapstructure:"latency_ms" validate:"dive,gte=0,lte=60000"`

	// FailIDs answer 503 SERVICE_UNAVAILABLE.
	FailIDs []int `yaml:"fail_ids" mapstructure:"fail_ids" validate:"dive,gt=0"`
}

// DefaultConfig returns an enabled service on 127.0.0.1:8081 holding ten
// users and answering 1, 3 and 4 after 30, 10 and 20ms.
func DefaultConfig() Config {
	cfg := Config{
		Enabled:   true,
		Server:    server.Config{Port: DefaultPort},
		LatencyMS: map[int]int{1: 30, 3: 10, 4: 20},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	if c.Users == 0 {
		c.Users = 10
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
