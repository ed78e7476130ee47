package config

import (
	"fmt"

	"github.com/kbukum/rxfetch/logger"
	"github.com/kbukum/rxfetch/monitor"
	"github.com/kbukum/rxfetch/observability"
	"github.com/kbukum/rxfetch/user"
	"github.com/kbukum/rxfetch/userapi"
	"github.com/kbukum/rxfetch/validation"
	"github.com/kbukum/rxfetch/version"
)

// ServiceName names the CLI in logs, telemetry and config lookup.
const ServiceName = "rxfetch"

// PipelinesConfig holds the pipeline input.
type PipelinesConfig struct {
	// IDs is the ordered source sequence every pipeline starts from.
	IDs []int `yaml:"ids" mapstructure:"ids" validate:"required,min=1,unique,dive,gt=0"`
}

// AppConfig is the full configuration of the rxfetch CLI.
type AppConfig struct {
	BaseConfig `yaml:",inline" mapstructure:",squash"`

	Logging   logger.Config        `yaml:"logging" mapstructure:"logging"`
	Fetch     user.ClientConfig    `yaml:"fetch" mapstructure:"fetch"`
	UserAPI   userapi.Config       `yaml:"user_api" mapstructure:"user_api"`
	Monitor   monitor.Config       `yaml:"monitor" mapstructure:"monitor"`
	Pipelines PipelinesConfig      `yaml:"pipelines" mapstructure:"pipelines"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`

	embedded bool
}

// Default returns the configuration used when no file or environment
// overrides a value: ids [1, 3, 4] fetched from an embedded user API.
func Default() AppConfig {
	return AppConfig{
		BaseConfig: BaseConfig{Name: ServiceName, Environment: "development"},
		UserAPI:    userapi.DefaultConfig(),
		Monitor:    monitor.DefaultConfig(),
		Pipelines:  PipelinesConfig{IDs: []int{1, 3, 4}},
		Telemetry:  observability.DefaultConfig(ServiceName),
	}
}

// ApplyDefaults fills unset fields. With the embedded user API enabled and
// no fetch.base_url given, the fetch client points at the embedded server.
func (c *AppConfig) ApplyDefaults() {
	c.BaseConfig.ApplyDefaults()
	if c.Version == "" {
		c.Version = version.Short()
	}
	c.Logging.ApplyDefaults()
	if c.Debug {
		c.Logging.Level = "debug"
	}
	c.UserAPI.ApplyDefaults()
	c.Monitor.ApplyDefaults()
	if c.Fetch.BaseURL == "" && c.UserAPI.Enabled {
		c.embedded = true
		c.Fetch.BaseURL = fmt.Sprintf("http://%s:%d", c.UserAPI.Server.Host, c.UserAPI.Server.Port)
	}
	c.Fetch.ApplyDefaults()

	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = c.Name
	}
	c.Telemetry.ServiceVersion = c.Version
	c.Telemetry.Environment = c.Environment
	c.Telemetry.ApplyDefaults()
}

// GetLogging returns the logging section.
func (c *AppConfig) GetLogging() *logger.Config {
	return &c.Logging
}

// FetchesEmbedded reports whether ApplyDefaults pointed the fetch client at
// the embedded user API. Once the API has bound its port the caller should
// replace Fetch.BaseURL with the bound URL, since port 0 picks a free one.
func (c *AppConfig) FetchesEmbedded() bool {
	return c.embedded
}

// Validate checks every section.
func (c *AppConfig) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return validation.Validate(c)
}
