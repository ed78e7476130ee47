package config

import "github.com/kbukum/rxfetch/validation"

// BaseConfig contains the fields every rxfetch binary carries.
type BaseConfig struct {
	Name        string `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
}

// ApplyDefaults applies default values to base configuration.
func (c *BaseConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
}

// Validate validates base configuration.
func (c *BaseConfig) Validate() error {
	return validation.Validate(c)
}

// GetBaseConfig returns the receiver; embedding types inherit it.
func (c *BaseConfig) GetBaseConfig() *BaseConfig {
	return c
}
